package memory

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos en memoria. Las órdenes se clonan (con sus líneas) al guardar y al leer.
type OrderRepo struct {
	v view
}

// NewOrderRepository construye el repo fuera de transacción.
func NewOrderRepository(s *Store) *OrderRepo {
	return &OrderRepo{v: view{s: s}}
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	defer r.v.wlock()()
	if _, ok := r.v.s.t.orders[o.ID]; ok {
		return domain.ErrDuplicate
	}
	r.v.s.t.orders[o.ID] = record[entity.Order]{val: cloneOrder(o), seq: r.v.s.next()}
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	defer r.v.rlock()()
	rec, ok := r.v.s.t.orders[id]
	if !ok {
		return nil, nil
	}
	o := cloneOrder(&rec.val)
	return &o, nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	o, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.OrderNotFound(id)
	}
	return o, nil
}

func (r *OrderRepo) UpdateStatus(_ context.Context, o *entity.Order) error {
	defer r.v.wlock()()
	rec, ok := r.v.s.t.orders[o.ID]
	if !ok {
		return domain.OrderNotFound(o.ID)
	}
	updated := cloneOrder(&rec.val)
	updated.Status = o.Status
	updated.ApproverID = o.ApproverID
	updated.PaymentTxRef = o.PaymentTxRef
	updated.ApprovedAt = nil
	if o.ApprovedAt != nil {
		t := *o.ApprovedAt
		updated.ApprovedAt = &t
	}
	rec.val = updated
	r.v.s.t.orders[o.ID] = rec
	return nil
}

func (r *OrderRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.Order, error) {
	defer r.v.rlock()()
	return r.clones(func(o entity.Order) bool { return o.CustomerID == customerID }), nil
}

func (r *OrderRepo) ListPending(_ context.Context) ([]*entity.Order, error) {
	defer r.v.rlock()()
	return r.clones(func(o entity.Order) bool { return !o.Status.IsTerminal() }), nil
}

func (r *OrderRepo) clones(keep func(entity.Order) bool) []*entity.Order {
	items := sorted(r.v.s.t.orders, keep)
	out := make([]*entity.Order, len(items))
	for i := range items {
		o := cloneOrder(&items[i])
		out[i] = &o
	}
	return out
}

func cloneOrder(o *entity.Order) entity.Order {
	c := *o
	if o.ApprovedAt != nil {
		t := *o.ApprovedAt
		c.ApprovedAt = &t
	}
	c.Lines = make([]*entity.OrderLine, len(o.Lines))
	for i, l := range o.Lines {
		line := *l
		c.Lines[i] = &line
	}
	return c
}
