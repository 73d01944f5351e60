package memory

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos en memoria.
type PaymentRepo struct {
	v view
}

// NewPaymentRepository construye el repo.
func NewPaymentRepository(s *Store) *PaymentRepo {
	return &PaymentRepo{v: view{s: s}}
}

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	defer r.v.wlock()()
	r.v.s.t.payments[p.ID] = record[entity.Payment]{val: *p, seq: r.v.s.next()}
	return nil
}

func (r *PaymentRepo) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	defer r.v.rlock()()
	rec, ok := r.v.s.t.payments[id]
	if !ok {
		return nil, nil
	}
	p := rec.val
	return &p, nil
}

func (r *PaymentRepo) List(_ context.Context) ([]*entity.Payment, error) {
	defer r.v.rlock()()
	return toPtrs(sorted(r.v.s.t.payments, nil)), nil
}

func (r *PaymentRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.Payment, error) {
	defer r.v.rlock()()
	return toPtrs(sorted(r.v.s.t.payments, func(p entity.Payment) bool { return p.OrderID == orderID })), nil
}

func (r *PaymentRepo) Update(_ context.Context, p *entity.Payment) error {
	defer r.v.wlock()()
	rec, ok := r.v.s.t.payments[p.ID]
	if !ok {
		return domain.PaymentNotFound(p.ID)
	}
	rec.val = *p
	r.v.s.t.payments[p.ID] = rec
	return nil
}

func (r *PaymentRepo) Delete(_ context.Context, id string) error {
	defer r.v.wlock()()
	if _, ok := r.v.s.t.payments[id]; !ok {
		return domain.PaymentNotFound(id)
	}
	delete(r.v.s.t.payments, id)
	return nil
}
