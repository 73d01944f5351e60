package memory

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/inventory"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	v view
}

// NewProductRepository construye el repo fuera de transacción.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{v: view{s: s}}
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.v.wlock()()
	if _, ok := r.v.s.t.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.v.s.t.products[p.ID] = record[entity.Product]{val: *p, seq: r.v.s.next()}
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.v.rlock()()
	rec, ok := r.v.s.t.products[id]
	if !ok {
		return nil, nil
	}
	p := rec.val
	return &p, nil
}

// GetForUpdate en memoria el lock lo da la transacción completa.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ProductNotFound(id)
	}
	return p, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.v.wlock()()
	rec, ok := r.v.s.t.products[p.ID]
	if !ok {
		return domain.ProductNotFound(p.ID)
	}
	rec.val.Name = p.Name
	rec.val.Price = p.Price
	rec.val.UpdatedAt = p.UpdatedAt
	r.v.s.t.products[p.ID] = rec
	return nil
}

func (r *ProductRepo) ApplyMovement(_ context.Context, productID string, delta int) (int, error) {
	defer r.v.wlock()()
	rec, ok := r.v.s.t.products[productID]
	if !ok {
		return 0, domain.ProductNotFound(productID)
	}
	next, ok := inventory.ApplyDelta(rec.val.Quantity, delta)
	if !ok {
		return rec.val.Quantity, domain.NewStockError(productID, rec.val.Quantity, -delta)
	}
	rec.val.Quantity = next
	r.v.s.t.products[productID] = rec
	return next, nil
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	defer r.v.rlock()()
	items := page(sorted(r.v.s.t.products, nil), limit, offset)
	out := make([]*entity.Product, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	defer r.v.wlock()()
	if _, ok := r.v.s.t.products[id]; !ok {
		return domain.ProductNotFound(id)
	}
	delete(r.v.s.t.products, id)
	return nil
}
