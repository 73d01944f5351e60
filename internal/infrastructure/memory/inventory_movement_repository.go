package memory

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*MovementRepo)(nil)

// MovementRepo ledger de movimientos en memoria.
type MovementRepo struct {
	v view
}

// NewInventoryMovementRepository construye el repo fuera de transacción.
func NewInventoryMovementRepository(s *Store) *MovementRepo {
	return &MovementRepo{v: view{s: s}}
}

func (r *MovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	defer r.v.wlock()()
	r.v.s.t.movements[m.ID] = record[entity.InventoryMovement]{val: *m, seq: r.v.s.next()}
	return nil
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.InventoryMovement, error) {
	defer r.v.rlock()()
	rec, ok := r.v.s.t.movements[id]
	if !ok {
		return nil, nil
	}
	m := rec.val
	return &m, nil
}

func (r *MovementRepo) List(_ context.Context, limit, offset int) ([]*entity.InventoryMovement, error) {
	defer r.v.rlock()()
	return toPtrs(page(sorted(r.v.s.t.movements, nil), limit, offset)), nil
}

func (r *MovementRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	defer r.v.rlock()()
	items := sorted(r.v.s.t.movements, func(m entity.InventoryMovement) bool { return m.ProductID == productID })
	return toPtrs(page(items, limit, offset)), nil
}

func (r *MovementRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.InventoryMovement, error) {
	defer r.v.rlock()()
	return toPtrs(sorted(r.v.s.t.movements, func(m entity.InventoryMovement) bool { return m.OrderID == orderID })), nil
}

// Delete borra el registro sin tocar la cantidad del producto.
func (r *MovementRepo) Delete(_ context.Context, id string) error {
	defer r.v.wlock()()
	if _, ok := r.v.s.t.movements[id]; !ok {
		return domain.MovementNotFound(id)
	}
	delete(r.v.s.t.movements, id)
	return nil
}

func toPtrs[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}
