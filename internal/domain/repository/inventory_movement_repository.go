package repository

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para movimientos de inventario.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.InventoryMovement, error)
	List(ctx context.Context, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.InventoryMovement, error)
	// Delete borra el registro sin revertir su efecto sobre el stock.
	Delete(ctx context.Context, id string) error
}
