package repository

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción actual.
	// Devuelve ErrProductNotFound si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update modifica nombre y precio, nunca quantity. Update y Delete devuelven ErrProductNotFound si no existe.
	Update(ctx context.Context, product *entity.Product) error
	// ApplyMovement suma delta a quantity. Devuelve StockError si el resultado fuera negativo.
	ApplyMovement(ctx context.Context, productID string, delta int) (int, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
