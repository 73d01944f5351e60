package repository

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// OrderRepository persiste pedidos junto con sus líneas.
type OrderRepository interface {
	// Create inserta cabecera y líneas.
	Create(ctx context.Context, order *entity.Order) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea la cabecera del pedido (sin líneas). Devuelve ErrOrderNotFound si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// UpdateStatus persiste status, approver, approved_at y payment_tx_ref.
	UpdateStatus(ctx context.Context, order *entity.Order) error
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Order, error)
	// ListPending devuelve pedidos no terminales, más recientes primero.
	ListPending(ctx context.Context) ([]*entity.Order, error)
}
