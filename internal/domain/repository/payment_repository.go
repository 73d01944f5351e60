package repository

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// PaymentRepository persiste pagos registrados contra pedidos.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	List(ctx context.Context) ([]*entity.Payment, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Payment, error)
	// Update y Delete devuelven ErrPaymentNotFound si el pago no existe.
	Update(ctx context.Context, payment *entity.Payment) error
	Delete(ctx context.Context, id string) error
}
