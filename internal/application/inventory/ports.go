package inventory

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// TxRunner abre una unidad atómica sobre el ledger y el stock. Si fn devuelve error
// ningún movimiento ni cambio de cantidad queda persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
