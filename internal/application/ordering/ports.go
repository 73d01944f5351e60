package ordering

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// OrderTxRunner ejecuta una función dentro de una transacción que incluye repos de inventario y pedidos.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// InventoryUseCase interfaz para integrar pedidos con el ledger de inventario.
// ConsumeInTx registra un consume usando los repositorios del caller (misma transacción).
// Si retorna error (ej: StockError), el caller debe hacer rollback.
type InventoryUseCase interface {
	ConsumeInTx(
		ctx context.Context,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		productID string,
		quantity int,
		unitPrice decimal.Decimal,
		orderID string, // referencia al pedido en inventory_movements.order_id
		now time.Time,
	) (*entity.InventoryMovement, error)
}

// StockConsumedEvent notificación post-commit hacia el servicio de reportes de inventario.
type StockConsumedEvent struct {
	OrderID    string    `json:"order_id"`
	ProductID  string    `json:"product_id"`
	MovementID string    `json:"movement_id"`
	Quantity   int       `json:"quantity"`
	OccurredAt time.Time `json:"occurred_at"`
}

// StockNotifier publica eventos de stock consumido. Es best-effort: un error no revierte el pedido.
type StockNotifier interface {
	NotifyStockConsumed(ctx context.Context, event StockConsumedEvent) error
}

// OrderCache modelo de lectura cacheado de pedidos (cache-aside).
// Add solo escribe si la clave no existe (camino de lectura); Set sobrescribe (camino de escritura).
// Una lectura tardía con el estado anterior nunca pisa el estado escrito por una transición.
type OrderCache interface {
	Get(ctx context.Context, id string) (*entity.Order, bool)
	Add(ctx context.Context, order *entity.Order)
	Set(ctx context.Context, order *entity.Order)
	Invalidate(ctx context.Context, id string)
}

// Metrics contadores del flujo de pedidos.
type Metrics interface {
	OrderCreated(lines int, total decimal.Decimal)
	OrderRejected(kind string)
	ObserveCreateDuration(d time.Duration)
	StatusChanged(status string)
	NotificationFailed()
}

// ReceiptGenerator genera la representación gráfica (PDF) de un pedido.
type ReceiptGenerator interface {
	GenerateOrderReceipt(ctx context.Context, order *entity.Order) ([]byte, error)
}

// Caller identidad del usuario autenticado.
type Caller struct {
	ID      string
	IsAdmin bool
}
