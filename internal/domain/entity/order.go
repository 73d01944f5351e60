package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del pedido.
type OrderStatus string

// Estados del pedido. PendingPayment es el inicial; Delivered y Rejected son terminales.
const (
	OrderStatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderStatusPaid           OrderStatus = "PAID"
	OrderStatusApproved       OrderStatus = "APPROVED"
	OrderStatusEnRoute        OrderStatus = "EN_ROUTE"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusRejected       OrderStatus = "REJECTED"
)

// IsTerminal indica si el pedido ya no admite más avances en el flujo normal.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusRejected
}

// Order representa la cabecera de un pedido con sus líneas.
// Total se calcula a partir de las líneas; nunca viene del cliente.
type Order struct {
	ID           string
	CustomerID   string
	Status       OrderStatus
	Total        decimal.Decimal
	ApproverID   string     // admin que cambió el estado por última vez
	ApprovedAt   *time.Time // momento del último cambio de estado por admin
	PaymentTxRef string     // referencia de la transacción de pago (MarkPaid)
	CreatedAt    time.Time
	Lines        []*OrderLine
}

// OrderLine es una línea del pedido con snapshot de nombre y precio al momento de la compra.
type OrderLine struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string          // snapshot
	UnitPrice   decimal.Decimal // snapshot
	Quantity    int
	Subtotal    decimal.Decimal
}
