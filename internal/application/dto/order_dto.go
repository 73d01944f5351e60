package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItemRequest ítem del carrito. Name y UnitPrice son el snapshot que queda en la línea.
type CartItemRequest struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Items []CartItemRequest `json:"items"`
}

// MarkPaidRequest body para PUT /api/orders/:id/pay. TransactionRef vacío => se genera uno.
type MarkPaidRequest struct {
	TransactionRef string `json:"transaction_ref"`
}

// ChangeStatusRequest body para PUT /api/orders/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// OrderLineResponse línea del pedido (snapshot inmutable).
type OrderLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de un pedido con sus líneas.
type OrderResponse struct {
	ID           string              `json:"id"`
	CustomerID   string              `json:"customer_id"`
	Status       string              `json:"status"`
	Total        decimal.Decimal     `json:"total"`
	ApproverID   string              `json:"approver_id,omitempty"`
	ApprovedAt   *time.Time          `json:"approved_at,omitempty"`
	PaymentTxRef string              `json:"payment_tx_ref,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	Lines        []OrderLineResponse `json:"lines"`
}

// CreateOrderResponse pedido creado más advertencias de notificaciones fallidas (no fatales).
type CreateOrderResponse struct {
	Order    OrderResponse `json:"order"`
	Warnings []string      `json:"warnings,omitempty"`
}
