package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest body para POST /api/payments. El estado inicial siempre es Pendiente.
type CreatePaymentRequest struct {
	OrderID       string          `json:"order_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentTypeID int             `json:"payment_type_id"`
}

// UpdatePaymentRequest reemplazo completo de un pago.
type UpdatePaymentRequest struct {
	OrderID         string          `json:"order_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentTypeID   int             `json:"payment_type_id"`
	PaymentStatusID int             `json:"payment_status_id"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
}

// CatalogEntryResponse entrada de catálogo (tipo o estado de pago).
type CatalogEntryResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// PaymentResponse pago con tipo y estado resueltos.
type PaymentResponse struct {
	ID            string               `json:"id"`
	OrderID       string               `json:"order_id"`
	Amount        decimal.Decimal      `json:"amount"`
	PaidAt        time.Time            `json:"paid_at"`
	PaymentType   CatalogEntryResponse `json:"payment_type"`
	PaymentStatus CatalogEntryResponse `json:"payment_status"`
}
