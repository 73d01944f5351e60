package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment registra la intención de pago asociada a un pedido.
// OrderID es una referencia débil: no hay ownership ni borrado en cascada.
type Payment struct {
	ID              string
	OrderID         string
	Amount          decimal.Decimal
	PaymentTypeID   int
	PaymentStatusID int
	PaidAt          time.Time
}

// PaymentType tipo de pago (catálogo fijo).
type PaymentType struct {
	ID   int
	Name string
}

// PaymentStatus estado de pago (catálogo fijo).
type PaymentStatus struct {
	ID   int
	Name string
}

// Identificadores sembrados de los catálogos.
const (
	PaymentTypeCash         = 1
	PaymentTypeCreditCard   = 2
	PaymentTypeDebitCard    = 3
	PaymentTypeBankTransfer = 4

	PaymentStatusPending   = 1
	PaymentStatusCompleted = 2
	PaymentStatusFailed    = 3
)

// Catálogos inmutables del proceso; solo se exponen por valor.
var (
	paymentTypes = []PaymentType{
		{ID: PaymentTypeCash, Name: "Cash"},
		{ID: PaymentTypeCreditCard, Name: "CreditCard"},
		{ID: PaymentTypeDebitCard, Name: "DebitCard"},
		{ID: PaymentTypeBankTransfer, Name: "BankTransfer"},
	}
	paymentStatuses = []PaymentStatus{
		{ID: PaymentStatusPending, Name: "Pending"},
		{ID: PaymentStatusCompleted, Name: "Completed"},
		{ID: PaymentStatusFailed, Name: "Failed"},
	}
)

// PaymentTypes devuelve una copia del catálogo de tipos de pago.
func PaymentTypes() []PaymentType {
	out := make([]PaymentType, len(paymentTypes))
	copy(out, paymentTypes)
	return out
}

// PaymentStatuses devuelve una copia del catálogo de estados de pago.
func PaymentStatuses() []PaymentStatus {
	out := make([]PaymentStatus, len(paymentStatuses))
	copy(out, paymentStatuses)
	return out
}

// LookupPaymentType busca un tipo de pago por ID.
func LookupPaymentType(id int) (PaymentType, bool) {
	for _, t := range paymentTypes {
		if t.ID == id {
			return t, true
		}
	}
	return PaymentType{}, false
}

// LookupPaymentStatus busca un estado de pago por ID.
func LookupPaymentStatus(id int) (PaymentStatus, bool) {
	for _, s := range paymentStatuses {
		if s.ID == id {
			return s, true
		}
	}
	return PaymentStatus{}, false
}
