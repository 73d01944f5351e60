package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementKindRestock = "restock" // compra: ingresa stock
	MovementKindConsume = "consume" // pedido: egresa stock
)

// InventoryMovement es un registro inmutable del ledger de inventario.
// Quantity siempre es positiva; el signo lo determina Kind.
type InventoryMovement struct {
	ID        string
	ProductID string
	Kind      string
	Quantity  int
	UnitPrice decimal.Decimal
	OrderID   string // vacío si no proviene de un pedido
	CreatedAt time.Time
}

// SignedQuantity devuelve el efecto del movimiento sobre el stock (+ restock, - consume).
func (m *InventoryMovement) SignedQuantity() int {
	if m.Kind == MovementKindConsume {
		return -m.Quantity
	}
	return m.Quantity
}

// Total devuelve Quantity * UnitPrice.
func (m *InventoryMovement) Total() decimal.Decimal {
	return m.UnitPrice.Mul(decimal.NewFromInt(int64(m.Quantity)))
}
