package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario compartido.
// Quantity solo cambia a través del ledger de movimientos (ApplyMovement), nunca por CRUD.
type Product struct {
	ID        string
	Name      string
	Quantity  int             // stock disponible, nunca negativo
	Price     decimal.Decimal // precio unitario de venta (> 0)
	CreatedAt time.Time
	UpdatedAt time.Time
}
