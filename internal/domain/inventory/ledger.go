package inventory

import (
	"strings"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// DefaultMinMovementQuantity cantidad mínima para movimientos registrados manualmente.
// Es política de negocio: los movimientos generados por pedidos están exentos.
const DefaultMinMovementQuantity = 3

// Alias heredados de clientes anteriores ("compra" / "pedido").
var kindAliases = map[string]string{
	entity.MovementKindRestock: entity.MovementKindRestock,
	entity.MovementKindConsume: entity.MovementKindConsume,
	"compra":                   entity.MovementKindRestock,
	"pedido":                   entity.MovementKindConsume,
}

// NormalizeKind devuelve el tipo canónico o ErrInvalidMovementKind.
func NormalizeKind(kind string) (string, error) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(kind))]
	if !ok {
		return "", domain.ErrInvalidMovementKind
	}
	return k, nil
}

// SignedQuantity traduce (kind, quantity) al delta de stock: consume => -quantity, restock => +quantity.
func SignedQuantity(kind string, quantity int) (int, error) {
	k, err := NormalizeKind(kind)
	if err != nil {
		return 0, err
	}
	if k == entity.MovementKindConsume {
		return -quantity, nil
	}
	return quantity, nil
}

// ValidateAuthored valida un movimiento creado directamente (no derivado de un pedido).
func ValidateAuthored(quantity, minQuantity int) error {
	if minQuantity <= 0 {
		minQuantity = DefaultMinMovementQuantity
	}
	if quantity < minQuantity {
		return domain.ErrBelowMinimumQuantity
	}
	return nil
}

// ApplyDelta calcula quantity' = quantity + delta. ok=false si el resultado sería negativo.
func ApplyDelta(quantity, delta int) (next int, ok bool) {
	next = quantity + delta
	if next < 0 {
		return quantity, false
	}
	return next, true
}

// Balance suma los efectos con signo de una secuencia de movimientos.
func Balance(movements []*entity.InventoryMovement) int {
	total := 0
	for _, m := range movements {
		total += m.SignedQuantity()
	}
	return total
}
