package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Validación (antes de cualquier mutación)
	ErrEmptyCart            = errors.New("el carrito no puede estar vacío")
	ErrBelowMinimumQuantity = errors.New("cantidad por debajo del mínimo permitido")
	ErrInvalidMovementKind  = errors.New("tipo de movimiento inválido")
	ErrInvalidAmount        = errors.New("el monto debe ser mayor a 0")
	ErrUnknownPaymentType   = errors.New("tipo de pago inexistente")
	ErrUnknownPaymentStatus = errors.New("estado de pago inexistente")
	ErrMoneyScale           = errors.New("los importes admiten como máximo 2 decimales")

	// Recursos inexistentes
	ErrProductNotFound  = errors.New("producto no encontrado")
	ErrOrderNotFound    = errors.New("pedido no encontrado")
	ErrPaymentNotFound  = errors.New("pago no encontrado")
	ErrMovementNotFound = errors.New("movimiento no encontrado")

	// Conflictos
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Máquina de estados
	ErrInvalidStatus     = errors.New("estado de pedido inválido")
	ErrIllegalTransition = errors.New("transición de estado no permitida")

	// Dependencias externas (best-effort)
	ErrNotificationFailed = errors.New("notificación externa fallida")
)

// Kind clasifica un error para decidir cómo se expone al caller.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindState      Kind = "STATE"
	KindDependency Kind = "DEPENDENCY"
	KindForbidden  Kind = "FORBIDDEN"
	KindInternal   Kind = "INTERNAL"
)

var kindBySentinel = []struct {
	err  error
	kind Kind
}{
	{ErrInvalidInput, KindValidation},
	{ErrEmptyCart, KindValidation},
	{ErrBelowMinimumQuantity, KindValidation},
	{ErrInvalidMovementKind, KindValidation},
	{ErrInvalidAmount, KindValidation},
	{ErrUnknownPaymentType, KindValidation},
	{ErrUnknownPaymentStatus, KindValidation},
	{ErrMoneyScale, KindValidation},
	{ErrNotFound, KindNotFound},
	{ErrProductNotFound, KindNotFound},
	{ErrOrderNotFound, KindNotFound},
	{ErrPaymentNotFound, KindNotFound},
	{ErrMovementNotFound, KindNotFound},
	{ErrInsufficientStock, KindConflict},
	{ErrDuplicate, KindConflict},
	{ErrConflict, KindConflict},
	{ErrInvalidStatus, KindState},
	{ErrIllegalTransition, KindState},
	{ErrNotificationFailed, KindDependency},
	{ErrUnauthorized, KindForbidden},
	{ErrForbidden, KindForbidden},
}

// KindOf devuelve la categoría del error. Errores desconocidos (p. ej. fallos de BD) son KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, k := range kindBySentinel {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// StockError indica qué producto no tiene stock suficiente y cuánto hay disponible.
type StockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: disponible %d, solicitado %d",
		e.ProductID, e.Available, e.Requested)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// NewStockError construye el error de conflicto de stock.
func NewStockError(productID string, available, requested int) error {
	return &StockError{ProductID: productID, Available: available, Requested: requested}
}

// EntityError asocia un error sentinel con el ID de la entidad afectada.
type EntityError struct {
	Err error
	ID  string
}

func (e *EntityError) Error() string { return fmt.Sprintf("%s: %s", e.Err.Error(), e.ID) }

func (e *EntityError) Unwrap() error { return e.Err }

// ProductNotFound devuelve ErrProductNotFound con el ID del producto.
func ProductNotFound(id string) error { return &EntityError{Err: ErrProductNotFound, ID: id} }

// OrderNotFound devuelve ErrOrderNotFound con el ID del pedido.
func OrderNotFound(id string) error { return &EntityError{Err: ErrOrderNotFound, ID: id} }

// PaymentNotFound devuelve ErrPaymentNotFound con el ID del pago.
func PaymentNotFound(id string) error { return &EntityError{Err: ErrPaymentNotFound, ID: id} }

// MovementNotFound devuelve ErrMovementNotFound con el ID del movimiento.
func MovementNotFound(id string) error { return &EntityError{Err: ErrMovementNotFound, ID: id} }
