package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
)

// StockErrorResponse 409 con el detalle del producto sin stock.
type StockErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	ProductID string `json:"product_id"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

var statusByKind = map[domain.Kind]int{
	domain.KindValidation: fiber.StatusBadRequest,
	domain.KindNotFound:   fiber.StatusNotFound,
	domain.KindConflict:   fiber.StatusConflict,
	domain.KindState:      fiber.StatusConflict,
	domain.KindDependency: fiber.StatusBadGateway,
	domain.KindForbidden:  fiber.StatusForbidden,
}

// writeError traduce un error de dominio a HTTP. Los errores internos no exponen su mensaje.
func writeError(c *fiber.Ctx, err error) error {
	var stockErr *domain.StockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(StockErrorResponse{
			Code:      "INSUFFICIENT_STOCK",
			Message:   stockErr.Error(),
			ProductID: stockErr.ProductID,
			Available: stockErr.Available,
			Requested: stockErr.Requested,
		})
	}

	kind := domain.KindOf(err)
	if errors.Is(err, domain.ErrUnauthorized) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	}
	status, ok := statusByKind[kind]
	if !ok {
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: codeFor(err, kind), Message: err.Error()})
}

func codeFor(err error, kind domain.Kind) string {
	var entityErr *domain.EntityError
	switch {
	case errors.As(err, &entityErr) && kind == domain.KindNotFound:
		return "NOT_FOUND"
	case errors.Is(err, domain.ErrEmptyCart):
		return "EMPTY_CART"
	case errors.Is(err, domain.ErrBelowMinimumQuantity):
		return "BELOW_MINIMUM_QUANTITY"
	case errors.Is(err, domain.ErrMoneyScale):
		return "INVALID_MONEY_SCALE"
	case errors.Is(err, domain.ErrIllegalTransition):
		return "ILLEGAL_TRANSITION"
	case errors.Is(err, domain.ErrInvalidStatus):
		return "INVALID_STATUS"
	case errors.Is(err, domain.ErrDuplicate):
		return "DUPLICATE"
	}
	return string(kind)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
