package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/ordering"
)

// OrderHandler maneja las peticiones HTTP de pedidos (protegido).
type OrderHandler struct {
	createUC  *ordering.CreateOrderUseCase
	orderUC   *ordering.OrderUseCase
	receiptUC *ordering.ReceiptUseCase
	adminRole string
}

// NewOrderHandler construye el handler.
func NewOrderHandler(
	createUC *ordering.CreateOrderUseCase,
	orderUC *ordering.OrderUseCase,
	receiptUC *ordering.ReceiptUseCase,
	adminRole string,
) *OrderHandler {
	return &OrderHandler{createUC: createUC, orderUC: orderUC, receiptUC: receiptUC, adminRole: adminRole}
}

// Create godoc
// @Summary      Crear pedido desde el carrito
// @Description  Descuenta inventario y guarda el pedido en PENDING_PAYMENT en una sola transacción.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Carrito"
// @Success      201   {object}  dto.CreateOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  StockErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.createUC.CreateOrder(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Mine lista los pedidos del cliente autenticado.
func (h *OrderHandler) Mine(c *fiber.Ctx) error {
	out, err := h.orderUC.ListMine(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Pending lista pedidos no terminados (solo admin).
func (h *OrderHandler) Pending(c *fiber.Ctx) error {
	out, err := h.orderUC.ListPending(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido con sus líneas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.orderUC.GetOrder(c.UserContext(), CallerFrom(c, h.adminRole), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt devuelve el comprobante PDF del pedido.
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.receiptUC.DownloadReceipt(c.UserContext(), CallerFrom(c, h.adminRole), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}

// Pay godoc
// @Summary      Marcar pedido como pagado
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true   "ID del pedido"
// @Param        body  body  dto.MarkPaidRequest   false  "Referencia de transacción"
// @Success      200   {object}  dto.OrderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pay [put]
func (h *OrderHandler) Pay(c *fiber.Ctx) error {
	var in dto.MarkPaidRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.orderUC.MarkPaid(c.UserContext(), CallerFrom(c, h.adminRole), c.Params("id"), in.TransactionRef)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus cambio administrativo de estado.
func (h *OrderHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orderUC.ChangeStatus(c.UserContext(), CallerFrom(c, h.adminRole), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
