package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Pedidos-api/internal/application/inventory"
	"github.com/jhoicas/Pedidos-api/internal/application/ordering"
	"github.com/jhoicas/Pedidos-api/internal/application/payment"
	"github.com/jhoicas/Pedidos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	CreateOrder      *ordering.CreateOrderUseCase
	OrderUC          *ordering.OrderUseCase
	ReceiptUC        *ordering.ReceiptUseCase
	PaymentUC        *payment.UseCase
	Gatherer         prometheus.Gatherer // nil => sin /metrics
	JWTSecret        string
	AdminRole        string
	RequestTimeout   time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret), RequestTimeout(deps.RequestTimeout))
	admin := RequireRole(deps.AdminRole)

	// Pedidos. Las rutas fijas van antes de /:id
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.OrderUC, deps.ReceiptUC, deps.AdminRole)
	orders.Post("/", orderHandler.Create)
	orders.Get("/mine", orderHandler.Mine)
	orders.Get("/pending", admin, orderHandler.Pending)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/receipt", orderHandler.Receipt)
	orders.Put("/:id/pay", orderHandler.Pay)
	orders.Put("/:id/status", admin, orderHandler.ChangeStatus)

	// Productos
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", admin, productHandler.Create)
	products.Put("/:id", admin, productHandler.Update)
	products.Delete("/:id", admin, productHandler.Delete)

	// Ledger de inventario
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement)
	invGroup.Post("/purchases", admin, inventoryHandler.RecordPurchase)
	invGroup.Post("/movements", admin, inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/movements/:id", inventoryHandler.GetMovement)
	invGroup.Delete("/movements/:id", admin, inventoryHandler.DeleteMovement)

	// Pagos
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments := api.Group("/payments")
	payments.Get("/", paymentHandler.List)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/order/:orderId", paymentHandler.ListByOrder)
	payments.Get("/:id", paymentHandler.GetByID)
	payments.Put("/:id", paymentHandler.Update)
	payments.Delete("/:id", paymentHandler.Delete)
	api.Get("/payment-types", paymentHandler.Types)
	api.Get("/payment-statuses", paymentHandler.Statuses)
}
