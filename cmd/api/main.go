package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Pedidos-api/internal/application/inventory"
	"github.com/jhoicas/Pedidos-api/internal/application/ordering"
	"github.com/jhoicas/Pedidos-api/internal/application/payment"
	"github.com/jhoicas/Pedidos-api/internal/application/usecase"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	infracache "github.com/jhoicas/Pedidos-api/internal/infrastructure/cache"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/memory"
	inframetrics "github.com/jhoicas/Pedidos-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Pedidos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Pedidos-api/internal/interfaces/http"
	"github.com/jhoicas/Pedidos-api/pkg/config"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

// txRunner lo implementan tanto postgres.TxRunner como memory.TxRunner.
type txRunner interface {
	inventory.TxRunner
	ordering.OrderTxRunner
}

type storage struct {
	tx       txRunner
	products repository.ProductRepository
	moves    repository.InventoryMovementRepository
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	orderMetrics := inframetrics.NewOrderMetrics(reg)

	// Caché de lectura de pedidos (opcional)
	var orderCache ordering.OrderCache
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, se continúa sin caché")
		}
		orderCache = infracache.NewOrderCache(rdb, cfg.Redis.OrderTTL, log.Component("cache"))
	}

	// Notificación de stock consumido (opcional, best-effort)
	var notifier ordering.StockNotifier
	if cfg.Notify.Enabled() {
		amqpNotifier, err := notify.Dial(cfg.Notify.AMQPURL, cfg.Notify.Exchange)
		if err != nil {
			log.Warn().Err(err).Msg("rabbitmq no disponible, se continúa sin notificaciones")
		} else {
			defer amqpNotifier.Close()
			notifier = amqpNotifier
		}
	}

	registerMovementUC := inventory.NewRegisterMovementUseCase(
		store.tx, store.products, store.moves, cfg.Inventory.MinMovementQuantity, log.Component("inventory"),
	)
	createOrderUC := ordering.NewCreateOrderUseCase(
		store.tx, registerMovementUC, notifier, orderMetrics, cfg.Notify.Timeout, log.Component("ordering"),
	)
	orderUC := ordering.NewOrderUseCase(store.tx, store.orders, orderCache, orderMetrics, log.Component("ordering"))
	receiptUC := ordering.NewReceiptUseCase(orderUC, infrapdf.NewMarotoReceiptGenerator(cfg.App.Name))
	paymentUC := payment.NewUseCase(store.payments, store.orders, log.Component("payment"))
	productUC := usecase.NewProductUseCase(store.products)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		RegisterMovement: registerMovementUC,
		CreateOrder:      createOrderUC,
		OrderUC:          orderUC,
		ReceiptUC:        receiptUC,
		PaymentUC:        paymentUC,
		Gatherer:         reg,
		JWTSecret:        cfg.JWT.Secret,
		AdminRole:        cfg.JWT.AdminRole,
		RequestTimeout:   cfg.HTTP.RequestTimeout,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage elige el adaptador según STORAGE_DRIVER.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		s := memory.NewStore()
		return &storage{
			tx:       memory.NewTxRunner(s),
			products: memory.NewProductRepository(s),
			moves:    memory.NewInventoryMovementRepository(s),
			orders:   memory.NewOrderRepository(s),
			payments: memory.NewPaymentRepository(s),
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}
	return &storage{
		tx:       postgres.NewTxRunner(pool),
		products: postgres.NewProductRepository(pool),
		moves:    postgres.NewInventoryMovementRepository(pool),
		orders:   postgres.NewOrderRepository(pool),
		payments: postgres.NewPaymentRepository(pool),
		close:    pool.Close,
	}, nil
}
