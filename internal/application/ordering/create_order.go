package ordering

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/ordering"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

const defaultNotifyTimeout = 2 * time.Second

// CreateOrderUseCase crea un pedido y descuenta el inventario en una sola transacción.
type CreateOrderUseCase struct {
	txRunner      OrderTxRunner
	inventoryUC   InventoryUseCase
	notifier      StockNotifier
	metrics       Metrics
	notifyTimeout time.Duration
	log           zerolog.Logger
}

// NewCreateOrderUseCase construye el caso de uso. notifier y metrics nil usan implementaciones vacías.
func NewCreateOrderUseCase(
	txRunner OrderTxRunner,
	inventoryUC InventoryUseCase,
	notifier StockNotifier,
	metrics Metrics,
	notifyTimeout time.Duration,
	log zerolog.Logger,
) *CreateOrderUseCase {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	if notifyTimeout <= 0 {
		notifyTimeout = defaultNotifyTimeout
	}
	return &CreateOrderUseCase{
		txRunner:      txRunner,
		inventoryUC:   inventoryUC,
		notifier:      notifier,
		metrics:       metrics,
		notifyTimeout: notifyTimeout,
		log:           log,
	}
}

// CreateOrder valida el carrito, bloquea los productos, registra un consume por línea y guarda
// el pedido en PENDING_PAYMENT. Todo o nada: cualquier error deja stock y ledger intactos.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, customerID string, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	start := time.Now()
	order, movements, err := uc.createOrder(ctx, customerID, in)
	uc.metrics.ObserveCreateDuration(time.Since(start))
	if err != nil {
		uc.metrics.OrderRejected(string(domain.KindOf(err)))
		uc.log.Warn().Err(err).Str("customer_id", customerID).Msg("pedido rechazado, transacción revertida")
		return nil, err
	}
	uc.metrics.OrderCreated(len(order.Lines), order.Total)
	uc.log.Info().
		Str("order_id", order.ID).
		Str("customer_id", customerID).
		Str("total", order.Total.String()).
		Int("lines", len(order.Lines)).
		Msg("pedido creado")

	return &dto.CreateOrderResponse{
		Order:    dto.ToOrderResponse(order),
		Warnings: uc.notifyConsumed(ctx, movements),
	}, nil
}

func (uc *CreateOrderUseCase) createOrder(ctx context.Context, customerID string, in dto.CreateOrderRequest) (*entity.Order, []*entity.InventoryMovement, error) {
	if customerID == "" {
		return nil, nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, nil, domain.ErrEmptyCart
	}

	// Cantidad total solicitada por producto (un producto puede repetirse en el carrito)
	requested := make(map[string]int, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.UnitPrice.IsNegative() {
			return nil, nil, domain.ErrInvalidInput
		}
		if err := domain.CheckMoneyScale(item.UnitPrice); err != nil {
			return nil, nil, err
		}
		requested[item.ProductID] += item.Quantity
	}
	// Orden fijo de bloqueo para evitar deadlocks entre pedidos concurrentes
	productIDs := make([]string, 0, len(requested))
	for id := range requested {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	now := time.Now().UTC()
	order := &entity.Order{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Status:     entity.OrderStatusPendingPayment,
		CreatedAt:  now,
	}
	var movements []*entity.InventoryMovement

	err := uc.txRunner.RunOrder(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		// 1) Leer y bloquear todos los productos antes de mutar nada
		products := make(map[string]*entity.Product, len(productIDs))
		for _, id := range productIDs {
			product, err := productRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if product.Quantity < requested[id] {
				return domain.NewStockError(id, product.Quantity, requested[id])
			}
			products[id] = product
		}

		// 2) Consume por línea + snapshot de nombre y precio del carrito
		lines := make([]*entity.OrderLine, 0, len(in.Items))
		for _, item := range in.Items {
			product := products[item.ProductID]
			name, unitPrice := item.Name, item.UnitPrice
			if name == "" {
				name = product.Name
			}
			if unitPrice.IsZero() {
				unitPrice = product.Price
			}
			mov, err := uc.inventoryUC.ConsumeInTx(ctx, movRepo, productRepo, item.ProductID, item.Quantity, unitPrice, order.ID, now)
			if err != nil {
				return err
			}
			movements = append(movements, mov)
			lines = append(lines, &entity.OrderLine{
				ID:          uuid.New().String(),
				OrderID:     order.ID,
				ProductID:   item.ProductID,
				ProductName: name,
				UnitPrice:   unitPrice,
				Quantity:    item.Quantity,
				Subtotal:    ordering.LineSubtotal(unitPrice, item.Quantity),
			})
		}

		// 3) Cabecera con total calculado
		order.Lines = lines
		order.Total = ordering.OrderTotal(lines)
		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, nil, err
	}
	return order, movements, nil
}

// notifyConsumed publica un evento por movimiento después del commit. Los fallos se devuelven como advertencias.
func (uc *CreateOrderUseCase) notifyConsumed(ctx context.Context, movements []*entity.InventoryMovement) []string {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.notifyTimeout)
	defer cancel()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		warnings []string
	)
	for _, mov := range movements {
		wg.Add(1)
		go func(mov *entity.InventoryMovement) {
			defer wg.Done()
			err := uc.notifier.NotifyStockConsumed(ctx, StockConsumedEvent{
				OrderID:    mov.OrderID,
				ProductID:  mov.ProductID,
				MovementID: mov.ID,
				Quantity:   mov.Quantity,
				OccurredAt: mov.CreatedAt,
			})
			if err == nil {
				return
			}
			uc.metrics.NotificationFailed()
			uc.log.Warn().Err(err).Str("order_id", mov.OrderID).Str("product_id", mov.ProductID).Msg("notificación de stock fallida")
			mu.Lock()
			warnings = append(warnings, domain.ErrNotificationFailed.Error()+": producto "+mov.ProductID)
			mu.Unlock()
		}(mov)
	}
	wg.Wait()
	sort.Strings(warnings)
	return warnings
}

