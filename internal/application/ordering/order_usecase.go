package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/ordering"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// OrderUseCase consultas de pedidos y máquina de estados (MarkPaid, ChangeStatus).
type OrderUseCase struct {
	txRunner  OrderTxRunner
	orderRepo repository.OrderRepository
	cache     OrderCache
	metrics   Metrics
	log       zerolog.Logger
}

// NewOrderUseCase construye el caso de uso. cache y metrics nil usan implementaciones vacías.
func NewOrderUseCase(
	txRunner OrderTxRunner,
	orderRepo repository.OrderRepository,
	cache OrderCache,
	metrics Metrics,
	log zerolog.Logger,
) *OrderUseCase {
	if cache == nil {
		cache = NoopCache{}
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &OrderUseCase{
		txRunner:  txRunner,
		orderRepo: orderRepo,
		cache:     cache,
		metrics:   metrics,
		log:       log,
	}
}

// GetOrder obtiene un pedido con sus líneas. El cliente solo ve los propios; el admin ve todos.
func (uc *OrderUseCase) GetOrder(ctx context.Context, caller Caller, id string) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin && order.CustomerID != caller.ID {
		return nil, domain.ErrForbidden
	}
	out := dto.ToOrderResponse(order)
	return &out, nil
}

// load aplica cache-aside sobre el repositorio.
func (uc *OrderUseCase) load(ctx context.Context, id string) (*entity.Order, error) {
	if order, ok := uc.cache.Get(ctx, id); ok {
		return order, nil
	}
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.OrderNotFound(id)
	}
	uc.cache.Add(ctx, order)
	return order, nil
}

// ListMine lista los pedidos del cliente autenticado.
func (uc *OrderUseCase) ListMine(ctx context.Context, customerID string) ([]dto.OrderResponse, error) {
	orders, err := uc.orderRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

// ListPending lista pedidos que no están ENTREGADO ni RECHAZADO, más recientes primero.
func (uc *OrderUseCase) ListPending(ctx context.Context) ([]dto.OrderResponse, error) {
	orders, err := uc.orderRepo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

// MarkPaid transición PENDING_PAYMENT -> PAID solicitada por el propio cliente.
// Sin transactionRef se genera uno.
func (uc *OrderUseCase) MarkPaid(ctx context.Context, caller Caller, orderID, transactionRef string) (*dto.OrderResponse, error) {
	if transactionRef == "" {
		transactionRef = uuid.New().String()
	}
	order, err := uc.transition(ctx, orderID, func(o *entity.Order) error {
		if o.CustomerID != caller.ID {
			return domain.ErrForbidden
		}
		if err := ordering.CanMarkPaid(o.Status); err != nil {
			return err
		}
		o.Status = entity.OrderStatusPaid
		o.PaymentTxRef = transactionRef
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", orderID).Str("customer_id", caller.ID).Msg("pedido marcado como pagado")
	out := dto.ToOrderResponse(order)
	return &out, nil
}

// ChangeStatus cambio de estado administrativo. No valida el estado de origen:
// cualquier destino de la allow-list es aceptado. Registra aprobador y fecha.
func (uc *OrderUseCase) ChangeStatus(ctx context.Context, caller Caller, orderID, rawStatus string) (*dto.OrderResponse, error) {
	if !caller.IsAdmin {
		return nil, domain.ErrForbidden
	}
	status, err := ordering.ParseAdminTarget(rawStatus)
	if err != nil {
		return nil, err
	}
	order, err := uc.transition(ctx, orderID, func(o *entity.Order) error {
		now := time.Now().UTC()
		o.Status = status
		o.ApproverID = caller.ID
		o.ApprovedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order_id", orderID).
		Str("approver_id", caller.ID).
		Str("status", string(status)).
		Msg("estado de pedido actualizado")
	out := dto.ToOrderResponse(order)
	return &out, nil
}

// transition bloquea la cabecera, aplica fn y persiste. Tras el commit la caché queda con el pedido recargado.
func (uc *OrderUseCase) transition(ctx context.Context, orderID string, fn func(o *entity.Order) error) (*entity.Order, error) {
	var updated *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		_ repository.InventoryMovementRepository,
		_ repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		order, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := fn(order); err != nil {
			return err
		}
		if err := orderRepo.UpdateStatus(ctx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.StatusChanged(string(updated.Status))

	// Las líneas no se bloquean; se recargan para la respuesta y la caché
	full, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil || full == nil {
		uc.cache.Invalidate(ctx, orderID)
		return updated, nil
	}
	uc.cache.Set(ctx, full)
	return full, nil
}

func toOrderResponses(orders []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.ToOrderResponse(o))
	}
	return out
}
