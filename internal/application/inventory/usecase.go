package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/inventory"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional
// (restock, consume) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.InventoryMovementRepository
	minQuantity int
	log         zerolog.Logger
}

// NewRegisterMovementUseCase construye el caso de uso. minQuantity <= 0 usa el mínimo por defecto.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	minQuantity int,
	log zerolog.Logger,
) *RegisterMovementUseCase {
	if minQuantity <= 0 {
		minQuantity = inventory.DefaultMinMovementQuantity
	}
	return &RegisterMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		minQuantity: minQuantity,
		log:         log,
	}
}

// MovementInputDTO entrada para registrar un movimiento manual.
// UnitPrice nil => se toma el precio actual del producto.
type MovementInputDTO struct {
	ProductID string
	Type      string
	Quantity  int
	UnitPrice *decimal.Decimal
}

// RegisterMovement valida tipo y cantidad mínima, inicia una transacción, bloquea la fila
// del producto (SELECT FOR UPDATE), aplica el delta y guarda el movimiento.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*entity.InventoryMovement, error) {
	kind, err := inventory.NormalizeKind(input.Type)
	if err != nil {
		return nil, err
	}
	if input.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := inventory.ValidateAuthored(input.Quantity, uc.minQuantity); err != nil {
		return nil, err
	}
	if input.UnitPrice != nil {
		if input.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if err := domain.CheckMoneyScale(*input.UnitPrice); err != nil {
			return nil, err
		}
	}

	var mov *entity.InventoryMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		unitPrice := product.Price
		if input.UnitPrice != nil {
			unitPrice = *input.UnitPrice
		}
		mov, err = uc.record(ctx, movRepo, productRepo, product.ID, kind, input.Quantity, unitPrice, "", time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("product_id", mov.ProductID).
		Str("kind", mov.Kind).
		Int("quantity", mov.Quantity).
		Msg("movimiento de inventario registrado")
	return mov, nil
}

// RecordPurchase registra una compra (restock) sujeta a la cantidad mínima.
func (uc *RegisterMovementUseCase) RecordPurchase(ctx context.Context, productID string, quantity int, unitPrice *decimal.Decimal) (*entity.InventoryMovement, error) {
	return uc.RegisterMovement(ctx, MovementInputDTO{
		ProductID: productID,
		Type:      entity.MovementKindRestock,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
}

// ConsumeInTx ejecuta una salida (consume) usando los repositorios proporcionados (misma transacción del caller).
// Los movimientos derivados de pedidos están exentos de la cantidad mínima.
// Si retorna error (ej: StockError), el caller debe hacer rollback.
func (uc *RegisterMovementUseCase) ConsumeInTx(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	productID string,
	quantity int,
	unitPrice decimal.Decimal,
	orderID string,
	now time.Time,
) (*entity.InventoryMovement, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.record(ctx, movRepo, productRepo, productID, entity.MovementKindConsume, quantity, unitPrice, orderID, now)
}

func (uc *RegisterMovementUseCase) record(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	productID, kind string,
	quantity int,
	unitPrice decimal.Decimal,
	orderID string,
	now time.Time,
) (*entity.InventoryMovement, error) {
	delta, err := inventory.SignedQuantity(kind, quantity)
	if err != nil {
		return nil, err
	}
	if _, err := productRepo.ApplyMovement(ctx, productID, delta); err != nil {
		return nil, err
	}
	mov := &entity.InventoryMovement{
		ID:        uuid.New().String(),
		ProductID: productID,
		Kind:      kind,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		OrderID:   orderID,
		CreatedAt: now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}
