package inventory

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// GetMovement obtiene un movimiento por ID.
func (uc *RegisterMovementUseCase) GetMovement(ctx context.Context, id string) (*entity.InventoryMovement, error) {
	mov, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.MovementNotFound(id)
	}
	return mov, nil
}

// ListMovements lista movimientos, opcionalmente filtrados por producto.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	if productID != "" {
		return uc.movRepo.ListByProduct(ctx, productID, limit, offset)
	}
	return uc.movRepo.List(ctx, limit, offset)
}

// DeleteMovement borra el registro del ledger. No revierte el stock.
func (uc *RegisterMovementUseCase) DeleteMovement(ctx context.Context, id string) error {
	mov, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if mov == nil {
		return domain.MovementNotFound(id)
	}
	if err := uc.movRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Warn().Str("movement_id", id).Str("product_id", mov.ProductID).Msg("movimiento eliminado sin ajuste de stock")
	return nil
}
