// Package payment registra pagos contra pedidos. La referencia al pedido es débil (solo ID):
// borrar o actualizar un pago no toca el pedido ni el stock.
package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// OrderLookup puerto mínimo para validar que un pedido existe.
type OrderLookup interface {
	GetByID(ctx context.Context, id string) (*entity.Order, error)
}

// UseCase casos de uso de pagos.
type UseCase struct {
	repo   repository.PaymentRepository
	orders OrderLookup
	log    zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.PaymentRepository, orders OrderLookup, log zerolog.Logger) *UseCase {
	return &UseCase{repo: repo, orders: orders, log: log}
}

// Create registra un pago en estado Pendiente. El pedido debe existir y el monto ser > 0.
func (uc *UseCase) Create(ctx context.Context, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if err := domain.CheckMoneyScale(in.Amount); err != nil {
		return nil, err
	}
	if _, ok := entity.LookupPaymentType(in.PaymentTypeID); !ok {
		return nil, domain.ErrUnknownPaymentType
	}
	if in.OrderID == "" {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.OrderNotFound(in.OrderID)
	}
	p := &entity.Payment{
		ID:              uuid.New().String(),
		OrderID:         in.OrderID,
		Amount:          in.Amount,
		PaymentTypeID:   in.PaymentTypeID,
		PaymentStatusID: entity.PaymentStatusPending,
		PaidAt:          time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("payment_id", p.ID).Str("order_id", p.OrderID).Str("amount", p.Amount.String()).Msg("pago registrado")
	return toPaymentResponse(p), nil
}

// GetByID obtiene un pago con tipo y estado resueltos.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.PaymentNotFound(id)
	}
	return toPaymentResponse(p), nil
}

// List lista todos los pagos.
func (uc *UseCase) List(ctx context.Context) ([]dto.PaymentResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toPaymentResponses(list), nil
}

// ListByOrder lista los pagos de un pedido (vacío si no hay).
func (uc *UseCase) ListByOrder(ctx context.Context, orderID string) ([]dto.PaymentResponse, error) {
	list, err := uc.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toPaymentResponses(list), nil
}

// Update reemplaza el pago completo. Valida monto, tipo y estado.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if err := domain.CheckMoneyScale(in.Amount); err != nil {
		return nil, err
	}
	if _, ok := entity.LookupPaymentType(in.PaymentTypeID); !ok {
		return nil, domain.ErrUnknownPaymentType
	}
	if _, ok := entity.LookupPaymentStatus(in.PaymentStatusID); !ok {
		return nil, domain.ErrUnknownPaymentStatus
	}
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.PaymentNotFound(id)
	}
	p := &entity.Payment{
		ID:              id,
		OrderID:         in.OrderID,
		Amount:          in.Amount,
		PaymentTypeID:   in.PaymentTypeID,
		PaymentStatusID: in.PaymentStatusID,
		PaidAt:          current.PaidAt,
	}
	if p.OrderID == "" {
		p.OrderID = current.OrderID
	}
	if p.OrderID != current.OrderID {
		order, err := uc.orders.GetByID(ctx, p.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, domain.OrderNotFound(p.OrderID)
		}
	}
	if in.PaidAt != nil {
		p.PaidAt = in.PaidAt.UTC()
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPaymentResponse(p), nil
}

// Delete elimina un pago. No revierte nada sobre el pedido.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("payment_id", id).Msg("pago eliminado")
	return nil
}

// PaymentTypes catálogo de tipos de pago.
func (uc *UseCase) PaymentTypes() []dto.CatalogEntryResponse {
	types := entity.PaymentTypes()
	out := make([]dto.CatalogEntryResponse, 0, len(types))
	for _, t := range types {
		out = append(out, dto.CatalogEntryResponse{ID: t.ID, Name: t.Name})
	}
	return out
}

// PaymentStatuses catálogo de estados de pago.
func (uc *UseCase) PaymentStatuses() []dto.CatalogEntryResponse {
	statuses := entity.PaymentStatuses()
	out := make([]dto.CatalogEntryResponse, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, dto.CatalogEntryResponse{ID: s.ID, Name: s.Name})
	}
	return out
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	t, _ := entity.LookupPaymentType(p.PaymentTypeID)
	s, _ := entity.LookupPaymentStatus(p.PaymentStatusID)
	return &dto.PaymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		Amount:        p.Amount,
		PaidAt:        p.PaidAt,
		PaymentType:   dto.CatalogEntryResponse{ID: t.ID, Name: t.Name},
		PaymentStatus: dto.CatalogEntryResponse{ID: s.ID, Name: s.Name},
	}
}

func toPaymentResponses(list []*entity.Payment) []dto.PaymentResponse {
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPaymentResponse(p))
	}
	return out
}
