package payment_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/payment"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/memory"
)

func setup(t *testing.T) (*payment.UseCase, *memory.OrderRepo) {
	t.Helper()
	s := memory.NewStore()
	orders := memory.NewOrderRepository(s)
	require.NoError(t, orders.Create(context.Background(), &entity.Order{
		ID: "o1", CustomerID: "c1", Status: entity.OrderStatusPendingPayment,
		Total: decimal.RequireFromString("10"), CreatedAt: time.Now().UTC(),
	}))
	return payment.NewUseCase(memory.NewPaymentRepository(s), orders, zerolog.Nop()), orders
}

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreate_EstadoInicialPendiente(t *testing.T) {
	uc, _ := setup(t)
	out, err := uc.Create(context.Background(), dto.CreatePaymentRequest{OrderID: "o1", Amount: amount("10"), PaymentTypeID: entity.PaymentTypeCash})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, out.PaymentStatus.ID)
	assert.Equal(t, "Pending", out.PaymentStatus.Name)
	assert.Equal(t, "Cash", out.PaymentType.Name)
	assert.NotEmpty(t, out.ID)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreatePaymentRequest{OrderID: "o1", Amount: amount("0"), PaymentTypeID: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = uc.Create(ctx, dto.CreatePaymentRequest{OrderID: "o1", Amount: amount("-5"), PaymentTypeID: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = uc.Create(ctx, dto.CreatePaymentRequest{OrderID: "o1", Amount: amount("0.001"), PaymentTypeID: 1})
	assert.ErrorIs(t, err, domain.ErrMoneyScale)

	_, err = uc.Create(ctx, dto.CreatePaymentRequest{OrderID: "o1", Amount: amount("5"), PaymentTypeID: 9})
	assert.ErrorIs(t, err, domain.ErrUnknownPaymentType)

	_, err = uc.Create(ctx, dto.CreatePaymentRequest{OrderID: "nope", Amount: amount("5"), PaymentTypeID: 1})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestVariosPagosPorPedido(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	for _, a := range []string{"4", "6"} {
		_, err := uc.Create(ctx, dto.CreatePaymentRequest{OrderID: "o1", Amount: amount(a), PaymentTypeID: 2})
		require.NoError(t, err)
	}
	list, err := uc.ListByOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestUpdate_ReemplazoCompleto(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreatePaymentRequest{OrderID: "o1", Amount: amount("10"), PaymentTypeID: 1})
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.UpdatePaymentRequest{
		Amount: amount("12.5"), PaymentTypeID: entity.PaymentTypeBankTransfer, PaymentStatusID: entity.PaymentStatusCompleted,
	})
	require.NoError(t, err)
	assert.True(t, amount("12.5").Equal(out.Amount))
	assert.Equal(t, "BankTransfer", out.PaymentType.Name)
	assert.Equal(t, "Completed", out.PaymentStatus.Name)
	assert.Equal(t, "o1", out.OrderID, "sin order_id se conserva el actual")

	_, err = uc.Update(ctx, created.ID, dto.UpdatePaymentRequest{Amount: amount("1"), PaymentTypeID: 1, PaymentStatusID: 7})
	assert.ErrorIs(t, err, domain.ErrUnknownPaymentStatus)

	_, err = uc.Update(ctx, created.ID, dto.UpdatePaymentRequest{Amount: amount("10.001"), PaymentTypeID: 1, PaymentStatusID: 1})
	assert.ErrorIs(t, err, domain.ErrMoneyScale)

	_, err = uc.Update(ctx, "nope", dto.UpdatePaymentRequest{Amount: amount("1"), PaymentTypeID: 1, PaymentStatusID: 1})
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
}

func TestUpdate_CambioDePedidoValidaExistencia(t *testing.T) {
	uc, orders := setup(t)
	ctx := context.Background()
	require.NoError(t, orders.Create(ctx, &entity.Order{
		ID: "o2", CustomerID: "c1", Status: entity.OrderStatusPendingPayment,
		Total: decimal.RequireFromString("3"), CreatedAt: time.Now().UTC(),
	}))
	created, err := uc.Create(ctx, dto.CreatePaymentRequest{OrderID: "o1", Amount: amount("10"), PaymentTypeID: 1})
	require.NoError(t, err)

	_, err = uc.Update(ctx, created.ID, dto.UpdatePaymentRequest{
		OrderID: "nope", Amount: amount("10"), PaymentTypeID: 1, PaymentStatusID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "o1", got.OrderID)

	out, err := uc.Update(ctx, created.ID, dto.UpdatePaymentRequest{
		OrderID: "o2", Amount: amount("10"), PaymentTypeID: 1, PaymentStatusID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "o2", out.OrderID)
}

func TestDelete_NoTocaElPedido(t *testing.T) {
	uc, orders := setup(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreatePaymentRequest{OrderID: "o1", Amount: amount("10"), PaymentTypeID: 1})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrPaymentNotFound)

	o, err := orders.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPendingPayment, o.Status)
}

func TestCatalogos(t *testing.T) {
	uc, _ := setup(t)
	types := uc.PaymentTypes()
	require.Len(t, types, 4)
	assert.Equal(t, dto.CatalogEntryResponse{ID: 4, Name: "BankTransfer"}, types[3])
	assert.Len(t, uc.PaymentStatuses(), 3)
}
