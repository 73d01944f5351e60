package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/memory"
)

func newProduct(id string, qty int) *entity.Product {
	now := time.Now().UTC()
	return &entity.Product{ID: id, Name: "Prod " + id, Quantity: qty, Price: decimal.NewFromInt(2), CreatedAt: now, UpdatedAt: now}
}

func TestApplyMovement_NoPermiteNegativo(t *testing.T) {
	s := memory.NewStore()
	products := memory.NewProductRepository(s)
	ctx := context.Background()
	require.NoError(t, products.Create(ctx, newProduct("p1", 2)))

	_, err := products.ApplyMovement(ctx, "p1", -3)
	var stockErr *domain.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)

	next, err := products.ApplyMovement(ctx, "p1", -2)
	require.NoError(t, err)
	assert.Equal(t, 0, next)

	_, err = products.ApplyMovement(ctx, "nope", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestTxRunner_RollbackRestauraTodo(t *testing.T) {
	s := memory.NewStore()
	tx := memory.NewTxRunner(s)
	products := memory.NewProductRepository(s)
	orders := memory.NewOrderRepository(s)
	movs := memory.NewInventoryMovementRepository(s)
	ctx := context.Background()
	require.NoError(t, products.Create(ctx, newProduct("p1", 5)))

	boom := errors.New("boom")
	err := tx.RunOrder(ctx, func(movRepo repository.InventoryMovementRepository, productRepo repository.ProductRepository, orderRepo repository.OrderRepository) error {
		if _, err := productRepo.ApplyMovement(ctx, "p1", -4); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, &entity.InventoryMovement{ID: "m1", ProductID: "p1", Kind: entity.MovementKindConsume, Quantity: 4}); err != nil {
			return err
		}
		if err := orderRepo.Create(ctx, &entity.Order{ID: "o1", CustomerID: "c1", Status: entity.OrderStatusPendingPayment}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)
	m, err := movs.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Nil(t, m)
	o, err := orders.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestTxRunner_ContextoVencidoAntesDelCommit(t *testing.T) {
	s := memory.NewStore()
	tx := memory.NewTxRunner(s)
	products := memory.NewProductRepository(s)
	require.NoError(t, products.Create(context.Background(), newProduct("p1", 5)))

	ctx, cancel := context.WithCancel(context.Background())
	err := tx.Run(ctx, func(_ repository.InventoryMovementRepository, productRepo repository.ProductRepository) error {
		_, err := productRepo.ApplyMovement(ctx, "p1", 3)
		cancel()
		return err
	})
	assert.ErrorIs(t, err, context.Canceled)

	p, err := products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)

	err = tx.Run(ctx, func(repository.InventoryMovementRepository, repository.ProductRepository) error {
		t.Fatal("no debe ejecutarse con contexto cancelado")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOrderRepo_ClonaLineas(t *testing.T) {
	s := memory.NewStore()
	orders := memory.NewOrderRepository(s)
	ctx := context.Background()
	o := &entity.Order{
		ID: "o1", CustomerID: "c1", Status: entity.OrderStatusPendingPayment,
		Lines: []*entity.OrderLine{{ID: "l1", OrderID: "o1", ProductID: "p1", ProductName: "Pan", Quantity: 1}},
	}
	require.NoError(t, orders.Create(ctx, o))
	o.Lines[0].ProductName = "mutado"

	got, err := orders.GetByID(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "Pan", got.Lines[0].ProductName)

	_, err = orders.GetForUpdate(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestListas_MasRecientesPrimero(t *testing.T) {
	s := memory.NewStore()
	products := memory.NewProductRepository(s)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, products.Create(ctx, newProduct(id, 0)))
	}
	list, err := products.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "b", list[1].ID)

	list, err = products.List(ctx, 2, 5)
	require.NoError(t, err)
	assert.Empty(t, list)
}
