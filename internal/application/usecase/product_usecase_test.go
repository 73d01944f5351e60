package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/usecase"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/memory"
)

func ptr[T any](v T) *T { return &v }

func TestProductUseCase_CRUD(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()))
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{Name: "  Leche  ", Price: decimal.RequireFromString("3.10")})
	require.NoError(t, err)
	assert.Equal(t, "Leche", created.Name)
	assert.Equal(t, 0, created.Quantity, "el stock solo cambia con movimientos")

	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Price: ptr(decimal.RequireFromString("3.50"))})
	require.NoError(t, err)
	assert.Equal(t, "Leche", updated.Name)
	assert.True(t, decimal.RequireFromString("3.50").Equal(updated.Price))

	list, err := uc.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrProductNotFound)
}

func TestProductUseCase_Validaciones(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()))
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: " ", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Pan", Price: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Pan", Price: decimal.RequireFromString("1.001")})
	assert.ErrorIs(t, err, domain.ErrMoneyScale)

	created, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Pan", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: ptr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{Price: ptr(decimal.RequireFromString("2.999"))})
	assert.ErrorIs(t, err, domain.ErrMoneyScale)
	_, err = uc.Update(ctx, "nope", dto.UpdateProductRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
