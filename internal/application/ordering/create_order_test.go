package ordering_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/ordering"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

func TestCreateOrder_SnapshotsYTotal(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Café", 10, "2.50")
	f.seed(t, "p2", "Té", 5, "1.10")
	uc := f.createUC(nil)

	out, err := uc.CreateOrder(context.Background(), customerA, cart(
		dto.CartItemRequest{ProductID: "p1", Name: "Café promo", UnitPrice: decimal.RequireFromString("2.00"), Quantity: 3},
		item("p2", 2),
	))
	require.NoError(t, err)
	assert.Empty(t, out.Warnings)

	o := out.Order
	assert.Equal(t, string(entity.OrderStatusPendingPayment), o.Status)
	assert.Equal(t, customerA, o.CustomerID)
	require.Len(t, o.Lines, 2)
	assert.Equal(t, "Café promo", o.Lines[0].ProductName, "nombre del carrito")
	assert.True(t, decimal.RequireFromString("6.00").Equal(o.Lines[0].Subtotal))
	assert.Equal(t, "Té", o.Lines[1].ProductName, "sin nombre se usa el del producto")
	assert.True(t, decimal.RequireFromString("1.10").Equal(o.Lines[1].UnitPrice))
	assert.True(t, decimal.RequireFromString("8.20").Equal(o.Total), o.Total.String())

	assert.Equal(t, 7, f.stock(t, "p1"))
	assert.Equal(t, 3, f.stock(t, "p2"))

	movs, err := f.movs.ListByOrder(context.Background(), o.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementKindConsume, m.Kind)
	}
}

// Una línea de cantidad 1 es válida: los consumos de pedidos no tienen mínimo.
func TestCreateOrder_LineaDeUnaUnidad(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 1, "0.90")

	out, err := f.createUC(nil).CreateOrder(context.Background(), customerA, cart(item("p1", 1)))
	require.NoError(t, err)
	assert.Len(t, out.Order.Lines, 1)
	assert.Equal(t, 0, f.stock(t, "p1"))
}

// Los cambios posteriores del producto no alteran las líneas guardadas.
func TestCreateOrder_SnapshotInmutable(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 5, "1.00")
	out, err := f.createUC(nil).CreateOrder(context.Background(), customerA, cart(item("p1", 2)))
	require.NoError(t, err)

	p, err := f.products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	p.Name = "Pan integral"
	p.Price = decimal.RequireFromString("9.99")
	require.NoError(t, f.products.Update(context.Background(), p))

	o, err := f.orders.GetByID(context.Background(), out.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pan", o.Lines[0].ProductName)
	assert.True(t, decimal.RequireFromString("1.00").Equal(o.Lines[0].UnitPrice))
}

func TestCreateOrder_Validaciones(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 5, "1.00")
	uc := f.createUC(nil)
	ctx := context.Background()

	_, err := uc.CreateOrder(ctx, customerA, cart())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = uc.CreateOrder(ctx, "", cart(item("p1", 1)))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.CreateOrder(ctx, customerA, cart(item("p1", 0)))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateOrder(ctx, customerA, cart(dto.CartItemRequest{
		ProductID: "p1", Quantity: 1, UnitPrice: decimal.RequireFromString("-1"),
	}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 5, f.stock(t, "p1"))
	assert.Zero(t, f.movementCount(t))
}

func TestCreateOrder_PrecioConTresDecimales(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 5, "1.00")
	f.seed(t, "p2", "Leche", 5, "2.00")
	uc := f.createUC(nil)
	ctx := context.Background()

	priced := func(id, price string, qty int) dto.CartItemRequest {
		return dto.CartItemRequest{ProductID: id, Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
	}

	_, err := uc.CreateOrder(ctx, customerA, cart(priced("p1", "1.005", 1), priced("p2", "1.005", 1)))
	assert.ErrorIs(t, err, domain.ErrMoneyScale)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Equal(t, 5, f.stock(t, "p1"))
	assert.Zero(t, f.movementCount(t))

	// Ceros a la derecha no cuentan como decimales
	out, err := uc.CreateOrder(ctx, customerA, cart(priced("p1", "1.500", 1), priced("p2", "2.25", 3)))
	require.NoError(t, err)
	sum := decimal.Zero
	for _, l := range out.Order.Lines {
		assert.True(t, l.Subtotal.Equal(l.Subtotal.Round(2)), "subtotal %s sin redondeo pendiente", l.Subtotal)
		sum = sum.Add(l.Subtotal)
	}
	assert.True(t, decimal.RequireFromString("8.25").Equal(out.Order.Total))
	assert.True(t, sum.Equal(out.Order.Total))
}

func TestCreateOrder_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 5, "1.00")

	_, err := f.createUC(nil).CreateOrder(context.Background(), customerA, cart(item("p1", 1), item("nope", 1)))
	require.ErrorIs(t, err, domain.ErrProductNotFound)
	var entityErr *domain.EntityError
	require.ErrorAs(t, err, &entityErr)
	assert.Equal(t, "nope", entityErr.ID)

	assert.Equal(t, 5, f.stock(t, "p1"), "nada se descuenta")
	assert.Zero(t, f.movementCount(t))
}

func TestCreateOrder_StockInsuficiente_NoMutaNada(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 10, "1.00")
	f.seed(t, "p2", "Leche", 1, "2.00")

	_, err := f.createUC(nil).CreateOrder(context.Background(), customerA, cart(item("p1", 2), item("p2", 5)))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var stockErr *domain.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p2", stockErr.ProductID)
	assert.Equal(t, 1, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)

	assert.Equal(t, 10, f.stock(t, "p1"))
	assert.Equal(t, 1, f.stock(t, "p2"))
	assert.Zero(t, f.movementCount(t))
	orders, err := f.orders.ListByCustomer(context.Background(), customerA)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

// Un producto repetido en el carrito se valida por la suma de sus líneas.
func TestCreateOrder_ProductoRepetidoSeAgrega(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 5, "1.00")

	_, err := f.createUC(nil).CreateOrder(context.Background(), customerA, cart(item("p1", 3), item("p1", 3)))
	var stockErr *domain.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 6, stockErr.Requested)
	assert.Equal(t, 5, f.stock(t, "p1"))
}

// failingInventory delega en el caso de uso real y falla en la llamada número failAt.
type failingInventory struct {
	inner  ordering.InventoryUseCase
	calls  int
	failAt int
}

func (fi *failingInventory) ConsumeInTx(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	productID string, quantity int, unitPrice decimal.Decimal, orderID string, now time.Time,
) (*entity.InventoryMovement, error) {
	fi.calls++
	if fi.calls == fi.failAt {
		return nil, errors.New("fallo de almacenamiento")
	}
	return fi.inner.ConsumeInTx(ctx, movRepo, productRepo, productID, quantity, unitPrice, orderID, now)
}

func TestCreateOrder_FalloIntermedioRevierteTodo(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 10, "1.00")
	f.seed(t, "p2", "Leche", 10, "2.00")
	inv := &failingInventory{inner: f.inv, failAt: 2}
	uc := ordering.NewCreateOrderUseCase(f.tx, inv, nil, nil, time.Second, zerolog.Nop())

	_, err := uc.CreateOrder(context.Background(), customerA, cart(item("p1", 4), item("p2", 4)))
	require.Error(t, err)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))

	assert.Equal(t, 10, f.stock(t, "p1"), "el primer consumo se revierte")
	assert.Equal(t, 10, f.stock(t, "p2"))
	assert.Zero(t, f.movementCount(t))
}

// expiringInventory cancela el contexto después de consumir, antes del commit.
type expiringInventory struct {
	inner  ordering.InventoryUseCase
	cancel context.CancelFunc
}

func (ei *expiringInventory) ConsumeInTx(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	productID string, quantity int, unitPrice decimal.Decimal, orderID string, now time.Time,
) (*entity.InventoryMovement, error) {
	mov, err := ei.inner.ConsumeInTx(ctx, movRepo, productRepo, productID, quantity, unitPrice, orderID, now)
	ei.cancel()
	return mov, err
}

func TestCreateOrder_ContextoVencidoAntesDelCommit(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 10, "1.00")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	uc := ordering.NewCreateOrderUseCase(f.tx, &expiringInventory{inner: f.inv, cancel: cancel}, nil, nil, time.Second, zerolog.Nop())

	_, err := uc.CreateOrder(ctx, customerA, cart(item("p1", 4)))
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 10, f.stock(t, "p1"))
	assert.Zero(t, f.movementCount(t))
}

// Dos pedidos concurrentes de 6 sobre un stock de 10: exactamente uno gana.
func TestCreateOrder_ConcurrenciaSinSobreventa(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 10, "1.00")
	uc := f.createUC(nil)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		conflict int
	)
	for _, customer := range []string{customerA, customerB} {
		wg.Add(1)
		go func(customer string) {
			defer wg.Done()
			_, err := uc.CreateOrder(context.Background(), customer, cart(item("p1", 6)))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				conflict++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}(customer)
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflict)
	assert.Equal(t, 4, f.stock(t, "p1"))
	assert.Equal(t, 1, f.movementCount(t))
}

func TestCreateOrder_ConcurrenciaMuchosPedidos(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 10, "1.00")
	f.seed(t, "p2", "Leche", 10, "1.00")
	uc := f.createUC(nil)

	var wg sync.WaitGroup
	errs := make(chan error, 30)
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Orden de carrito alternado: el bloqueo ordenado evita interbloqueos
			items := []dto.CartItemRequest{item("p1", 1), item("p2", 1)}
			if i%2 == 1 {
				items[0], items[1] = items[1], items[0]
			}
			_, err := uc.CreateOrder(context.Background(), customerA, cart(items...))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	}
	assert.Equal(t, 10, created)
	assert.Equal(t, 0, f.stock(t, "p1"))
	assert.Equal(t, 0, f.stock(t, "p2"))
}

func TestCreateOrder_NotificacionFallidaEsAdvertencia(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 10, "1.00")
	f.seed(t, "p2", "Leche", 10, "2.00")
	notifier := &recordingNotifier{failOn: map[string]bool{"p2": true}}

	out, err := f.createUC(notifier).CreateOrder(context.Background(), customerA, cart(item("p1", 1), item("p2", 1)))
	require.NoError(t, err, "la notificación no revierte el pedido")
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "p2")

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	require.Len(t, notifier.events, 2)
	for _, e := range notifier.events {
		assert.Equal(t, out.Order.ID, e.OrderID)
		assert.NotEmpty(t, e.MovementID)
	}
	assert.Equal(t, 9, f.stock(t, "p1"))
	assert.Equal(t, 9, f.stock(t, "p2"))
}
