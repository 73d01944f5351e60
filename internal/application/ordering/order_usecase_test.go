package ordering_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/ordering"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

func newOrderUC(f *fixture, cache ordering.OrderCache) *ordering.OrderUseCase {
	return ordering.NewOrderUseCase(f.tx, f.orders, cache, nil, zerolog.Nop())
}

// placeOrder crea un pedido de 1 unidad de p1 para el cliente.
func placeOrder(t *testing.T, f *fixture, customer string) string {
	t.Helper()
	out, err := f.createUC(nil).CreateOrder(context.Background(), customer, cart(item("p1", 1)))
	require.NoError(t, err)
	return out.Order.ID
}

func TestMarkPaid_PropietarioDesdePendiente(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 5, "1.00")
	id := placeOrder(t, f, customerA)
	uc := newOrderUC(f, nil)

	out, err := uc.MarkPaid(context.Background(), ordering.Caller{ID: customerA}, id, "tx-123")
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderStatusPaid), out.Status)
	assert.Equal(t, "tx-123", out.PaymentTxRef)
	assert.Len(t, out.Lines, 1, "la respuesta incluye las líneas")
}

func TestMarkPaid_SinReferenciaGeneraUna(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 5, "1.00")
	id := placeOrder(t, f, customerA)

	out, err := newOrderUC(f, nil).MarkPaid(context.Background(), ordering.Caller{ID: customerA}, id, "")
	require.NoError(t, err)
	assert.NotEmpty(t, out.PaymentTxRef)
}

func TestMarkPaid_OtroClienteEsRechazado(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 5, "1.00")
	id := placeOrder(t, f, customerA)

	_, err := newOrderUC(f, nil).MarkPaid(context.Background(), ordering.Caller{ID: customerB}, id, "tx")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	o, err := f.orders.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPendingPayment, o.Status)
}

func TestMarkPaid_DosVecesEsIlegal(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 5, "1.00")
	id := placeOrder(t, f, customerA)
	uc := newOrderUC(f, nil)
	caller := ordering.Caller{ID: customerA}

	_, err := uc.MarkPaid(context.Background(), caller, id, "tx-1")
	require.NoError(t, err)
	_, err = uc.MarkPaid(context.Background(), caller, id, "tx-2")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	o, err := f.orders.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "tx-1", o.PaymentTxRef)
}

func TestMarkPaid_PedidoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := newOrderUC(f, nil).MarkPaid(context.Background(), ordering.Caller{ID: customerA}, "nope", "tx")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestChangeStatus_SoloAdmin(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 5, "1.00")
	id := placeOrder(t, f, customerA)

	_, err := newOrderUC(f, nil).ChangeStatus(context.Background(), ordering.Caller{ID: customerA}, id, "APPROVED")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestChangeStatus_RegistraAprobador(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 5, "1.00")
	id := placeOrder(t, f, customerA)
	admin := ordering.Caller{ID: adminID, IsAdmin: true}

	out, err := newOrderUC(f, nil).ChangeStatus(context.Background(), admin, id, "aprobado")
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderStatusApproved), out.Status)
	assert.Equal(t, adminID, out.ApproverID)
	require.NotNil(t, out.ApprovedAt)
}

// El camino admin no valida el estado de origen: desde un terminal se puede volver a PAID.
func TestChangeStatus_NoValidaOrigen(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 5, "1.00")
	id := placeOrder(t, f, customerA)
	uc := newOrderUC(f, nil)
	admin := ordering.Caller{ID: adminID, IsAdmin: true}

	_, err := uc.ChangeStatus(context.Background(), admin, id, "REJECTED")
	require.NoError(t, err)
	out, err := uc.ChangeStatus(context.Background(), admin, id, "PAID")
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderStatusPaid), out.Status)
}

func TestChangeStatus_EstadoFueraDeLista(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 5, "1.00")
	id := placeOrder(t, f, customerA)
	admin := ordering.Caller{ID: adminID, IsAdmin: true}

	for _, s := range []string{"PENDING_PAYMENT", "CANCELLED", ""} {
		_, err := newOrderUC(f, nil).ChangeStatus(context.Background(), admin, id, s)
		assert.ErrorIs(t, err, domain.ErrInvalidStatus, s)
	}
}

func TestChangeStatus_PedidoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := newOrderUC(f, nil).ChangeStatus(context.Background(), ordering.Caller{ID: adminID, IsAdmin: true}, "nope", "PAID")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestGetOrder_VisibilidadYCache(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 5, "1.00")
	id := placeOrder(t, f, customerA)
	cache := newRecordingCache()
	uc := newOrderUC(f, cache)
	ctx := context.Background()

	_, err := uc.GetOrder(ctx, ordering.Caller{ID: customerB}, id)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.GetOrder(ctx, ordering.Caller{ID: customerA}, id)
	require.NoError(t, err)
	assert.Equal(t, id, out.ID)

	_, err = uc.GetOrder(ctx, ordering.Caller{ID: adminID, IsAdmin: true}, id)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.hits, "lecturas posteriores salen de la caché")

	// Un cambio de estado sobrescribe la entrada y la siguiente lectura ve el nuevo estado
	_, err = uc.MarkPaid(ctx, ordering.Caller{ID: customerA}, id, "tx")
	require.NoError(t, err)
	assert.Empty(t, cache.invalidated)
	out, err = uc.GetOrder(ctx, ordering.Caller{ID: customerA}, id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderStatusPaid), out.Status)
	assert.Equal(t, 3, cache.hits)

	_, err = uc.GetOrder(ctx, ordering.Caller{ID: customerA}, "nope")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

// Una lectura que leyó el pedido antes de la transición y escribe en caché después
// no debe dejar el estado anterior en la caché.
func TestGetOrder_LecturaTardiaNoPisaTransicion(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 5, "1.00")
	id := placeOrder(t, f, customerA)
	cache := newRecordingCache()
	uc := newOrderUC(f, cache)
	ctx := context.Background()

	stale, err := f.orders.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, entity.OrderStatusPendingPayment, stale.Status)

	_, err = uc.MarkPaid(ctx, ordering.Caller{ID: customerA}, id, "tx")
	require.NoError(t, err)
	cache.Add(ctx, stale)

	out, err := uc.GetOrder(ctx, ordering.Caller{ID: customerA}, id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderStatusPaid), out.Status)
	assert.Equal(t, 1, cache.hits)
}

func TestListPending_ExcluyeTerminales(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 5, "1.00")
	delivered := placeOrder(t, f, customerA)
	pending := placeOrder(t, f, customerB)
	uc := newOrderUC(f, nil)
	ctx := context.Background()

	_, err := uc.ChangeStatus(ctx, ordering.Caller{ID: adminID, IsAdmin: true}, delivered, "DELIVERED")
	require.NoError(t, err)

	list, err := uc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, pending, list[0].ID)

	mine, err := uc.ListMine(ctx, customerA)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, delivered, mine[0].ID)
}

type stubGenerator struct {
	err error
}

func (g stubGenerator) GenerateOrderReceipt(_ context.Context, o *entity.Order) ([]byte, error) {
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-" + o.ID), nil
}

func TestDownloadReceipt(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", "Pan", 5, "1.00")
	id := placeOrder(t, f, customerA)
	ctx := context.Background()

	receipts := ordering.NewReceiptUseCase(newOrderUC(f, nil), stubGenerator{})
	raw, name, err := receipts.DownloadReceipt(ctx, ordering.Caller{ID: customerA}, id)
	require.NoError(t, err)
	assert.Equal(t, "pedido_"+id+".pdf", name)
	assert.Equal(t, "%PDF-"+id, string(raw))

	_, _, err = receipts.DownloadReceipt(ctx, ordering.Caller{ID: customerB}, id)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	failing := ordering.NewReceiptUseCase(newOrderUC(f, nil), stubGenerator{err: errors.New("fuente no encontrada")})
	_, _, err = failing.DownloadReceipt(ctx, ordering.Caller{ID: customerA}, id)
	assert.Error(t, err)
}
