package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/infrastructure/metrics"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

func TestOrderMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewOrderMetrics(reg)

	m.OrderCreated(3, decimal.RequireFromString("25.50"))
	m.OrderCreated(1, decimal.RequireFromString("4"))
	m.OrderRejected("CONFLICT")
	m.ObserveCreateDuration(15 * time.Millisecond)
	m.StatusChanged("PAID")
	m.StatusChanged("PAID")
	m.NotificationFailed()

	fams := gather(t, reg)
	assert.Equal(t, 2.0, fams["pedidos_orders_created_total"].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, uint64(2), fams["pedidos_order_lines"].GetMetric()[0].GetHistogram().GetSampleCount())
	assert.InDelta(t, 29.5, fams["pedidos_order_total_amount"].GetMetric()[0].GetHistogram().GetSampleSum(), 1e-9)
	assert.Equal(t, 1.0, fams["pedidos_stock_notifications_failed_total"].GetMetric()[0].GetCounter().GetValue())

	rejected := fams["pedidos_orders_rejected_total"].GetMetric()
	require.Len(t, rejected, 1)
	assert.Equal(t, "CONFLICT", rejected[0].GetLabel()[0].GetValue())

	changes := fams["pedidos_order_status_changes_total"].GetMetric()
	require.Len(t, changes, 1)
	assert.Equal(t, 2.0, changes[0].GetCounter().GetValue())
}
