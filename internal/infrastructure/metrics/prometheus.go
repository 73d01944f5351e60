// Package metrics métricas Prometheus del flujo de pedidos.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/application/ordering"
)

var _ ordering.Metrics = (*OrderMetrics)(nil)

// OrderMetrics contadores e histogramas registrados en un Registry propio.
type OrderMetrics struct {
	ordersCreated       prometheus.Counter
	ordersRejected      *prometheus.CounterVec
	orderLines          prometheus.Histogram
	orderAmount         prometheus.Histogram
	createDuration      prometheus.Histogram
	statusChanges       *prometheus.CounterVec
	notificationsFailed prometheus.Counter
}

// NewOrderMetrics registra las métricas en reg.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	f := promauto.With(reg)
	return &OrderMetrics{
		ordersCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "pedidos_orders_created_total",
			Help: "Pedidos creados con éxito.",
		}),
		ordersRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pedidos_orders_rejected_total",
			Help: "Pedidos rechazados por categoría de error.",
		}, []string{"kind"}),
		orderLines: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "pedidos_order_lines",
			Help:    "Líneas por pedido.",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
		}),
		orderAmount: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "pedidos_order_total_amount",
			Help:    "Total de los pedidos creados.",
			Buckets: prometheus.ExponentialBuckets(10, 2.5, 10),
		}),
		createDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "pedidos_order_creation_duration_seconds",
			Help:    "Duración de CreateOrder (incluye la transacción).",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		statusChanges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pedidos_order_status_changes_total",
			Help: "Transiciones de estado por estado destino.",
		}, []string{"status"}),
		notificationsFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "pedidos_stock_notifications_failed_total",
			Help: "Notificaciones de stock consumido fallidas.",
		}),
	}
}

func (m *OrderMetrics) OrderCreated(lines int, total decimal.Decimal) {
	m.ordersCreated.Inc()
	m.orderLines.Observe(float64(lines))
	m.orderAmount.Observe(total.InexactFloat64())
}

func (m *OrderMetrics) OrderRejected(kind string) { m.ordersRejected.WithLabelValues(kind).Inc() }

func (m *OrderMetrics) ObserveCreateDuration(d time.Duration) {
	m.createDuration.Observe(d.Seconds())
}

func (m *OrderMetrics) StatusChanged(status string) { m.statusChanges.WithLabelValues(status).Inc() }

func (m *OrderMetrics) NotificationFailed() { m.notificationsFailed.Inc() }
