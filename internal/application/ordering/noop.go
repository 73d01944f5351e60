package ordering

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// NoopNotifier se usa cuando no hay broker configurado.
type NoopNotifier struct{}

func (NoopNotifier) NotifyStockConsumed(context.Context, StockConsumedEvent) error { return nil }

// NoopCache se usa cuando no hay Redis configurado.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (*entity.Order, bool) { return nil, false }
func (NoopCache) Add(context.Context, *entity.Order)                {}
func (NoopCache) Set(context.Context, *entity.Order)                {}
func (NoopCache) Invalidate(context.Context, string)                {}

// NoopMetrics descarta las métricas.
type NoopMetrics struct{}

func (NoopMetrics) OrderCreated(int, decimal.Decimal)   {}
func (NoopMetrics) OrderRejected(string)                {}
func (NoopMetrics) ObserveCreateDuration(time.Duration) {}
func (NoopMetrics) StatusChanged(string)                {}
func (NoopMetrics) NotificationFailed()                 {}
