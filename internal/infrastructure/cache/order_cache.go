// Package cache modelo de lectura de pedidos en Redis (cache-aside).
// Cada cambio de estado sobrescribe la entrada; los errores de Redis se registran y se tratan como miss.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Pedidos-api/internal/application/ordering"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

var _ ordering.OrderCache = (*OrderCache)(nil)

const keyPrefix = "pedidos:order:"

// OrderCache caché de pedidos sobre go-redis.
type OrderCache struct {
	client redis.Cmdable
	ttl    time.Duration
	log    zerolog.Logger
}

// NewOrderCache construye la caché. ttl <= 0 usa 5 minutos.
func NewOrderCache(client redis.Cmdable, ttl time.Duration, log zerolog.Logger) *OrderCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &OrderCache{client: client, ttl: ttl, log: log}
}

// Get devuelve (order, true) en hit.
func (c *OrderCache) Get(ctx context.Context, id string) (*entity.Order, bool) {
	val, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("order_id", id).Msg("redis: lectura de caché fallida")
		}
		return nil, false
	}
	var o entity.Order
	if err := json.Unmarshal(val, &o); err != nil {
		c.log.Warn().Err(err).Str("order_id", id).Msg("redis: entrada de caché corrupta")
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &o, true
}

// Add guarda el pedido solo si no hay entrada (SET NX).
func (c *OrderCache) Add(ctx context.Context, order *entity.Order) {
	val, err := json.Marshal(order)
	if err != nil {
		return
	}
	if err := c.client.SetNX(ctx, keyPrefix+order.ID, val, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("order_id", order.ID).Msg("redis: escritura de caché fallida")
	}
}

// Set sobrescribe la entrada con TTL; se usa tras un cambio de estado.
func (c *OrderCache) Set(ctx context.Context, order *entity.Order) {
	val, err := json.Marshal(order)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+order.ID, val, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("order_id", order.ID).Msg("redis: escritura de caché fallida")
	}
}

// Invalidate borra la entrada.
func (c *OrderCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		c.log.Warn().Err(err).Str("order_id", id).Msg("redis: invalidación fallida")
	}
}
