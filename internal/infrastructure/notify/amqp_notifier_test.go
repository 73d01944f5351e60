package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/ordering"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/notify"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent   []published
	err    error
	closed bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestNotifyStockConsumed_PublicaJSONPersistente(t *testing.T) {
	ch := &fakeChannel{}
	n := notify.NewAMQPNotifier(ch, "inventory.events")
	event := ordering.StockConsumedEvent{
		OrderID: "o1", ProductID: "p1", MovementID: "m1", Quantity: 2,
		OccurredAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	require.NoError(t, n.NotifyStockConsumed(context.Background(), event))
	require.Len(t, ch.sent, 1)
	got := ch.sent[0]
	assert.Equal(t, "inventory.events", got.exchange)
	assert.Equal(t, notify.RoutingKeyStockConsumed, got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, "m1", got.msg.MessageId)

	var decoded ordering.StockConsumedEvent
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, event, decoded)

	require.NoError(t, n.Close())
	assert.True(t, ch.closed)
}

func TestNotifyStockConsumed_ErrorDelBroker(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	n := notify.NewAMQPNotifier(ch, "inventory.events")
	err := n.NotifyStockConsumed(context.Background(), ordering.StockConsumedEvent{OrderID: "o1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amqp: publicar")
}
