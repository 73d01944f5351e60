// Package notify publica eventos de stock consumido hacia el servicio de reportes de inventario.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/Pedidos-api/internal/application/ordering"
)

var _ ordering.StockNotifier = (*AMQPNotifier)(nil)

// RoutingKeyStockConsumed clave de ruteo de los eventos.
const RoutingKeyStockConsumed = "inventory.stock.consumed"

// Channel subconjunto de *amqp.Channel usado para publicar.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPNotifier publicador RabbitMQ. Un canal compartido protegido por mutex.
type AMQPNotifier struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  Channel
	exchange string
}

// Dial conecta con RabbitMQ y declara el exchange (topic, durable).
func Dial(url, exchange string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp: conectar: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp: abrir canal: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp: declarar exchange: %w", err)
	}
	return &AMQPNotifier{conn: conn, channel: ch, exchange: exchange}, nil
}

// NewAMQPNotifier construye el notificador sobre un canal existente (útil en tests).
func NewAMQPNotifier(ch Channel, exchange string) *AMQPNotifier {
	return &AMQPNotifier{channel: ch, exchange: exchange}
}

// NotifyStockConsumed publica el evento como JSON persistente.
func (n *AMQPNotifier) NotifyStockConsumed(ctx context.Context, event ordering.StockConsumedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("amqp: serializar evento: %w", err)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	err = n.channel.PublishWithContext(ctx, n.exchange, RoutingKeyStockConsumed, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		MessageId:    event.MovementID,
	})
	if err != nil {
		return fmt.Errorf("amqp: publicar: %w", err)
	}
	return nil
}

// Close cierra canal y conexión.
func (n *AMQPNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.channel != nil {
		_ = n.channel.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
