package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rafaelleal24/stock-control/internal/adapters/config"
	"github.com/rafaelleal24/stock-control/internal/core/logger"
	"github.com/rafaelleal24/stock-control/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

const appID = "stock-control"

// Broker publishes stock events to "exchange.<entity>" with the event name as
// routing key.
type Broker struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	config  config.RabbitMQConfig
}

var _ port.BrokerPort = (*Broker)(nil)

func NewBroker(cfg config.RabbitMQConfig) (*Broker, error) {
	b := &Broker{config: cfg}

	if err := b.connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	return b, nil
}

func ExchangeName(entityName string) string {
	return "exchange." + entityName
}

func (b *Broker) connect() error {
	conn, err := amqp.Dial(b.config.URL)
	if err != nil {
		return fmt.Errorf("failed to dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	for _, ec := range b.config.ExchangeConfigs {
		if err := ch.ExchangeDeclare(ec.Name, ec.Type, ec.Durable, ec.AutoDelete, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return fmt.Errorf("failed to declare exchange %s: %w", ec.Name, err)
		}
	}

	b.conn = conn
	b.channel = ch
	return nil
}

func (b *Broker) reconnect() error {
	if b.channel != nil {
		b.channel.Close()
		b.channel = nil
	}
	if b.conn != nil {
		b.conn.Close()
		b.conn = nil
	}
	return b.connect()
}

// PublishRaw retries up to MaxRetries times, reconnecting when the channel
// was lost. Waiting between attempts stops early if ctx is done.
func (b *Broker) PublishRaw(ctx context.Context, eventName, entityName string, data []byte) error {
	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         data,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         eventName,
		AppId:        appID,
	}
	exchange := ExchangeName(entityName)

	var lastErr error
	for attempt := 0; attempt <= b.config.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := wait(ctx, b.config.RetryDelay); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = b.tryPublish(ctx, exchange, eventName, msg)
		if lastErr == nil {
			return nil
		}
		logger.Warn(ctx, "broker: publish attempt failed", map[string]any{
			"attempt":    attempt + 1,
			"exchange":   exchange,
			"event_name": eventName,
			"error":      lastErr.Error(),
		})
	}

	return fmt.Errorf("failed to publish after %d attempts: %w", b.config.MaxRetries+1, lastErr)
}

func (b *Broker) tryPublish(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.channel == nil {
		if err := b.reconnect(); err != nil {
			return fmt.Errorf("reconnect failed: %w", err)
		}
	}

	if err := b.channel.PublishWithContext(ctx, exchange, routingKey, false, false, msg); err != nil {
		b.channel = nil
		return err
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var errs []error
	if b.channel != nil {
		if err := b.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing channel: %w", err))
		}
		b.channel = nil
	}
	if b.conn != nil {
		if err := b.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing connection: %w", err))
		}
		b.conn = nil
	}
	return errors.Join(errs...)
}

func (b *Broker) HealthCheck() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil || b.conn.IsClosed() {
		return errors.New("connection is closed")
	}
	if b.channel == nil {
		return errors.New("channel is nil")
	}
	return nil
}
