package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"rentalhub/internal/pkg/config"
	"rentalhub/internal/usecase"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher pushes booking lifecycle events onto a durable RabbitMQ queue.
// Messages are persistent JSON; consumers live outside this service.
type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func NewPublisher(cfg config.AMQPConfig) (*Publisher, func(), error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dial amqp broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to open amqp channel: %w", err)
	}

	// Idempotent; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	p := &Publisher{conn: conn, ch: ch, queue: cfg.Queue}
	cleanup := func() {
		_ = p.ch.Close()
		_ = p.conn.Close()
	}
	return p, cleanup, nil
}

func (p *Publisher) PublishStatusChanged(ctx context.Context, event usecase.BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	return p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

// NopPublisher is used when no broker is configured. Events are logged and
// dropped.
type NopPublisher struct{}

func (NopPublisher) PublishStatusChanged(_ context.Context, event usecase.BookingEvent) error {
	slog.Debug("event publishing disabled, dropping booking event",
		"booking_id", event.BookingID, "action", event.Action)
	return nil
}
