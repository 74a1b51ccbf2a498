package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/orderdispatcher/auth-service/internal/core/domain"
)

// ProfilePublisher delivers profile-created events to a durable topic
// exchange. Topology is declared idempotently on every publish — broker-side
// declares are no-ops once the exchange and queue exist — so consumers and
// publishers can start in any order.
type ProfilePublisher struct {
	conn *amqp.Connection
	cfg  Config
}

func NewProfilePublisher(conn *amqp.Connection, cfg Config) *ProfilePublisher {
	return &ProfilePublisher{conn: conn, cfg: cfg}
}

// PublishProfileCreated serializes the event and publishes it marked
// persistent. Missing topology configuration fails before any broker I/O;
// broker errors are returned to the caller.
func (p *ProfilePublisher) PublishProfileCreated(ctx context.Context, event domain.ProfileCreatedEvent) error {
	if p.cfg.Exchange == "" || p.cfg.Queue == "" || p.cfg.RoutingKey == "" {
		return fmt.Errorf("%w: exchange, queue, and routing key are required", domain.ErrNotConfigured)
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("publish profile created: open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(p.cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("publish profile created: declare exchange: %w", err)
	}
	if _, err := ch.QueueDeclare(p.cfg.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("publish profile created: declare queue: %w", err)
	}
	if err := ch.QueueBind(p.cfg.Queue, p.cfg.RoutingKey, p.cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("publish profile created: bind queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("publish profile created: marshal: %w", err)
	}

	err = ch.PublishWithContext(ctx, p.cfg.Exchange, p.cfg.RoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish profile created: %w", err)
	}
	return nil
}
