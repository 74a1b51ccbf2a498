package queue

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Config captures the broker connection and topology settings for the
// profile-created publisher.
type Config struct {
	URL        string
	Exchange   string
	Queue      string
	RoutingKey string
}

// Connect dials the broker with automatic connection recovery enabled.
// The connection is process-lifetime and shared; publishing opens a
// short-lived channel per call.
func Connect(cfg Config) (*amqp.Connection, error) {
	conn, err := amqp.DialConfig(cfg.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Properties: amqp.Table{
			"connection_name": "auth-service",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	return conn, nil
}
