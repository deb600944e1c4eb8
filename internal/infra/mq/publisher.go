package mq

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const orderEventQueue = "order_events"

// Event types published on the order lifecycle.
const (
	EventOrderCreated = "order.created"
	EventOrderPaid    = "order.paid"
)

// OrderEvent is a post-commit notification. Checkout itself never waits
// on the queue; consumers handle emails, reporting and the like.
type OrderEvent struct {
	Type    string    `json:"type"`
	OrderID int64     `json:"order_id"`
	UserID  int64     `json:"user_id"`
	Total   string    `json:"total,omitempty"`
	At      time.Time `json:"at"`
}

// Publisher writes order events to the order_events queue.
type Publisher struct {
	conn *amqp.Connection
}

// NewPublisher wraps an open connection.
func NewPublisher(conn *amqp.Connection) *Publisher {
	return &Publisher{conn: conn}
}

// PublishOrderEvent declares the queue and publishes one JSON event.
func (p *Publisher) PublishOrderEvent(ctx context.Context, ev OrderEvent) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(orderEventQueue, true, false, false, false, nil); err != nil {
		return err
	}

	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	body, err := json.Marshal(&ev)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(
		ctx,
		"",
		orderEventQueue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
