package outbox

import (
	"time"
)

// Queue names for order events published through the outbox.
const (
	QueueOrderCreated       = "orders.order.created"
	QueueOrderStatusChanged = "orders.order.status_changed"
)

const defaultMaxRetries = 5

// OutboxMessage represents a message waiting to be published to RabbitMQ.
type OutboxMessage struct {
	ID           int64
	QueueName    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}

// NewMessage builds an outbox message published to the default exchange with
// the queue name as routing key.
func NewMessage(queueName string, payload []byte) OutboxMessage {
	now := time.Now()

	return OutboxMessage{
		QueueName:   queueName,
		RoutingKey:  queueName,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  defaultMaxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}
}
