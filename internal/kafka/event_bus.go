package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/shopcore/storefront/internal/orders/domain"
)

// EventBus publishes order lifecycle events to Kafka topics. Messages are
// keyed by order ID so events for one order land on the same partition.
type EventBus struct {
	writer *kafka.Writer

	placedTopic        string
	statusChangedTopic string
}

// Config holds the Kafka connection settings for the event bus.
type Config struct {
	Brokers            []string
	OrderPlacedTopic   string
	StatusChangedTopic string
}

// NewEventBus creates a Kafka-backed event publisher.
func NewEventBus(cfg Config) *EventBus {
	return &EventBus{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
		placedTopic:        cfg.OrderPlacedTopic,
		statusChangedTopic: cfg.StatusChangedTopic,
	}
}

type orderPlacedEvent struct {
	OrderID    string    `json:"order_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type orderStatusChangedEvent struct {
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (b *EventBus) PublishOrderPlaced(ctx context.Context, orderID string) error {
	event := orderPlacedEvent{OrderID: orderID, OccurredAt: time.Now().UTC()}
	return b.publish(ctx, b.placedTopic, orderID, event)
}

func (b *EventBus) PublishOrderStatusChanged(ctx context.Context, orderID string, status domain.OrderStatus) error {
	event := orderStatusChangedEvent{
		OrderID:    orderID,
		Status:     string(status),
		OccurredAt: time.Now().UTC(),
	}
	return b.publish(ctx, b.statusChangedTopic, orderID, event)
}

func (b *EventBus) publish(ctx context.Context, topic, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event for topic %s: %w", topic, err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now().UTC(),
	}

	if err := b.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("publish to topic %s: %w", topic, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (b *EventBus) Close() error {
	return b.writer.Close()
}
