package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event types published to the storefront stream.
const (
	TypeUserRegistered = "user_registered"
	TypeOrderPlaced    = "order_placed"
	TypeProductCreated = "product_created"
	TypeProductUpdated = "product_updated"
	TypeProductDeleted = "product_deleted"
)

// Producer publishes storefront events to Kafka. A nil Producer is valid and
// silently drops events, so wiring stays optional per environment.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer creates a Producer for the given brokers and topic. Returns nil
// when no brokers are configured.
func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 {
		return nil
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 5 * time.Second,
		},
	}
}

// Publish serializes the event as JSON and writes it keyed by key.
func (p *Producer) Publish(ctx context.Context, eventType, key string, payload interface{}) error {
	if p == nil {
		return nil
	}

	event := map[string]interface{}{
		"type":       eventType,
		"occurredAt": time.Now().UTC().Format(time.RFC3339),
		"payload":    payload,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal failed: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
	})
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
