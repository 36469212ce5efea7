package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shenikar/danger_zones/internal/models"
)

// MessageWriter - контракт kafka.Writer, позволяет подменить его в тестах
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует события зон в топик Kafka.
// Ключ сообщения - ID зоны, поэтому события одной зоны попадают в одну партицию по порядку.
type KafkaPublisher struct {
	writer MessageWriter
}

// NewKafkaWriter создает kafka.Writer для топика событий
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
}

// NewKafkaPublisher создает новый KafkaPublisher
func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// Publish записывает событие в Kafka
func (p *KafkaPublisher) Publish(ctx context.Context, event models.ZoneEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal zone event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.ZoneID.String()),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish zone event to Kafka: %w", err)
	}
	return nil
}

// Close закрывает writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
