package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stagepass/internal/shared/config"
	"stagepass/pkg/logger"

	"github.com/IBM/sarama"
)

// Event is the booking lifecycle message published to Kafka for downstream
// consumers (email, SMS, analytics).
type Event struct {
	Type        string    `json:"type"`
	BookingID   string    `json:"booking_id"`
	EventID     string    `json:"event_id"`
	UserID      string    `json:"user_id"`
	BookingRef  string    `json:"booking_ref"`
	TotalAmount float64   `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Producer publishes booking events. The noop variant keeps call sites
// unconditional when Kafka is disabled.
type Producer interface {
	PublishBookingEvent(ctx context.Context, event Event) error
	Close() error
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer builds a Kafka producer, or a noop one when disabled.
func NewProducer(cfg config.KafkaConfig) (Producer, error) {
	if !cfg.Enabled {
		return &noopProducer{}, nil
	}

	saramaCfg := sarama.NewConfig()
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Retry.Max = 3
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.Compression = sarama.CompressionSnappy
	saramaCfg.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &kafkaProducer{producer: producer, topic: cfg.BookingTopic}, nil
}

// PublishBookingEvent sends the event keyed by booking id so every message
// for one booking lands on the same partition, preserving order.
func (p *kafkaProducer) PublishBookingEvent(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.BookingID),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}

	logger.GetDefault().InfoWithContext(ctx, "booking event published",
		"type", event.Type, "booking_id", event.BookingID,
		"partition", partition, "offset", offset)
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.producer.Close()
}

type noopProducer struct{}

func (n *noopProducer) PublishBookingEvent(ctx context.Context, event Event) error { return nil }
func (n *noopProducer) Close() error                                               { return nil }
