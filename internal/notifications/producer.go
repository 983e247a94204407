package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"

	"flyviet/internal/bookings"
	"flyviet/internal/shared/config"
)

// Producer publishes booking lifecycle events to Kafka. It satisfies
// bookings.EventPublisher.
type Producer interface {
	PublishBookingEvent(ctx context.Context, event bookings.BookingEvent) error
	Close() error
	HealthCheck(ctx context.Context) error
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer creates a Kafka producer for booking events. Idempotent
// writes and WaitForAll acks keep the event stream duplicate-free even
// across broker retries.
func NewProducer(cfg config.KafkaConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash partitioner keeps all events for one booking on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("Kafka booking event producer connected to %v", cfg.Brokers)
	return &kafkaProducer{producer: producer, topic: cfg.BookingTopic}, nil
}

func (p *kafkaProducer) PublishBookingEvent(ctx context.Context, event bookings.BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.BookingID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
		},
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}

	log.Printf("Published %s for booking %s (partition %d, offset %d)",
		event.Type, event.BookingNumber, partition, offset)
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.producer.Close()
}

func (p *kafkaProducer) HealthCheck(ctx context.Context) error {
	if p.producer == nil {
		return fmt.Errorf("producer not initialized")
	}
	return nil
}

// noopProducer is used when Kafka is disabled by configuration.
type noopProducer struct{}

// NewNoopProducer returns a producer that drops events. Useful in local
// development without a broker.
func NewNoopProducer() Producer {
	return noopProducer{}
}

func (noopProducer) PublishBookingEvent(ctx context.Context, event bookings.BookingEvent) error {
	return nil
}

func (noopProducer) Close() error { return nil }

func (noopProducer) HealthCheck(ctx context.Context) error { return nil }
