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

// Consumer drains the booking event topic and sends customer emails.
type Consumer interface {
	Start(ctx context.Context) error
	Stop() error
}

type kafkaConsumer struct {
	consumerGroup sarama.ConsumerGroup
	topics        []string
	emailService  EmailService
	cancel        context.CancelFunc
}

func NewConsumer(cfg config.KafkaConfig, emailService EmailService) (Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = 30 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &kafkaConsumer{
		consumerGroup: consumerGroup,
		topics:        []string{cfg.BookingTopic},
		emailService:  emailService,
	}, nil
}

func (c *kafkaConsumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	go func() {
		for err := range c.consumerGroup.Errors() {
			log.Printf("Consumer group error: %v", err)
		}
	}()

	go func() {
		handler := &bookingEventHandler{emailService: c.emailService}
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := c.consumerGroup.Consume(ctx, c.topics, handler); err != nil {
					log.Printf("Error consuming booking events: %v", err)
					time.Sleep(time.Second)
				}
			}
		}
	}()

	log.Printf("Booking event consumer started for topics %v", c.topics)
	return nil
}

func (c *kafkaConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	return c.consumerGroup.Close()
}

type bookingEventHandler struct {
	emailService EmailService
}

func (h *bookingEventHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *bookingEventHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *bookingEventHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}
			if err := h.processMessage(session.Context(), message); err != nil {
				log.Printf("Error processing booking event: %v", err)
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *bookingEventHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var event bookings.BookingEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		// Malformed messages are dropped, not retried
		return fmt.Errorf("failed to unmarshal booking event: %w", err)
	}

	if event.ContactEmail == "" {
		return nil
	}

	return h.emailService.SendBookingEmail(ctx, event)
}
