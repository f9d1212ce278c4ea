package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"cinehall/pkg/logger"
)

// Consumer drains the ticket notification topic and hands events to a
// Deliverer.
type Consumer interface {
	StartConsumers(ctx context.Context, numWorkers int) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

// Deliverer performs the actual delivery of one confirmation.
type Deliverer interface {
	Deliver(ctx context.Context, notification *TicketNotification) error
}

type ConsumerConfig struct {
	Brokers              []string
	GroupID              string
	Topics               []string
	SessionTimeoutMs     int
	HeartbeatMs          int
	RetryBackoffMs       int
	MaxProcessingTime    time.Duration
	AutoCommit           bool
	OffsetOldest         bool
	MaxRetries           int
	RetryBackoffDuration time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:              []string{"localhost:9092"},
		GroupID:              "cinehall-notifications",
		Topics:               []string{"ticket-notifications"},
		SessionTimeoutMs:     30000,
		HeartbeatMs:          3000,
		RetryBackoffMs:       100,
		MaxProcessingTime:    5 * time.Minute,
		AutoCommit:           true,
		OffsetOldest:         false,
		MaxRetries:           3,
		RetryBackoffDuration: time.Second,
	}
}

type KafkaTicketConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	deliverer     Deliverer
	topics        []string
	log           *logger.Logger
	ctx           context.Context
	cancel        context.CancelFunc
}

func NewKafkaTicketConsumer(config *ConsumerConfig, deliverer Deliverer) (Consumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Retry.Backoff = time.Duration(config.RetryBackoffMs) * time.Millisecond
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	if config.AutoCommit {
		saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
		saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &KafkaTicketConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		deliverer:     deliverer,
		topics:        config.Topics,
		log:           logger.GetDefault(),
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func (ktc *KafkaTicketConsumer) StartConsumers(ctx context.Context, numWorkers int) error {
	go ktc.handleErrors()

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			ktc.runWorker(ctx, workerID)
		}(i)
	}

	ktc.log.InfoWithContext(ctx, "notification consumer workers started", map[string]interface{}{
		"workers": numWorkers,
		"topics":  ktc.topics,
	})
	return nil
}

func (ktc *KafkaTicketConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &consumerGroupHandler{
		consumer: ktc,
		workerID: workerID,
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
			if err := ktc.consumerGroup.Consume(ctx, ktc.topics, handler); err != nil {
				ktc.log.ErrorWithContext(ctx, "consume failed", err, map[string]interface{}{
					"worker": workerID,
				})
				time.Sleep(time.Second)
			}
		}
	}
}

func (ktc *KafkaTicketConsumer) handleErrors() {
	for err := range ktc.consumerGroup.Errors() {
		ktc.log.ErrorWithContext(context.Background(), "consumer group error", err, nil)
	}
}

func (ktc *KafkaTicketConsumer) Stop() error {
	ktc.cancel()

	if err := ktc.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

func (ktc *KafkaTicketConsumer) HealthCheck(ctx context.Context) error {
	select {
	case <-ktc.ctx.Done():
		return fmt.Errorf("consumer context is cancelled")
	default:
		if ktc.deliverer == nil {
			return fmt.Errorf("deliverer not configured")
		}
		return nil
	}
}

type consumerGroupHandler struct {
	consumer *KafkaTicketConsumer
	workerID int
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			if err := h.processMessage(session.Context(), message); err != nil {
				h.consumer.log.ErrorWithContext(session.Context(), "message processing failed", err, map[string]interface{}{
					"worker": h.workerID,
					"topic":  message.Topic,
					"offset": message.Offset,
				})
			} else {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *consumerGroupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var notification TicketNotification
	if err := json.Unmarshal(message.Value, &notification); err != nil {
		return fmt.Errorf("failed to unmarshal notification: %w", err)
	}

	if err := h.deliverWithRetry(ctx, &notification); err != nil {
		notification.MarkFailed(err)
		return err
	}

	notification.MarkSent()
	return nil
}

func (h *consumerGroupHandler) deliverWithRetry(ctx context.Context, notification *TicketNotification) error {
	maxRetries := h.consumer.config.MaxRetries
	backoff := h.consumer.config.RetryBackoffDuration

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := h.consumer.deliverer.Deliver(ctx, notification)
		if err == nil {
			return nil
		}

		if attempt == maxRetries {
			return err
		}

		// Exponential backoff
		delay := backoff * time.Duration(1<<attempt)

		select {
		case <-time.After(delay):
			continue
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// LogDeliverer writes confirmations to the structured log. It stands in
// for a real mail or push integration.
type LogDeliverer struct {
	log *logger.Logger
}

func NewLogDeliverer() *LogDeliverer {
	return &LogDeliverer{log: logger.GetDefault()}
}

func (d *LogDeliverer) Deliver(ctx context.Context, notification *TicketNotification) error {
	d.log.InfoWithContext(ctx, "ticket confirmation delivered", map[string]interface{}{
		"notification_id": notification.ID.String(),
		"recipient":       notification.RecipientEmail,
		"movie":           notification.MovieTitle,
		"room":            notification.RoomTitle,
		"date":            notification.Date,
		"time_start":      notification.TimeStart,
		"seats":           notification.Seats,
		"total_price":     notification.TotalPrice,
	})
	return nil
}
