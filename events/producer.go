package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher delivers order events. Delivery is best effort from the caller's point of view.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error
	Close() error
}

// queueTimeout bounds the partition metadata lookup that precedes queueing a message.
const queueTimeout = 2 * time.Second

type KafkaProducer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaProducer writes to topic on the comma-separated brokers list. Writes are
// asynchronous: PublishOrderPlaced returns once the message is queued, and delivery
// failures are logged from the completion callback.
func NewKafkaProducer(brokers, topic string, logger *zap.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Async:        true,
		Completion:   deliveryReport(logger),
	}
	return &KafkaProducer{writer: writer, logger: logger}
}

func deliveryReport(logger *zap.Logger) func([]kafka.Message, error) {
	return func(messages []kafka.Message, err error) {
		if err == nil {
			logger.Debug("Order events delivered", zap.Int("count", len(messages)))
			return
		}
		for _, m := range messages {
			logger.Error("Failed to deliver order event",
				zap.ByteString("key", m.Key),
				zap.Error(err))
		}
	}
}

func (p *KafkaProducer) PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := kafka.Message{
		// keyed by user so one user's orders stay ordered within a partition
		Key:   []byte(fmt.Sprintf("USER#%d", event.UserID)),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, queueTimeout)
	defer cancel()

	// queued only; the outcome arrives in deliveryReport
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}

	p.logger.Debug("Order event queued",
		zap.String("event_id", event.EventID),
		zap.Int64("order_id", event.OrderID))
	return nil
}

func (p *KafkaProducer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// Discard is used when no brokers are configured.
type Discard struct{}

func (Discard) PublishOrderPlaced(context.Context, OrderPlacedEvent) error { return nil }
func (Discard) Close() error                                               { return nil }
