package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/PrintfAman/nexo/internal/messaging"
)

var _ messaging.Publisher = (*Publisher)(nil)

const eventTypeHeader = "event-type"

type typedEvent interface {
	EventType() string
}

// Publisher writes JSON-encoded events to Kafka. One writer is shared by all
// topics; the topic is set per message.
type Publisher struct {
	writer *kafkaGo.Writer
}

// NewPublisher creates a new Kafka publisher for the given seed brokers.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(brokers...),
			Balancer:               &kafkaGo.Hash{},
			RequiredAcks:           kafkaGo.RequireAll,
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
		},
	}
}

func (p *Publisher) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafkaGo.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	}
	if e, ok := event.(typedEvent); ok {
		msg.Headers = append(msg.Headers, kafkaGo.Header{Key: eventTypeHeader, Value: []byte(e.EventType())})
	}

	err = p.writer.WriteMessages(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to write message to %s: %w", topic, err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() {
	const op = "Publisher.Close"
	log := slog.With("op", op)

	if err := p.writer.Close(); err != nil {
		log.Error("failed to close kafka writer", "err", err)
		return
	}
	log.Info("kafka writer is closed")
}
