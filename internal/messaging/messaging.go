package messaging

import (
	"context"
	"log/slog"
)

// Publisher defines an interface for publishing events to a message broker.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	slog.Debug("No broker configured, event dropped", "topic", topic, "key", key)
	return nil
}
