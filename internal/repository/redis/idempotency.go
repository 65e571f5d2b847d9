package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/PrintfAman/nexo/internal/repository"
)

const (
	idempotencyKeyPrefix = "nexo:checkout:idem:"
	pendingValue         = "pending"

	// DefaultIdempotencyTTL is how long a checkout key is remembered once it
	// is bound to an order.
	DefaultIdempotencyTTL = 24 * time.Hour

	// PendingTTL bounds a reservation that was never bound or released, so a
	// crashed checkout blocks retries for a minute at most.
	PendingTTL = time.Minute
)

type idempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore creates a new IdempotencyStore backed by Redis.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) repository.IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &idempotencyStore{client: client, ttl: ttl}
}

func (s *idempotencyStore) Reserve(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, idempotencyKeyPrefix+key, pendingValue, min(PendingTTL, s.ttl)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	return ok, nil
}

func (s *idempotencyStore) Bind(ctx context.Context, key, orderCode string) error {
	if err := s.client.Set(ctx, idempotencyKeyPrefix+key, orderCode, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to bind idempotency key: %w", err)
	}
	return nil
}

func (s *idempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}

func (s *idempotencyStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, idempotencyKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up idempotency key: %w", err)
	}
	if val == pendingValue {
		return "", true, nil
	}
	return val, true, nil
}
