package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// SuppressionStore implements ports.SuppressionStore using Redis SET NX.
type SuppressionStore struct {
	client *goredis.Client
	prefix string
}

// NewSuppressionStore creates a new Redis-backed alert suppression store.
func NewSuppressionStore(client *goredis.Client) *SuppressionStore {
	return &SuppressionStore{
		client: client,
		prefix: "alert:cooldown:",
	}
}

// TryAcquire atomically claims the alert slot for a provider. Returns true
// if no alert was sent within the cooldown (the caller should send one now),
// false if a previous alert still holds the slot.
func (s *SuppressionStore) TryAcquire(ctx context.Context, provider string, cooldown time.Duration) (bool, error) {
	key := s.prefix + provider
	result, err := s.client.SetArgs(ctx, key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  cooldown,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists — still inside the cooldown
			return false, nil
		}
		return false, fmt.Errorf("redis alert cooldown: %w", err)
	}
	return result == "OK", nil
}
