package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"booking-billing-gateway/config"
	"booking-billing-gateway/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// OutcomeStore implements ports.OutcomeStore on Redis lists.
//
// Per provider it keeps a rolling window of the last N ingestion outcomes,
// a shorter list of recent failures, and the timestamp of the last success.
// LPUSH+LTRIM in one pipeline keeps the window bounded without a separate
// trim job; the retention TTL is refreshed on every write so keys for an
// idle provider eventually disappear.
type OutcomeStore struct {
	client          *goredis.Client
	windowSize      int
	failureListSize int
	retention       time.Duration
}

// NewOutcomeStore creates a new Redis-backed outcome store.
func NewOutcomeStore(client *goredis.Client, cfg config.MonitorConfig) *OutcomeStore {
	return &OutcomeStore{
		client:          client,
		windowSize:      cfg.WindowSize,
		failureListSize: cfg.FailureListSize,
		retention:       cfg.Retention,
	}
}

func outcomesKey(provider string) string {
	return "webhook:outcomes:" + provider
}

func failuresKey(provider string) string {
	return "webhook:failures:" + provider
}

func lastSuccessKey(provider string) string {
	return "webhook:last_success:" + provider
}

// Append records one outcome into the rolling window. Failures are also
// pushed onto the recent-failures list; successes refresh the last-success
// marker.
func (s *OutcomeStore) Append(ctx context.Context, o *domain.WebhookOutcome) error {
	raw, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal webhook outcome: %w", err)
	}

	pipe := s.client.TxPipeline()
	key := outcomesKey(o.Provider)
	pipe.LPush(ctx, key, raw)
	pipe.LTrim(ctx, key, 0, int64(s.windowSize)-1)
	pipe.Expire(ctx, key, s.retention)

	if o.Success {
		pipe.Set(ctx, lastSuccessKey(o.Provider), o.Timestamp.UTC().Format(time.RFC3339Nano), s.retention)
	} else {
		fkey := failuresKey(o.Provider)
		pipe.LPush(ctx, fkey, raw)
		pipe.LTrim(ctx, fkey, 0, int64(s.failureListSize)-1)
		pipe.Expire(ctx, fkey, s.retention)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis outcome append: %w", err)
	}
	return nil
}

// Window returns the rolling window newest-first.
func (s *OutcomeStore) Window(ctx context.Context, provider string) ([]domain.WebhookOutcome, error) {
	return s.readList(ctx, outcomesKey(provider))
}

// RecentFailures returns the recent failures newest-first.
func (s *OutcomeStore) RecentFailures(ctx context.Context, provider string) ([]domain.WebhookOutcome, error) {
	return s.readList(ctx, failuresKey(provider))
}

// LastSuccessAt returns the timestamp of the most recent successful
// ingestion, or nil if none has been recorded within the retention period.
func (s *OutcomeStore) LastSuccessAt(ctx context.Context, provider string) (*time.Time, error) {
	val, err := s.client.Get(ctx, lastSuccessKey(provider)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis last success get: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return nil, fmt.Errorf("parse last success timestamp: %w", err)
	}
	return &ts, nil
}

func (s *OutcomeStore) readList(ctx context.Context, key string) ([]domain.WebhookOutcome, error) {
	raws, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis outcome range: %w", err)
	}

	outcomes := make([]domain.WebhookOutcome, 0, len(raws))
	for _, raw := range raws {
		var o domain.WebhookOutcome
		if err := json.Unmarshal([]byte(raw), &o); err != nil {
			// Skip entries written by an older build rather than
			// failing the whole health check.
			continue
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}
