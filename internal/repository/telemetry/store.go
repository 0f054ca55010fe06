// Package telemetry persists per-session search counters.
package telemetry

import (
	"context"
	"fmt"
	"time"
)

// store is the consumer interface for telemetry counters (ISP).
type store interface {
	IncrBy(ctx context.Context, key string, val int64) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Store records search telemetry under
// "<prefix>telemetry:<day>:<sessionID>:<counter>" keys with a retention TTL.
type Store struct {
	store     store
	prefix    string
	retention time.Duration
}

// New creates a telemetry store. Counters expire after retention.
func New(s store, prefix string, retention time.Duration) *Store {
	if retention <= 0 {
		retention = 45 * 24 * time.Hour
	}
	return &Store{store: s, prefix: prefix, retention: retention}
}

// RecordSearch bumps the per-session search and result counters and the
// cumulative fetch-duration counter.
func (s *Store) RecordSearch(ctx context.Context, day, sessionID string, results int, fetch time.Duration) error {
	base := fmt.Sprintf("%stelemetry:%s:%s:", s.prefix, day, sessionID)

	counters := map[string]int64{
		"searches": 1,
		"results":  int64(results),
		"fetch_ms": fetch.Milliseconds(),
	}
	for name, val := range counters {
		key := base + name
		if err := s.store.IncrBy(ctx, key, val); err != nil {
			return fmt.Errorf("incr %s: %w", key, err)
		}
		if err := s.store.Expire(ctx, key, s.retention, true); err != nil {
			return fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return nil
}

// RecordClick bumps the per-session click-through counter.
func (s *Store) RecordClick(ctx context.Context, day, sessionID string) error {
	key := fmt.Sprintf("%stelemetry:%s:%s:clicks", s.prefix, day, sessionID)
	if err := s.store.IncrBy(ctx, key, 1); err != nil {
		return fmt.Errorf("incr %s: %w", key, err)
	}
	if err := s.store.Expire(ctx, key, s.retention, true); err != nil {
		return fmt.Errorf("expire %s: %w", key, err)
	}
	return nil
}
