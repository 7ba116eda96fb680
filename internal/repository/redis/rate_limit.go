package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jvfernandez09/jfc-app/internal/core/port"
)

// RateLimitStore keeps per-identifier attempt timestamps in a Redis sorted
// set scored by unix nanoseconds. Entries outside the sliding window are
// trimmed before each read, so set cardinality is the attempt count.
type RateLimitStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRateLimitStore constructs a store writing under the given key prefix.
// Keys expire after ttl so abandoned identifiers do not accumulate.
func NewRateLimitStore(client *redis.Client, keyPrefix string, ttl time.Duration) *RateLimitStore {
	return &RateLimitStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

// TrimWindow drops attempts recorded before reference minus window.
func (s *RateLimitStore) TrimWindow(ctx context.Context, identifier string, window time.Duration, reference time.Time) error {
	if window <= 0 {
		return errors.New("window must be positive")
	}

	threshold := strconv.FormatInt(reference.Add(-window).UnixNano(), 10)
	if err := s.client.ZRemRangeByScore(ctx, s.key(identifier), "-inf", "("+threshold).Err(); err != nil {
		return fmt.Errorf("redis zremrangebyscore: %w", err)
	}

	return nil
}

// CountAttempts returns the number of attempts still inside the window.
// Callers trim first; the count is the remaining set cardinality.
func (s *RateLimitStore) CountAttempts(ctx context.Context, identifier string, window time.Duration, reference time.Time) (int, error) {
	if window <= 0 {
		return 0, errors.New("window must be positive")
	}

	count, err := s.client.ZCard(ctx, s.key(identifier)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis zcard: %w", err)
	}

	return int(count), nil
}

// RecordAttempt appends the timestamp and refreshes the key TTL.
func (s *RateLimitStore) RecordAttempt(ctx context.Context, identifier string, at time.Time) error {
	key := s.key(identifier)
	nanos := at.UnixNano()

	if err := s.client.ZAdd(ctx, key, redis.Z{Score: float64(nanos), Member: nanos}).Err(); err != nil {
		return fmt.Errorf("redis zadd: %w", err)
	}

	if s.ttl > 0 {
		if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
			return fmt.Errorf("redis expire: %w", err)
		}
	}

	return nil
}

// OldestAttempt returns the earliest attempt still inside the window, if any.
func (s *RateLimitStore) OldestAttempt(ctx context.Context, identifier string, window time.Duration, reference time.Time) (time.Time, bool, error) {
	if window <= 0 {
		return time.Time{}, false, errors.New("window must be positive")
	}

	values, err := s.client.ZRange(ctx, s.key(identifier), 0, 0).Result()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("redis zrange: %w", err)
	}
	if len(values) == 0 {
		return time.Time{}, false, nil
	}

	nanos, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse attempt timestamp: %w", err)
	}

	oldest := time.Unix(0, nanos)
	if oldest.Before(reference.Add(-window)) {
		return time.Time{}, false, nil
	}

	return oldest, true, nil
}

func (s *RateLimitStore) key(identifier string) string {
	if s.keyPrefix == "" {
		return identifier
	}
	return s.keyPrefix + ":" + identifier
}

var _ port.RateLimitStore = (*RateLimitStore)(nil)
