// Package cache memoizes finished schedule runs in Redis, keyed by a
// content hash of the input population, so re-running the pipeline
// against unchanged students/teachers/courses/rooms returns the
// previous result instead of re-solving the ILP.
package cache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/schooltech/scheduler-core/internal/domain"
	appErrors "github.com/schooltech/scheduler-core/pkg/errors"
)

// Store wraps a Redis client with get/set/invalidate operations scoped
// to cached schedule runs.
type Store struct {
	client     *redis.Client
	logger     *zap.Logger
	defaultTTL time.Duration
	enabled    bool
}

// New constructs a Store. client may be nil, in which case the store is
// disabled and every operation becomes a no-op — this lets callers wire
// caching unconditionally and let configuration decide whether it runs.
func New(client *redis.Client, logger *zap.Logger, defaultTTL time.Duration, enabled bool) *Store {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &Store{client: client, logger: logger, defaultTTL: defaultTTL, enabled: enabled}
}

// Enabled reports whether the store will actually talk to Redis.
func (s *Store) Enabled() bool {
	return s != nil && s.enabled && s.client != nil
}

// Key derives a stable cache key from the input population and grid
// configuration, hashed with blake2b-256 over canonical JSON so any
// change to a student, teacher, course, or room invalidates the entry.
func Key(input domain.ScheduleInput) (string, error) {
	canonical, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("cache: marshal input for hashing: %w", err)
	}
	sum := blake2b.Sum256(canonical)
	return "schedule:" + hex.EncodeToString(sum[:]), nil
}

// Get retrieves and decodes a cached schedule. On a miss the first return
// value is false and the error is nil.
func (s *Store) Get(ctx context.Context, key string, dest *domain.Schedule) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		if s.logger != nil {
			s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false, fmt.Errorf("cache: redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache: unmarshal cached schedule for %s: %w", key, err)
	}
	return true, nil
}

// Set stores a finished schedule under key with the store's default TTL.
func (s *Store) Set(ctx context.Context, key string, schedule *domain.Schedule) error {
	if !s.Enabled() {
		return nil
	}
	payload, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("cache: marshal schedule for %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, payload, s.defaultTTL).Err(); err != nil {
		if s.logger != nil {
			s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		}
		return fmt.Errorf("cache: redis set %s: %w", key, err)
	}
	return nil
}

// Invalidate removes every cached entry matching pattern.
func (s *Store) Invalidate(ctx context.Context, pattern string) error {
	if !s.Enabled() {
		return nil
	}
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return appErrors.Wrap(err, "INTERNAL_ERROR", 500, fmt.Sprintf("cache: delete %s", iter.Val()))
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache: scan pattern %s: %w", pattern, err)
	}
	return nil
}
