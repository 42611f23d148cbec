// Package cache holds the Redis client bootstrap for the schedule result
// cache.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/schooltech/scheduler-core/pkg/config"
)

const pingTimeout = 5 * time.Second

// NewRedis connects to the configured Redis instance, verifying the
// connection with a bounded ping before handing the client out.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: pingTimeout,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping redis at %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return client, nil
}
