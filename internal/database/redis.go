package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campusnet/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisConnection opens a Redis client from the configured URL and
// verifies it with a ping.
func NewRedisConnection(cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	opts.MaxRetries = cfg.MaxRetries
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Redis connection established")
	return rdb, nil
}
