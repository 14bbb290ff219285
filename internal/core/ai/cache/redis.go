package cache

import (
	"context"
	"fmt"
	"time"

	"recipesnap/internal/infrastructure/config"
	"recipesnap/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// redisBackend stores cache entries in Redis with the configured TTL.
type redisBackend struct {
	client *redis.Client
	cfg    *config.CacheConfig
}

func newRedisBackend(cfg *config.CacheConfig) (*redisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisBackend{
		client: client,
		cfg:    cfg,
	}, nil
}

func (b *redisBackend) Get(ctx context.Context, key string) (string, error) {
	value, err := b.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", common.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache entry: %w", err)
	}
	return value, nil
}

func (b *redisBackend) Set(ctx context.Context, key, value string) error {
	if err := b.client.Set(ctx, key, value, b.cfg.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}
	return nil
}

func (b *redisBackend) Close() error {
	return b.client.Close()
}
