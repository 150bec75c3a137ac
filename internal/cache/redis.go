package cache

import (
	"context"
	"fmt"
	"time"

	"example.com/yatube/internal/logger"
	"github.com/redis/go-redis/v9"
)

var logg = logger.New()

// RedisCache is the cluster-shared PageCache. Concurrent writers to the
// same key race harmlessly: the value is derived from the same query.
type RedisCache struct {
	client *redis.Client
}

// NewRedis connects to Redis and verifies the connection with a ping.
func NewRedis(addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logg.Info("cache", "Connected to Redis")
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	body, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logg.Error("cache", "Failed to read cached page", err)
		}
		return nil, false
	}
	return body, true
}

func (c *RedisCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, body, ttl).Err(); err != nil {
		logg.Error("cache", "Failed to cache page", err)
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
