package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "page:"

// RedisCache implements PageCache on a shared Redis instance, so a fleet
// of API replicas sees the same cache and the same invalidations.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis creates a Redis-backed page cache. Prefix may be empty.
func NewRedis(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) key(path string) string {
	return c.prefix + path
}

func (c *RedisCache) Get(ctx context.Context, path string) ([]byte, error) {
	b, err := c.client.Get(ctx, c.key(path)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}
	return b, nil
}

func (c *RedisCache) Set(ctx context.Context, path string, payload []byte) error {
	return c.client.Set(ctx, c.key(path), payload, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = c.key(p)
	}
	// DEL ignores missing keys, which gives invalidation its idempotence.
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
