package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when no entry exists for the key.
var ErrCacheMiss = errors.New("cache miss")

// ResponseCache stores rendered JSON responses of hot GET endpoints.
// Key format: cache:<path>?<raw query>
type ResponseCache struct {
	client *redis.Client
}

// NewResponseCache creates a ResponseCache wrapping the given Redis client.
func NewResponseCache(client *redis.Client) *ResponseCache {
	return &ResponseCache{client: client}
}

// Get returns the cached response body for the key, or ErrCacheMiss.
func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, error) {
	body, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return body, nil
}

// Set stores a response body under the key with the given TTL.
func (c *ResponseCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(key), body, ttl).Err()
}

func (c *ResponseCache) key(key string) string {
	return "cache:" + key
}
