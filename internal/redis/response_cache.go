package redisstore

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResponseCache caches raw Movebank listing responses so repeated runs do not
// refetch unchanged studies and individuals.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache returns redis-backed cache.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	return &ResponseCache{client: client, ttl: ttl}
}

func (c *ResponseCache) key(query string) string {
	sum := md5.Sum([]byte(query))
	return fmt.Sprintf("movebank:response:%s", hex.EncodeToString(sum[:]))
}

// Get returns the cached body for the query; redis.Nil on miss.
func (c *ResponseCache) Get(ctx context.Context, query string) (string, error) {
	return c.client.Get(ctx, c.key(query)).Result()
}

// Save caches the body for the configured TTL.
func (c *ResponseCache) Save(ctx context.Context, query, body string) error {
	return c.client.Set(ctx, c.key(query), body, c.ttl).Err()
}
