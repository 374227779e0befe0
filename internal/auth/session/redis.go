// Package session keeps the last issued bearer token per user in Redis so a
// logout can revoke it. Token validity never depends on this cache.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultPrefix = "session"

// ErrRedisUnavailable wraps every error returned by the Redis backend.
var ErrRedisUnavailable = errors.New("redis unavailable")

const pingTimeout = 500 * time.Millisecond

type RedisCache struct {
	redis  redis.UniversalClient
	prefix string
}

func NewRedisCache(client redis.UniversalClient, prefix string) *RedisCache {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RedisCache{redis: client, prefix: prefix}
}

// NewRedisClient parses a redis:// URL. A non-empty password overrides the
// one embedded in the URL.
func NewRedisClient(url, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	return redis.NewClient(opts), nil
}

func (c *RedisCache) key(userID string) string {
	return c.prefix + ":" + userID
}

// Put stores token for userID, replacing whatever was there.
func (c *RedisCache) Put(ctx context.Context, userID, token string, ttl time.Duration) error {
	if err := c.redis.Set(ctx, c.key(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Get returns the cached token for userID, or "" when there is none.
func (c *RedisCache) Get(ctx context.Context, userID string) (string, error) {
	token, err := c.redis.Get(ctx, c.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return token, nil
}

// Delete removes the entry for userID. Deleting a missing key is not an error.
func (c *RedisCache) Delete(ctx context.Context, userID string) error {
	if err := c.redis.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (c *RedisCache) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	return c.redis.Ping(ctx).Err() == nil
}

func (c *RedisCache) Close() error {
	return c.redis.Close()
}
