package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var _ Cache = (*RedisCache)(nil)

// RedisCache shares cached upstream payloads between several processes.
// Redis enforces expiration itself, so reads after the TTL return absent.
type RedisCache struct {
	client            *redis.Client
	prefix            string
	timeout           time.Duration
	defaultExpiration time.Duration
}

// NewRedisCache wraps an existing redis client
func NewRedisCache(client *redis.Client, cfg RedisConfig, defaultExpiration time.Duration) *RedisCache {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &RedisCache{
		client:            client,
		prefix:            cfg.KeyPrefix,
		timeout:           timeout,
		defaultExpiration: defaultExpiration,
	}
}

// Ping checks the connection to the Redis server.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) key(key string) string {
	return c.prefix + key
}

// Get returns the value for key. Connection errors are logged and read as a miss.
func (c *RedisCache) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("Redis: get failed, treating as miss")
		}
		return nil, false
	}
	return data, true
}

// Set stores value under key. A ttl of 0 uses the default expiration, a negative ttl keeps the key forever.
func (c *RedisCache) Set(key string, value []byte, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	switch {
	case ttl == 0:
		ttl = c.defaultExpiration
	case ttl < 0:
		ttl = redis.KeepTTL
	}

	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis: set failed")
	}
}

// Delete removes entries by keys
func (c *RedisCache) Delete(keys []string) {
	if len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, c.key(key))
	}
	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		log.Warn().Err(err).Int("keys", len(keys)).Msg("Redis: delete failed")
	}
}

// Clear removes every key under the configured prefix
func (c *RedisCache) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("Redis: scan failed")
		return
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis: clear failed")
		}
	}
}

// Close releases the underlying client
func (c *RedisCache) Close() error {
	return c.client.Close()
}
