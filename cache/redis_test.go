package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRedisCache connects to REDIS_ADDR and skips the test when it is not reachable
func newTestRedisCache(t *testing.T) *RedisCache {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}

	rc := NewRedisCache(client, RedisConfig{KeyPrefix: "market-assistant-test:"}, time.Minute)
	t.Cleanup(func() {
		rc.Clear()
		_ = rc.Close()
	})
	return rc
}

func TestRedisCache_SetGet(t *testing.T) {
	rc := newTestRedisCache(t)

	rc.Set("key1", []byte("value1"), 0)

	value, found := rc.Get("key1")
	require.True(t, found)
	assert.Equal(t, []byte("value1"), value)

	_, found = rc.Get("missing")
	assert.False(t, found)
}

func TestRedisCache_Expiration(t *testing.T) {
	rc := newTestRedisCache(t)

	rc.Set("short", []byte("expires soon"), 100*time.Millisecond)
	time.Sleep(200 * time.Millisecond)

	_, found := rc.Get("short")
	assert.False(t, found)
}

func TestRedisCache_DeleteAndClear(t *testing.T) {
	rc := newTestRedisCache(t)

	rc.Set("key1", []byte("value1"), 0)
	rc.Set("key2", []byte("value2"), 0)

	rc.Delete([]string{"key1"})
	_, found := rc.Get("key1")
	assert.False(t, found)

	rc.Clear()
	_, found = rc.Get("key2")
	assert.False(t, found)
}
