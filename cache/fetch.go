package cache

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/status-im/market-assistant/interfaces"
)

// FetchFunc loads a fresh value when the cache cannot serve it
type FetchFunc[T any] func() (T, error)

// GetOrFetch returns the value cached under key, or calls fetch and caches its
// result for ttl. Fetch errors are returned unchanged and nothing is cached.
// A cached payload that can no longer be decoded is treated as a miss.
func GetOrFetch[T any](c Cache, key string, ttl time.Duration, fetch FetchFunc[T]) (T, interfaces.CacheStatus, error) {
	if data, found := c.Get(key); found {
		var value T
		err := json.Unmarshal(data, &value)
		if err == nil {
			return value, interfaces.CacheStatusHit, nil
		}
		log.Warn().Err(err).Str("key", key).Msg("Cache: dropping undecodable entry")
		c.Delete([]string{key})
	}

	value, err := fetchAndStore(c, key, ttl, fetch)
	return value, interfaces.CacheStatusMiss, err
}

// Refetch always calls fetch and overwrites the entry under key on success
func Refetch[T any](c Cache, key string, ttl time.Duration, fetch FetchFunc[T]) (T, interfaces.CacheStatus, error) {
	value, err := fetchAndStore(c, key, ttl, fetch)
	return value, interfaces.CacheStatusRefresh, err
}

func fetchAndStore[T any](c Cache, key string, ttl time.Duration, fetch FetchFunc[T]) (T, error) {
	value, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		// The value is still good for this caller
		log.Warn().Err(err).Str("key", key).Msg("Cache: failed to encode value")
		return value, nil
	}
	c.Set(key, data, ttl)

	return value, nil
}

// Key joins an operation name and its parameters into a cache key
func Key(operation string, params ...interface{}) string {
	key := operation
	for _, p := range params {
		key += fmt.Sprintf(":%v", p)
	}
	return key
}
