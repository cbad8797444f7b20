package cache

import "time"

// Cache is a process-wide key/value store with per-entry expiration.
//
// Implementations must be safe for concurrent use. Writes replace the value and
// the expiration of an existing entry unconditionally (last writer wins).
type Cache interface {
	// Get returns the value stored under key.
	// Expired or missing entries are reported as not found.
	Get(key string) ([]byte, bool)

	// Set stores value under key for ttl.
	// A ttl of 0 uses the backend's default expiration.
	Set(key string, value []byte, ttl time.Duration)

	// Delete removes entries by keys
	Delete(keys []string)

	// Clear removes all entries
	Clear()
}
