package cache

import "time"

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config represents cache configuration
type Config struct {
	// Backend selects the store implementation: "memory" (default) or "redis"
	Backend string `yaml:"backend" validate:"omitempty,oneof=memory redis"`

	// GoCache configuration
	GoCache GoCacheConfig `yaml:"go_cache"`

	// Redis configuration, used when Backend is "redis"
	Redis RedisConfig `yaml:"redis"`
}

// GoCacheConfig configuration for in-memory go-cache
type GoCacheConfig struct {
	// DefaultExpiration default expiration time for cache items
	// If 0, items never expire by default
	DefaultExpiration time.Duration `yaml:"default_expiration"`

	// CleanupInterval interval for cleaning up expired items
	// Should be less than DefaultExpiration
	CleanupInterval time.Duration `yaml:"cleanup_interval"`

	// Enabled whether go-cache is enabled
	Enabled bool `yaml:"enabled"`
}

// RedisConfig configuration for the shared redis backend
type RedisConfig struct {
	Addr      string        `yaml:"addr"`
	DB        int           `yaml:"db"`
	Password  string        `yaml:"password"`
	KeyPrefix string        `yaml:"key_prefix"`
	Timeout   time.Duration `yaml:"timeout"` // Per-operation timeout
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() Config {
	return Config{
		Backend: BackendMemory,
		GoCache: GoCacheConfig{
			DefaultExpiration: 5 * time.Minute,
			CleanupInterval:   10 * time.Minute,
			Enabled:           true,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "market-assistant:",
			Timeout:   2 * time.Second,
		},
	}
}
