package config

import "time"

// CoinGeckoConfig configures the upstream market data client
type CoinGeckoConfig struct {
	// Override base URLs, mostly for tests and self-hosted mirrors
	OverridePublicURL string `yaml:"override_public_url" validate:"omitempty,url"`
	OverrideProURL    string `yaml:"override_pro_url" validate:"omitempty,url"`

	Currency string `yaml:"currency" validate:"required"`

	ConnectionTimeout time.Duration `yaml:"connection_timeout" validate:"gt=0"`
	RequestTimeout    time.Duration `yaml:"request_timeout" validate:"gt=0"`

	// MaxAttempts is the number of tries per upstream call. 1 disables retries.
	MaxAttempts int `yaml:"max_attempts" validate:"gte=1,lte=10"`

	// Cache TTL per operation class
	TopCoinsTTL time.Duration `yaml:"top_coins_ttl" validate:"gt=0"`
	CoinTTL     time.Duration `yaml:"coin_ttl" validate:"gt=0"`
	HistoryTTL  time.Duration `yaml:"history_ttl" validate:"gt=0"`
	GlobalTTL   time.Duration `yaml:"global_ttl" validate:"gt=0"`

	RateLimits APIKeyConfig `yaml:"rate_limits"`
}

// DefaultCoinGeckoConfig returns default configuration for the market data client
func DefaultCoinGeckoConfig() CoinGeckoConfig {
	return CoinGeckoConfig{
		Currency:          "usd",
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    30 * time.Second,
		MaxAttempts:       1,
		TopCoinsTTL:       5 * time.Minute,
		CoinTTL:           5 * time.Minute,
		HistoryTTL:        30 * time.Minute,
		GlobalTTL:         5 * time.Minute,
	}
}
