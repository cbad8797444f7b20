package config

import "time"

// RefreshConfig configures the periodic market data refresh
type RefreshConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Interval        time.Duration `yaml:"interval" validate:"gt=0"`
	TopCoinsLimit   int           `yaml:"top_coins_limit" validate:"gte=1,lte=250"`
	HistoricalCoins int           `yaml:"historical_coins" validate:"gte=0,lte=250"`
	HistoricalDays  int           `yaml:"historical_days" validate:"gte=1,lte=365"`
	RunOnStart      bool          `yaml:"run_on_start"`
}

// DefaultRefreshConfig mirrors the five minute refresh cadence of the dashboard
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Enabled:         true,
		Interval:        5 * time.Minute,
		TopCoinsLimit:   50,
		HistoricalCoins: 10,
		HistoricalDays:  30,
		RunOnStart:      true,
	}
}

// AssistantConfig configures the question answering engine
type AssistantConfig struct {
	DefaultTopLimit int `yaml:"default_top_limit" validate:"gte=1"`
	MaxTopLimit     int `yaml:"max_top_limit" validate:"gtefield=DefaultTopLimit"`

	// DefaultTrendDays is used when a trend question names no period
	DefaultTrendDays int `yaml:"default_trend_days" validate:"gte=1,lte=365"`
}

// DefaultAssistantConfig returns default assistant configuration
func DefaultAssistantConfig() AssistantConfig {
	return AssistantConfig{
		DefaultTopLimit:  10,
		MaxTopLimit:      100,
		DefaultTrendDays: 7,
	}
}
