package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/status-im/market-assistant/cache"
)

type Config struct {
	CoinGecko  CoinGeckoConfig `yaml:"coingecko"`
	Cache      cache.Config    `yaml:"cache"`
	Storage    StorageConfig   `yaml:"storage"`
	Refresh    RefreshConfig   `yaml:"refresh"`
	Assistant  AssistantConfig `yaml:"assistant"`
	Server     ServerConfig    `yaml:"server"`
	TokensFile string          `yaml:"tokens_file"`
	APITokens  *APITokens      `yaml:"-"`
}

// ServerConfig configures the HTTP transport
type ServerConfig struct {
	Port string `yaml:"port" validate:"required,numeric"`
}

// Default returns a configuration that runs without a config file
func Default() *Config {
	return &Config{
		CoinGecko: DefaultCoinGeckoConfig(),
		Cache:     cache.DefaultCacheConfig(),
		Storage:   DefaultStorageConfig(),
		Refresh:   DefaultRefreshConfig(),
		Assistant: DefaultAssistantConfig(),
		Server:    ServerConfig{Port: "8080"},
		APITokens: &APITokens{Tokens: []string{}},
	}
}

// LoadConfig reads the YAML file at path on top of the defaults,
// loads API tokens and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse builds a validated configuration from YAML bytes
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// upstream keys price maps by lowercase currency code
	config.CoinGecko.Currency = strings.ToLower(strings.TrimSpace(config.CoinGecko.Currency))

	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}

	apiTokens, err := LoadAPITokens(config.TokensFile)
	if err != nil {
		log.Warn().Err(err).Str("file", config.TokensFile).
			Msg("Config: error loading API tokens, using public API without authentication")
		config.APITokens = &APITokens{Tokens: []string{}}
	} else {
		config.APITokens = apiTokens
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks field constraints declared in struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("invalid config: cache.redis.addr is required for the redis backend")
	}
	return nil
}
