package e2etest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/status-im/market-assistant/config"
)

// createTestConfig creates a test configuration and returns the path to the file
func createTestConfig(mockURL string) (string, error) {
	// Create a temporary directory for configuration and the database
	tempDir, err := os.MkdirTemp("", "market-assistant-test")
	if err != nil {
		return "", err
	}

	configContent := `
coingecko:
  override_public_url: "%s"   # URL for CoinGecko public API
  override_pro_url: "%s"      # URL for CoinGecko Pro API
  currency: "usd"
  connection_timeout: 2s
  request_timeout: 5s
  max_attempts: 1             # fail fast in tests
  top_coins_ttl: 1m
  coin_ttl: 1m
  history_ttl: 1m
  global_ttl: 1m

cache:
  backend: memory
  go_cache:
    enabled: true
    default_expiration: 1m
    cleanup_interval: 2m

storage:
  driver: sqlite
  sqlite_path: "%s"
  retention: 720h
  prune_interval: 1h

refresh:
  enabled: true
  interval: 1h                # only the startup cycle runs during a test
  top_coins_limit: 3
  historical_coins: 2         # solana history is fetched on demand
  historical_days: 7
  run_on_start: true

assistant:
  default_top_limit: 3
  max_top_limit: 10
  default_trend_days: 7

server:
  port: "8081"

tokens_file: "%s"             # path to tokens file will be inserted
`

	// Create tokens file
	tokensFilePath := filepath.Join(tempDir, "tokens.json")
	tokensContent := `
{
  "api_tokens": ["test-api-key"]
}
`

	if err := os.WriteFile(tokensFilePath, []byte(tokensContent), 0644); err != nil {
		os.RemoveAll(tempDir)
		return "", err
	}

	dbPath := filepath.Join(tempDir, "market.db")
	configContent = fmt.Sprintf(configContent, mockURL, mockURL, dbPath, tokensFilePath)

	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		os.RemoveAll(tempDir)
		return "", err
	}

	return configPath, nil
}

// loadTestConfig creates and loads test configuration
func loadTestConfig(mockURL string) (*config.Config, string, error) {
	configPath, err := createTestConfig(mockURL)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		os.RemoveAll(filepath.Dir(configPath))
		return nil, "", err
	}

	return cfg, configPath, nil
}

// cleanupTestConfig removes the temporary directory with configuration
func cleanupTestConfig(configPath string) {
	os.RemoveAll(filepath.Dir(configPath))
}
