package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/status-im/market-assistant/api"
	"github.com/status-im/market-assistant/assistant"
	"github.com/status-im/market-assistant/cache"
	"github.com/status-im/market-assistant/coingecko"
	cg "github.com/status-im/market-assistant/coingecko_common"
	"github.com/status-im/market-assistant/config"
	"github.com/status-im/market-assistant/events"
	"github.com/status-im/market-assistant/metrics"
	"github.com/status-im/market-assistant/refresh"
	"github.com/status-im/market-assistant/storage"
)

// Setup creates and registers all services. Services start in registration order
// and stop in reverse.
func Setup(ctx context.Context, cfg *config.Config) (*Registry, error) {
	registry := NewRegistry()

	cacheService := cache.NewService(cfg.Cache)
	registry.Register("cache", cacheService)

	// Rate limits are tracked per API key across all clients
	limiterManager := cg.GetRateLimiterManagerInstance()
	limiterManager.SetConfig(cfg.CoinGecko.RateLimits)

	client := coingecko.NewCoinGeckoClient(
		cfg.CoinGecko,
		cg.NewAPIKeyManager(cfg.APITokens),
		metrics.NewMetricsWriter("coingecko"),
		limiterManager,
	)
	marketService := coingecko.NewService(client, cacheService, cfg.CoinGecko)

	repo, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	storageService := storage.NewService(repo, cfg.Storage)
	registry.Register("storage", storageService)

	subscriptions := events.NewSubscriptionManager()

	assistantService := assistant.NewService(marketService, storageService, storageService, cfg.Assistant)

	refreshService := refresh.NewService(marketService, storageService, subscriptions, cfg.Refresh)
	registry.Register("refresh", refreshService)

	server := api.New(cfg.Server.Port, assistantService, refreshService, storageService, storageService, subscriptions, map[string]api.HealthChecker{
		"coingecko": marketService,
		"refresh":   refreshService,
	})
	registry.Register("api", server)

	log.Info().
		Str("storage", cfg.Storage.Driver).
		Str("cache", cfg.Cache.Backend).
		Int("api_keys", len(cfg.APITokens.Tokens)+len(cfg.APITokens.DemoTokens)).
		Msg("Core: services configured")

	return registry, nil
}
