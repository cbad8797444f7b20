package coingecko

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/status-im/market-assistant/cache"
	"github.com/status-im/market-assistant/config"
	"github.com/status-im/market-assistant/interfaces"
	"github.com/status-im/market-assistant/metrics"
	"github.com/status-im/market-assistant/models"
)

const (
	keyTopCoins = "coingecko:top_coins"
	keyCoin     = "coingecko:coin"
	keyHistory  = "coingecko:history"
	keyGlobal   = "coingecko:global"
)

var errCoinNotListed = errors.New("coin not listed by provider")

// Service is the cached market data client
type Service struct {
	api    IAPIClient
	cache  cache.Cache
	config config.CoinGeckoConfig

	topMetrics     *metrics.MetricsWriter
	coinMetrics    *metrics.MetricsWriter
	historyMetrics *metrics.MetricsWriter
	globalMetrics  *metrics.MetricsWriter

	successfulFetch atomic.Bool
}

var _ interfaces.MarketDataClient = (*Service)(nil)

// NewService creates a market data client reading through c
func NewService(api IAPIClient, c cache.Cache, cfg config.CoinGeckoConfig) *Service {
	return &Service{
		api:            api,
		cache:          c,
		config:         cfg,
		topMetrics:     metrics.NewMetricsWriter(metrics.ServiceTopCoins),
		coinMetrics:    metrics.NewMetricsWriter(metrics.ServiceCoin),
		historyMetrics: metrics.NewMetricsWriter(metrics.ServiceHistory),
		globalMetrics:  metrics.NewMetricsWriter(metrics.ServiceGlobal),
	}
}

// Healthy reports whether at least one upstream call has succeeded
func (s *Service) Healthy() bool {
	return s.successfulFetch.Load()
}

func (s *Service) track(mw *metrics.MetricsWriter, status interfaces.CacheStatus, err error) {
	mw.RecordCacheLookup(status.String())
	if err == nil && status != interfaces.CacheStatusHit {
		s.successfulFetch.Store(true)
	}
}

func (s *Service) fetchTopCoins(ctx context.Context, limit int) cache.FetchFunc[[]models.CoinSnapshot] {
	return func() ([]models.CoinSnapshot, error) {
		return s.api.FetchMarkets(ctx, limit)
	}
}

// TopCoins returns the top coins by market cap
func (s *Service) TopCoins(ctx context.Context, limit int) ([]models.CoinSnapshot, error) {
	coins, status, err := cache.GetOrFetch(s.cache, cache.Key(keyTopCoins, limit), s.config.TopCoinsTTL, s.fetchTopCoins(ctx, limit))
	s.track(s.topMetrics, status, err)
	if err != nil {
		return nil, fmt.Errorf("top coins: %w", err)
	}
	return coins, nil
}

// RefreshTopCoins fetches the top coins bypassing the cache read
func (s *Service) RefreshTopCoins(ctx context.Context, limit int) ([]models.CoinSnapshot, error) {
	coins, status, err := cache.Refetch(s.cache, cache.Key(keyTopCoins, limit), s.config.TopCoinsTTL, s.fetchTopCoins(ctx, limit))
	s.track(s.topMetrics, status, err)
	if err != nil {
		return nil, fmt.Errorf("refresh top coins: %w", err)
	}
	return coins, nil
}

// CoinSnapshot returns the snapshot of one coin, or a synthetic snapshot when
// the provider cannot supply it. Synthetic snapshots are never cached.
func (s *Service) CoinSnapshot(ctx context.Context, coinID string) models.CoinSnapshot {
	snapshot, status, err := cache.GetOrFetch(s.cache, cache.Key(keyCoin, coinID), s.config.CoinTTL, func() (models.CoinSnapshot, error) {
		coins, err := s.api.FetchMarkets(ctx, 1, coinID)
		if err != nil {
			return models.CoinSnapshot{}, err
		}
		for _, c := range coins {
			if c.ID == coinID {
				return c, nil
			}
		}
		return models.CoinSnapshot{}, errCoinNotListed
	})
	s.track(s.coinMetrics, status, err)

	if err != nil {
		log.Warn().Err(err).Str("coin", coinID).Msg("CoinGecko: serving fallback coin snapshot")
		s.coinMetrics.RecordFallback()
		return fallbackSnapshot(coinID, time.Now().UTC())
	}
	return snapshot
}

func (s *Service) fetchHistory(ctx context.Context, coinID string, days int) cache.FetchFunc[[]models.HistoricalPrice] {
	return func() ([]models.HistoricalPrice, error) {
		return s.api.FetchMarketChart(ctx, coinID, days)
	}
}

// HistoricalPrices returns the price chart of a coin for the last days
func (s *Service) HistoricalPrices(ctx context.Context, coinID string, days int) ([]models.HistoricalPrice, error) {
	history, status, err := cache.GetOrFetch(s.cache, cache.Key(keyHistory, coinID, days), s.config.HistoryTTL, s.fetchHistory(ctx, coinID, days))
	s.track(s.historyMetrics, status, err)
	if err != nil {
		return nil, fmt.Errorf("historical prices for %s: %w", coinID, err)
	}
	return history, nil
}

// RefreshHistoricalPrices fetches the price chart bypassing the cache read
func (s *Service) RefreshHistoricalPrices(ctx context.Context, coinID string, days int) ([]models.HistoricalPrice, error) {
	history, status, err := cache.Refetch(s.cache, cache.Key(keyHistory, coinID, days), s.config.HistoryTTL, s.fetchHistory(ctx, coinID, days))
	s.track(s.historyMetrics, status, err)
	if err != nil {
		return nil, fmt.Errorf("refresh historical prices for %s: %w", coinID, err)
	}
	return history, nil
}

func (s *Service) fetchGlobal(ctx context.Context) cache.FetchFunc[models.GlobalStats] {
	return func() (models.GlobalStats, error) {
		return s.api.FetchGlobal(ctx)
	}
}

// GlobalStats returns aggregate market figures, or synthetic stats when the
// provider is unavailable. Synthetic stats are never cached.
func (s *Service) GlobalStats(ctx context.Context) models.GlobalStats {
	stats, status, err := cache.GetOrFetch(s.cache, keyGlobal, s.config.GlobalTTL, s.fetchGlobal(ctx))
	s.track(s.globalMetrics, status, err)
	if err != nil {
		log.Warn().Err(err).Msg("CoinGecko: serving fallback global stats")
		s.globalMetrics.RecordFallback()
		return fallbackGlobalStats(time.Now().UTC())
	}
	return stats
}

// RefreshGlobalStats fetches global stats bypassing the cache read
func (s *Service) RefreshGlobalStats(ctx context.Context) (models.GlobalStats, error) {
	stats, status, err := cache.Refetch(s.cache, keyGlobal, s.config.GlobalTTL, s.fetchGlobal(ctx))
	s.track(s.globalMetrics, status, err)
	if err != nil {
		return models.GlobalStats{}, fmt.Errorf("refresh global stats: %w", err)
	}
	return stats, nil
}
