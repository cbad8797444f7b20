package interfaces

import (
	"context"

	"github.com/status-im/market-assistant/models"
)

//go:generate mockgen -destination=mocks/market_data.go . MarketDataClient

// MarketDataClient reads market data from the upstream provider through the cache
type MarketDataClient interface {
	// TopCoins returns the top coins by market cap. Upstream failures are returned as errors.
	TopCoins(ctx context.Context, limit int) ([]models.CoinSnapshot, error)

	// CoinSnapshot returns the snapshot of a single coin. It never fails:
	// when the upstream is unavailable a synthetic snapshot is returned.
	CoinSnapshot(ctx context.Context, coinID string) models.CoinSnapshot

	// HistoricalPrices returns the price chart for the last days. Upstream failures are returned as errors.
	HistoricalPrices(ctx context.Context, coinID string, days int) ([]models.HistoricalPrice, error)

	// GlobalStats returns aggregate market figures. It never fails:
	// when the upstream is unavailable synthetic stats are returned.
	GlobalStats(ctx context.Context) models.GlobalStats

	// RefreshTopCoins bypasses the cache read and repopulates it on success
	RefreshTopCoins(ctx context.Context, limit int) ([]models.CoinSnapshot, error)

	// RefreshHistoricalPrices bypasses the cache read and repopulates it on success
	RefreshHistoricalPrices(ctx context.Context, coinID string, days int) ([]models.HistoricalPrice, error)

	// RefreshGlobalStats bypasses the cache read and repopulates it on success
	RefreshGlobalStats(ctx context.Context) (models.GlobalStats, error)
}
