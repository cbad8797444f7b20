package coingecko

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/status-im/market-assistant/models"
)

// fallbackSnapshot is served when a coin cannot be fetched. It carries the
// requested ID so callers can still name the coin.
func fallbackSnapshot(coinID string, now time.Time) models.CoinSnapshot {
	return models.CoinSnapshot{
		ID:           coinID,
		Name:         coinID,
		CurrentPrice: decimal.Zero,
		LastUpdated:  now,
		Synthetic:    true,
	}
}

func fallbackGlobalStats(now time.Time) models.GlobalStats {
	return models.GlobalStats{
		TotalMarketCapUSD: decimal.Zero,
		TotalVolumeUSD:    decimal.Zero,
		UpdatedAt:         now,
		Synthetic:         true,
	}
}
