package coingecko

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/status-im/market-assistant/models"
)

var validate = validator.New()

// marketEntry is one element of the /coins/markets response
type marketEntry struct {
	ID                       string           `json:"id" validate:"required"`
	Symbol                   string           `json:"symbol" validate:"required"`
	Name                     string           `json:"name" validate:"required"`
	Image                    string           `json:"image"`
	CurrentPrice             *decimal.Decimal `json:"current_price"`
	MarketCap                *decimal.Decimal `json:"market_cap"`
	MarketCapRank            *int             `json:"market_cap_rank"`
	TotalVolume              *decimal.Decimal `json:"total_volume"`
	PriceChange24h           *decimal.Decimal `json:"price_change_24h"`
	PriceChangePercentage24h *decimal.Decimal `json:"price_change_percentage_24h"`
	LastUpdated              *time.Time       `json:"last_updated"`
}

type marketsPayload struct {
	Entries []marketEntry `validate:"dive"`
}

// marketChartResponse is the /coins/{id}/market_chart response.
// Each price is a [timestamp_ms, price] pair.
type marketChartResponse struct {
	Prices [][]decimal.Decimal `json:"prices" validate:"required,dive,len=2"`
}

type globalResponse struct {
	Data globalData `json:"data"`
}

type globalData struct {
	ActiveCryptocurrencies int                        `json:"active_cryptocurrencies" validate:"gte=0"`
	TotalMarketCap         map[string]decimal.Decimal `json:"total_market_cap" validate:"required"`
	TotalVolume            map[string]decimal.Decimal `json:"total_volume" validate:"required"`
	MarketCapPercentage    map[string]decimal.Decimal `json:"market_cap_percentage"`
}

func (e marketEntry) toSnapshot(now time.Time) models.CoinSnapshot {
	snapshot := models.CoinSnapshot{
		ID:                       e.ID,
		Symbol:                   e.Symbol,
		Name:                     e.Name,
		ImageURL:                 e.Image,
		TotalVolume:              e.TotalVolume,
		PriceChange24h:           e.PriceChange24h,
		PriceChangePercentage24h: e.PriceChangePercentage24h,
		MarketCap:                e.MarketCap,
		MarketCapRank:            e.MarketCapRank,
		LastUpdated:              now,
	}
	if e.CurrentPrice != nil {
		snapshot.CurrentPrice = *e.CurrentPrice
	}
	if e.LastUpdated != nil {
		snapshot.LastUpdated = e.LastUpdated.UTC()
	}
	return snapshot
}

func (r marketChartResponse) toHistory() []models.HistoricalPrice {
	history := make([]models.HistoricalPrice, 0, len(r.Prices))
	for _, p := range r.Prices {
		history = append(history, models.HistoricalPrice{
			Timestamp: time.UnixMilli(p[0].IntPart()).UTC(),
			Price:     p[1],
		})
	}
	return history
}

func (d globalData) toStats(currency string, now time.Time) (models.GlobalStats, error) {
	marketCap, ok := d.TotalMarketCap[currency]
	if !ok {
		return models.GlobalStats{}, fmt.Errorf("total_market_cap has no %q entry", currency)
	}
	volume, ok := d.TotalVolume[currency]
	if !ok {
		return models.GlobalStats{}, fmt.Errorf("total_volume has no %q entry", currency)
	}

	stats := models.GlobalStats{
		TotalMarketCapUSD:      marketCap,
		TotalVolumeUSD:         volume,
		ActiveCryptocurrencies: d.ActiveCryptocurrencies,
		UpdatedAt:              now,
	}
	if btc, ok := d.MarketCapPercentage["btc"]; ok {
		stats.MarketCapPercentageBTC = models.DecimalPtr(btc)
	}
	if eth, ok := d.MarketCapPercentage["eth"]; ok {
		stats.MarketCapPercentageETH = models.DecimalPtr(eth)
	}
	return stats, nil
}
