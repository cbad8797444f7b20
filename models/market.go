package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CoinSnapshot is the latest known market state of a single coin.
// Optional figures are nil until the provider reports them.
type CoinSnapshot struct {
	ID                       string           `json:"id"`
	Symbol                   string           `json:"symbol"`
	Name                     string           `json:"name"`
	ImageURL                 string           `json:"image,omitempty"`
	CurrentPrice             decimal.Decimal  `json:"current_price"`
	TotalVolume              *decimal.Decimal `json:"total_volume"`
	PriceChange24h           *decimal.Decimal `json:"price_change_24h"`
	PriceChangePercentage24h *decimal.Decimal `json:"price_change_percentage_24h"`
	MarketCap                *decimal.Decimal `json:"market_cap"`
	MarketCapRank            *int             `json:"market_cap_rank"`
	LastUpdated              time.Time        `json:"last_updated"`

	// Synthetic marks a placeholder built when the provider could not be reached.
	// Synthetic snapshots are never persisted.
	Synthetic bool `json:"synthetic,omitempty"`
}

// PricePoint is the price of a coin on a given UTC date.
type PricePoint struct {
	CoinID string          `json:"coin_id"`
	Date   time.Time       `json:"date"`
	Price  decimal.Decimal `json:"price"`
}

// HistoricalPrice is a single sample of the provider's price chart.
type HistoricalPrice struct {
	Timestamp time.Time       `json:"timestamp"`
	Price     decimal.Decimal `json:"price"`
}

// GlobalStats holds aggregate figures for the whole market.
type GlobalStats struct {
	TotalMarketCapUSD      decimal.Decimal  `json:"total_market_cap_usd"`
	TotalVolumeUSD         decimal.Decimal  `json:"total_volume_usd"`
	ActiveCryptocurrencies int              `json:"active_cryptocurrencies"`
	MarketCapPercentageBTC *decimal.Decimal `json:"market_cap_percentage_btc"`
	MarketCapPercentageETH *decimal.Decimal `json:"market_cap_percentage_eth"`
	UpdatedAt              time.Time        `json:"updated_at"`
	Synthetic              bool             `json:"synthetic,omitempty"`
}

// SnapshotOrder selects the ordering used when listing snapshots
type SnapshotOrder string

const (
	OrderByMarketCapRank SnapshotOrder = "market_cap_rank"
	OrderByMarketCap     SnapshotOrder = "market_cap"
	OrderByPriceChange   SnapshotOrder = "price_change_percentage_24h"
	OrderByTotalVolume   SnapshotOrder = "total_volume"
)

// Valid reports whether the order is one of the supported values
func (o SnapshotOrder) Valid() bool {
	switch o {
	case OrderByMarketCapRank, OrderByMarketCap, OrderByPriceChange, OrderByTotalVolume:
		return true
	}
	return false
}

// DateOf truncates a timestamp to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// PricePointsFromHistory collapses chart samples into one point per UTC date.
// Samples must be ascending; the last sample of a day wins.
func PricePointsFromHistory(coinID string, history []HistoricalPrice) []PricePoint {
	points := make([]PricePoint, 0, len(history))
	index := make(map[time.Time]int, len(history))

	for _, h := range history {
		date := DateOf(h.Timestamp)
		if i, ok := index[date]; ok {
			points[i].Price = h.Price
			continue
		}
		index[date] = len(points)
		points = append(points, PricePoint{CoinID: coinID, Date: date, Price: h.Price})
	}

	return points
}

// DecimalPtr returns a pointer to d
func DecimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// IntPtr returns a pointer to i
func IntPtr(i int) *int {
	return &i
}
