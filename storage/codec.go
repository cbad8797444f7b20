package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/status-im/market-assistant/models"
)

const dateLayout = "2006-01-02"

// rowScanner is satisfied by *sql.Row, *sql.Rows, pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func decimalArg(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func intArg(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}

func parseDecimal(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("invalid decimal %q: %w", *s, err)
	}
	return models.DecimalPtr(d), nil
}

func intPtr(i *int64) *int {
	if i == nil {
		return nil
	}
	return models.IntPtr(int(*i))
}

// snapshotColumns is the column order shared by every snapshot query
const snapshotColumns = `id, symbol, name, image_url, current_price, total_volume, price_change_24h,
	price_change_percentage_24h, market_cap, market_cap_rank, last_updated`

// snapshotRow holds the raw column values of a snapshot
type snapshotRow struct {
	ID, Symbol, Name, ImageURL string
	CurrentPrice               string
	TotalVolume                *string
	PriceChange24h             *string
	PriceChangePct24h          *string
	MarketCap                  *string
	MarketCapRank              *int64
}

func (r *snapshotRow) dest(lastUpdated any) []any {
	return []any{
		&r.ID, &r.Symbol, &r.Name, &r.ImageURL, &r.CurrentPrice, &r.TotalVolume, &r.PriceChange24h,
		&r.PriceChangePct24h, &r.MarketCap, &r.MarketCapRank, lastUpdated,
	}
}

func (r *snapshotRow) toSnapshot(lastUpdated time.Time) (models.CoinSnapshot, error) {
	price, err := decimal.NewFromString(r.CurrentPrice)
	if err != nil {
		return models.CoinSnapshot{}, fmt.Errorf("invalid price for %s: %w", r.ID, err)
	}

	snapshot := models.CoinSnapshot{
		ID:            r.ID,
		Symbol:        r.Symbol,
		Name:          r.Name,
		ImageURL:      r.ImageURL,
		CurrentPrice:  price,
		MarketCapRank: intPtr(r.MarketCapRank),
		LastUpdated:   lastUpdated.UTC(),
	}

	fields := []struct {
		src *string
		dst **decimal.Decimal
	}{
		{r.TotalVolume, &snapshot.TotalVolume},
		{r.PriceChange24h, &snapshot.PriceChange24h},
		{r.PriceChangePct24h, &snapshot.PriceChangePercentage24h},
		{r.MarketCap, &snapshot.MarketCap},
	}
	for _, f := range fields {
		if *f.dst, err = parseDecimal(f.src); err != nil {
			return models.CoinSnapshot{}, err
		}
	}

	return snapshot, nil
}

func snapshotArgs(s models.CoinSnapshot) []any {
	return []any{
		s.ID, s.Symbol, s.Name, s.ImageURL, s.CurrentPrice.String(),
		decimalArg(s.TotalVolume), decimalArg(s.PriceChange24h), decimalArg(s.PriceChangePercentage24h),
		decimalArg(s.MarketCap), intArg(s.MarketCapRank),
	}
}

// orderClause maps an order to SQL. numeric wraps decimal columns for backends storing them as text.
func orderClause(orderBy models.SnapshotOrder, numeric func(string) string) (string, error) {
	switch orderBy {
	case models.OrderByMarketCapRank:
		return "market_cap_rank ASC NULLS LAST, id ASC", nil
	case models.OrderByMarketCap:
		return numeric("market_cap") + " DESC NULLS LAST, id ASC", nil
	case models.OrderByPriceChange:
		return numeric("price_change_percentage_24h") + " DESC NULLS LAST, id ASC", nil
	case models.OrderByTotalVolume:
		return numeric("total_volume") + " DESC NULLS LAST, id ASC", nil
	}
	return "", fmt.Errorf("unsupported snapshot order %q", orderBy)
}

func likePattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(strings.TrimSpace(query)))
	return "%" + escaped + "%"
}

const globalStatsColumns = `total_market_cap, total_volume, active_cryptocurrencies,
	market_cap_percentage_btc, market_cap_percentage_eth, updated_at`

type globalStatsRow struct {
	TotalMarketCap string
	TotalVolume    string
	Active         int64
	BTC, ETH       *string
}

func (r *globalStatsRow) dest(updatedAt any) []any {
	return []any{&r.TotalMarketCap, &r.TotalVolume, &r.Active, &r.BTC, &r.ETH, updatedAt}
}

func (r *globalStatsRow) toStats(updatedAt time.Time) (*models.GlobalStats, error) {
	marketCap, err := decimal.NewFromString(r.TotalMarketCap)
	if err != nil {
		return nil, fmt.Errorf("invalid total market cap: %w", err)
	}
	volume, err := decimal.NewFromString(r.TotalVolume)
	if err != nil {
		return nil, fmt.Errorf("invalid total volume: %w", err)
	}
	btc, err := parseDecimal(r.BTC)
	if err != nil {
		return nil, err
	}
	eth, err := parseDecimal(r.ETH)
	if err != nil {
		return nil, err
	}

	return &models.GlobalStats{
		TotalMarketCapUSD:      marketCap,
		TotalVolumeUSD:         volume,
		ActiveCryptocurrencies: int(r.Active),
		MarketCapPercentageBTC: btc,
		MarketCapPercentageETH: eth,
		UpdatedAt:              updatedAt.UTC(),
	}, nil
}
