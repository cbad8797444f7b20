package coingecko

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	cg "github.com/status-im/market-assistant/coingecko_common"
	"github.com/status-im/market-assistant/config"
	"github.com/status-im/market-assistant/models"
)

const (
	marketsPath = "/api/v3/coins/markets"
	globalPath  = "/api/v3/global"
	userAgent   = "market-assistant/1.0"
)

// IAPIClient is the raw upstream surface used by Service
type IAPIClient interface {
	FetchMarkets(ctx context.Context, perPage int, ids ...string) ([]models.CoinSnapshot, error)
	FetchMarketChart(ctx context.Context, coinID string, days int) ([]models.HistoricalPrice, error)
	FetchGlobal(ctx context.Context) (models.GlobalStats, error)
}

// CoinGeckoClient performs raw upstream calls, rotating through the configured API keys
type CoinGeckoClient struct {
	config     config.CoinGeckoConfig
	keyManager cg.IAPIKeyManager
	httpClient *cg.HTTPClientWithRetries
	now        func() time.Time
}

// NewCoinGeckoClient creates a new CoinGecko API client
func NewCoinGeckoClient(cfg config.CoinGeckoConfig, keyManager cg.IAPIKeyManager, statusHandler cg.IHttpStatusHandler, limiterManager cg.IRateLimiterManager) *CoinGeckoClient {
	retryOpts := cg.DefaultRetryOptions()
	retryOpts.LogPrefix = "CoinGecko"
	retryOpts.MaxAttempts = cfg.MaxAttempts
	retryOpts.ConnectionTimeout = cfg.ConnectionTimeout
	retryOpts.RequestTimeout = cfg.RequestTimeout

	return &CoinGeckoClient{
		config:     cfg,
		keyManager: keyManager,
		httpClient: cg.NewHTTPClientWithRetries(retryOpts, statusHandler, limiterManager),
		now:        time.Now,
	}
}

// get runs a GET against path with each available key until one succeeds
func (c *CoinGeckoClient) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	executor := func(apiKey cg.APIKey) ([]byte, error) {
		rb := cg.NewCoingeckoRequestBuilder(cg.GetApiBaseUrl(c.config, apiKey.Type), path).
			WithApiKey(apiKey.Key, apiKey.Type).
			WithUserAgent(userAgent)
		for k, v := range params {
			rb.With(k, v)
		}

		req, err := rb.Build(ctx)
		if err != nil {
			return nil, err
		}

		body, duration, err := c.httpClient.ExecuteRequest(req)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("path", path).Dur("duration", duration).Str("key_type", apiKey.Type.String()).
			Msg("CoinGecko: request completed")
		return body, nil
	}

	body, err := cg.TryWithKeys(c.keyManager.GetAvailableKeys(), "CoinGecko", executor, cg.CreateFailCallback(c.keyManager))
	if err != nil {
		return nil, unavailable(path, err)
	}
	return body, nil
}

// FetchMarkets calls /coins/markets. With ids set the result is limited to those coins.
func (c *CoinGeckoClient) FetchMarkets(ctx context.Context, perPage int, ids ...string) ([]models.CoinSnapshot, error) {
	params := map[string]string{
		"vs_currency":             c.config.Currency,
		"order":                   "market_cap_desc",
		"per_page":                strconv.Itoa(perPage),
		"page":                    "1",
		"sparkline":               "false",
		"price_change_percentage": "24h",
	}
	if len(ids) > 0 {
		params["ids"] = strings.Join(ids, ",")
	}

	body, err := c.get(ctx, marketsPath, params)
	if err != nil {
		return nil, err
	}

	var payload marketsPayload
	if err := json.Unmarshal(body, &payload.Entries); err != nil {
		return nil, malformed(marketsPath, err)
	}
	if err := validate.Struct(payload); err != nil {
		return nil, malformed(marketsPath, err)
	}

	now := c.now().UTC()
	snapshots := make([]models.CoinSnapshot, 0, len(payload.Entries))
	for _, e := range payload.Entries {
		snapshots = append(snapshots, e.toSnapshot(now))
	}

	log.Info().Int("coins", len(snapshots)).Int("per_page", perPage).Msg("CoinGecko: fetched markets")
	return snapshots, nil
}

// FetchMarketChart calls /coins/{id}/market_chart for the last days
func (c *CoinGeckoClient) FetchMarketChart(ctx context.Context, coinID string, days int) ([]models.HistoricalPrice, error) {
	if coinID == "" {
		return nil, fmt.Errorf("coin ID is required")
	}

	interval := "daily"
	if days <= 1 {
		interval = "hourly"
	}

	path := fmt.Sprintf("/api/v3/coins/%s/market_chart", url.PathEscape(coinID))
	body, err := c.get(ctx, path, map[string]string{
		"vs_currency": c.config.Currency,
		"days":        strconv.Itoa(days),
		"interval":    interval,
	})
	if err != nil {
		return nil, err
	}

	var resp marketChartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, malformed(path, err)
	}
	if err := validate.Struct(resp); err != nil {
		return nil, malformed(path, err)
	}

	history := resp.toHistory()
	log.Info().Str("coin", coinID).Int("days", days).Int("points", len(history)).Msg("CoinGecko: fetched market chart")
	return history, nil
}

// FetchGlobal calls /global
func (c *CoinGeckoClient) FetchGlobal(ctx context.Context) (models.GlobalStats, error) {
	body, err := c.get(ctx, globalPath, nil)
	if err != nil {
		return models.GlobalStats{}, err
	}

	var resp globalResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.GlobalStats{}, malformed(globalPath, err)
	}
	if err := validate.Struct(resp); err != nil {
		return models.GlobalStats{}, malformed(globalPath, err)
	}

	stats, err := resp.Data.toStats(c.config.Currency, c.now().UTC())
	if err != nil {
		return models.GlobalStats{}, malformed(globalPath, err)
	}
	return stats, nil
}
