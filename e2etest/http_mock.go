package e2etest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// MockCoin describes one coin served by the mock CoinGecko API
type MockCoin struct {
	ID        string
	Symbol    string
	Name      string
	Price     float64
	MarketCap float64
	Volume    float64
	Change24h float64
	// DailyStep is added to the price for each day of chart history
	DailyStep float64
}

// MockServer emulates the CoinGecko endpoints used by the market client
type MockServer struct {
	server *httptest.Server
	Coins  []MockCoin

	mu       sync.RWMutex
	requests map[string]int
	failing  bool
}

// DefaultMockCoins returns the coins served unless a test overrides them
func DefaultMockCoins() []MockCoin {
	return []MockCoin{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", Price: 47000, MarketCap: 900e9, Volume: 30e9, Change24h: 2.5, DailyStep: 1000},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum", Price: 3000, MarketCap: 360e9, Volume: 15e9, Change24h: -1.25, DailyStep: -10},
		{ID: "solana", Symbol: "sol", Name: "Solana", Price: 150, MarketCap: 65e9, Volume: 3e9, Change24h: 10, DailyStep: 5},
	}
}

// NewMockServer creates and starts a new mock server
func NewMockServer() *MockServer {
	ms := &MockServer{
		Coins:    DefaultMockCoins(),
		requests: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", ms.handleRequest)

	// httptest.Server selects a free port
	ms.server = httptest.NewServer(mux)
	return ms
}

// GetURL returns the base URL of the mock server
func (ms *MockServer) GetURL() string {
	return ms.server.URL
}

// Close stops the mock server
func (ms *MockServer) Close() {
	if ms.server != nil {
		ms.server.Close()
	}
}

// SetFailing makes every endpoint answer with 503
func (ms *MockServer) SetFailing(failing bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.failing = failing
}

// RequestCount returns how many requests hit the given path
func (ms *MockServer) RequestCount(path string) int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.requests[path]
}

func (ms *MockServer) handleRequest(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	log.Debug().Str("path", path).Msg("MockServer: received request")

	ms.mu.Lock()
	ms.requests[path]++
	failing := ms.failing
	ms.mu.Unlock()

	if failing {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	switch {
	case path == "/api/v3/coins/markets":
		ms.writeJSON(w, ms.markets(r))
	case path == "/api/v3/global":
		ms.writeJSON(w, ms.global())
	case strings.HasPrefix(path, "/api/v3/coins/") && strings.HasSuffix(path, "/market_chart"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/api/v3/coins/"), "/market_chart")
		coin, ok := ms.coin(id)
		if !ok {
			http.Error(w, `{"error":"coin not found"}`, http.StatusNotFound)
			return
		}
		days, _ := strconv.Atoi(r.URL.Query().Get("days"))
		ms.writeJSON(w, marketChart(coin, days))
	default:
		http.NotFound(w, r)
	}
}

func (ms *MockServer) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("MockServer: failed to encode response")
	}
}

func (ms *MockServer) coin(id string) (MockCoin, bool) {
	for _, c := range ms.Coins {
		if c.ID == id {
			return c, true
		}
	}
	return MockCoin{}, false
}

func (ms *MockServer) markets(r *http.Request) []map[string]interface{} {
	perPage, err := strconv.Atoi(r.URL.Query().Get("per_page"))
	if err != nil || perPage <= 0 {
		perPage = len(ms.Coins)
	}

	var wanted map[string]bool
	if ids := r.URL.Query().Get("ids"); ids != "" {
		wanted = make(map[string]bool)
		for _, id := range strings.Split(ids, ",") {
			wanted[id] = true
		}
	}

	updated := time.Now().UTC().Format(time.RFC3339)
	entries := make([]map[string]interface{}, 0, len(ms.Coins))
	for i, c := range ms.Coins {
		if len(entries) == perPage {
			break
		}
		if wanted != nil && !wanted[c.ID] {
			continue
		}
		entries = append(entries, map[string]interface{}{
			"id":                          c.ID,
			"symbol":                      c.Symbol,
			"name":                        c.Name,
			"image":                       fmt.Sprintf("https://example.com/%s.png", c.ID),
			"current_price":               c.Price,
			"market_cap":                  c.MarketCap,
			"market_cap_rank":             i + 1,
			"total_volume":                c.Volume,
			"price_change_24h":            c.Price * c.Change24h / 100,
			"price_change_percentage_24h": c.Change24h,
			"last_updated":                updated,
		})
	}
	return entries
}

func (ms *MockServer) global() map[string]interface{} {
	var marketCap, volume float64
	for _, c := range ms.Coins {
		marketCap += c.MarketCap
		volume += c.Volume
	}
	return map[string]interface{}{
		"data": map[string]interface{}{
			"active_cryptocurrencies": len(ms.Coins),
			"total_market_cap":        map[string]float64{"usd": marketCap},
			"total_volume":            map[string]float64{"usd": volume},
			"market_cap_percentage":   map[string]float64{"btc": 55.5, "eth": 22.1},
		},
	}
}

// marketChart returns one sample per day ending now, rising by DailyStep each day
func marketChart(c MockCoin, days int) map[string]interface{} {
	if days <= 0 {
		days = 1
	}

	now := time.Now().UTC()
	prices := make([][2]float64, 0, days+1)
	for i := days; i >= 0; i-- {
		ts := now.Add(-time.Duration(i) * 24 * time.Hour)
		price := c.Price - float64(i)*c.DailyStep
		prices = append(prices, [2]float64{float64(ts.UnixMilli()), price})
	}
	return map[string]interface{}{"prices": prices}
}
