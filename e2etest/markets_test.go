package e2etest

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTopCoinsEndpoint tests /api/v1/coins/top after the startup refresh
func TestTopCoinsEndpoint(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	waitForDataInitialization(t, env)

	var coins []map[string]interface{}
	status := getJSON(t, env, "/api/v1/coins/top?limit=2", &coins)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, coins, 2)

	assert.Equal(t, "bitcoin", coins[0]["id"])
	assert.Equal(t, "ethereum", coins[1]["id"])
	assert.Contains(t, coins[0], "current_price")
	assert.Contains(t, coins[0], "market_cap_rank")

	// Ordering by 24h change puts solana first
	status = getJSON(t, env, "/api/v1/coins/top?limit=3&sort_by=price_change_percentage_24h", &coins)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, coins, 3)
	assert.Equal(t, "solana", coins[0]["id"])
	assert.Equal(t, "ethereum", coins[2]["id"])
}

// TestTopCoinsEndpoint_InvalidParams checks request validation
func TestTopCoinsEndpoint_InvalidParams(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	var body map[string]interface{}
	assert.Equal(t, http.StatusBadRequest, getJSON(t, env, "/api/v1/coins/top?limit=0", &body))
	assert.Contains(t, body, "error")
	assert.Equal(t, http.StatusBadRequest, getJSON(t, env, "/api/v1/coins/top?sort_by=name", &body))
}

// TestCoinEndpoint tests /api/v1/coins/{id}
func TestCoinEndpoint(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	waitForDataInitialization(t, env)

	var coin map[string]interface{}
	status := getJSON(t, env, "/api/v1/coins/solana", &coin)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "sol", coin["symbol"])
	assert.Equal(t, "Solana", coin["name"])

	var body map[string]interface{}
	assert.Equal(t, http.StatusNotFound, getJSON(t, env, "/api/v1/coins/unknowncoin", &body))
}

// TestSearchEndpoint tests /api/v1/coins/search
func TestSearchEndpoint(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	waitForDataInitialization(t, env)

	var coins []map[string]interface{}
	status := getJSON(t, env, "/api/v1/coins/search?q=ETH", &coins)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, coins, 1)
	assert.Equal(t, "ethereum", coins[0]["id"])

	var body map[string]interface{}
	assert.Equal(t, http.StatusBadRequest, getJSON(t, env, "/api/v1/coins/search?q=e", &body))
}

// TestGlobalEndpoint tests /api/v1/global
func TestGlobalEndpoint(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	waitForDataInitialization(t, env)

	var stats map[string]interface{}
	status := getJSON(t, env, "/api/v1/global", &stats)
	require.Equal(t, http.StatusOK, status)

	assert.EqualValues(t, 3, stats["active_cryptocurrencies"])
	assert.Contains(t, stats, "total_market_cap_usd")
	assert.Contains(t, stats, "market_cap_percentage_btc")
}

// TestRefreshEndpoint tests the manual refresh trigger
func TestRefreshEndpoint(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	waitForDataInitialization(t, env)
	before := env.MockServer.RequestCount("/api/v3/coins/markets")

	var report map[string]interface{}
	status := postJSON(t, env, "/api/v1/refresh", "", &report)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, true, report["top_coins_updated"])
	assert.Equal(t, true, report["global_data_updated"])
	assert.Equal(t, "2/2 coins", report["historical_data_updated"])

	// Refresh bypasses the cache
	assert.Greater(t, env.MockServer.RequestCount("/api/v3/coins/markets"), before)
}

// TestRefreshEndpoint_UpstreamDown reports failed steps without failing the request
func TestRefreshEndpoint_UpstreamDown(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	waitForDataInitialization(t, env)
	env.MockServer.SetFailing(true)

	var report map[string]interface{}
	status := postJSON(t, env, "/api/v1/refresh", "", &report)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, false, report["top_coins_updated"])
	assert.Equal(t, false, report["global_data_updated"])
	assert.Equal(t, "0/2 coins", report["historical_data_updated"])

	// Stored data is still served
	var coins []map[string]interface{}
	assert.Equal(t, http.StatusOK, getJSON(t, env, "/api/v1/coins/top?limit=3", &coins))
	assert.Len(t, coins, 3)
}
