package e2etest

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestQAPrice answers a price question from stored snapshots
func TestQAPrice(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	waitForDataInitialization(t, env)

	answer := ask(t, env, "What is the price of BTC?")

	assert.Equal(t, "PRICE", answer["intent"])
	assert.Equal(t, "The current price of Bitcoin (BTC) is $47,000.00. It has increased by 2.50% in the last 24 hours.", answer["text"])
}

// TestQATrend computes the trend from the history stored by the startup refresh
func TestQATrend(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	waitForDataInitialization(t, env)

	answer := ask(t, env, "Show me the bitcoin trend over the last week")

	assert.Equal(t, "TREND", answer["intent"])
	assert.Equal(t, "Over the last 7 days, Bitcoin has increased by 17.50%. The price moved from $40,000.00 to $47,000.00.", answer["text"])

	params, ok := answer["params"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "bitcoin", params["coin"])
	assert.EqualValues(t, 7, params["days"])
}

// TestQATopCoins lists the top coins by rank
func TestQATopCoins(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	waitForDataInitialization(t, env)

	answer := ask(t, env, "top 2 coins")

	assert.Equal(t, "TOP_COINS", answer["intent"])
	assert.Equal(t, "Here are the top 2 cryptocurrencies by market cap:\n"+
		"\n1. Bitcoin (BTC) - $47,000.00 (+2.50%)"+
		"\n2. Ethereum (ETH) - $3,000.00 (-1.25%)", answer["text"])
}

// TestQAUnknownCoin falls back to the not found answer when the upstream has no data
func TestQAUnknownCoin(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	answer := ask(t, env, "price of dogecoin")

	assert.Equal(t, "PRICE", answer["intent"])
	assert.Contains(t, answer["text"], "dogecoin")
}

// TestQAValidation rejects missing questions
func TestQAValidation(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	var body map[string]interface{}
	assert.Equal(t, http.StatusBadRequest, getJSON(t, env, "/api/v1/qa", &body))
	assert.Contains(t, body, "error")
}

// TestChatEndpoint keeps the session ID supplied by the client
func TestChatEndpoint(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	var answer map[string]interface{}
	status := postJSON(t, env, "/api/v1/chat", `{"message":"hello","session_id":"e2e-session"}`, &answer)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "GREETING", answer["intent"])
	assert.Equal(t, "e2e-session", answer["session_id"])
	assert.Equal(t, "assistant", answer["message_type"])
	assert.NotEmpty(t, answer["timestamp"])

	status = postJSON(t, env, "/api/v1/chat", `{"message":""}`, &answer)
	assert.Equal(t, http.StatusBadRequest, status)
}
