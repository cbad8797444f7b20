package e2etest

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

// getJSON performs a GET against the service and decodes the body into out
func getJSON(t *testing.T, env *TestEnv, path string, out interface{}) int {
	t.Helper()

	status, err := tryGetJSON(env.ServerBaseURL+path, out)
	require.NoError(t, err, "GET %s", path)
	return status
}

// tryGetJSON is getJSON without assertions, for polling
func tryGetJSON(url string, out interface{}) (int, error) {
	resp, err := http.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return resp.StatusCode, fmt.Errorf("invalid JSON %q: %w", body, err)
		}
	}
	return resp.StatusCode, nil
}

// postJSON performs a POST with a JSON body and decodes the response into out
func postJSON(t *testing.T, env *TestEnv, path, body string, out interface{}) int {
	t.Helper()

	resp, err := http.Post(env.ServerBaseURL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err, "Should be able to make a request to %s", path)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Should be able to read response body")

	if out != nil {
		require.NoError(t, json.Unmarshal(data, out), "Response should be valid JSON: %s", data)
	}
	return resp.StatusCode
}

// deleteJSON performs a DELETE and decodes the response into out
func deleteJSON(t *testing.T, env *TestEnv, path string, out interface{}) int {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, env.ServerBaseURL+path, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "Should be able to make a request to %s", path)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Should be able to read response body")

	if out != nil {
		require.NoError(t, json.Unmarshal(data, out), "Response should be valid JSON: %s", data)
	}
	return resp.StatusCode
}

// ask sends a question through the single-shot QA endpoint
func ask(t *testing.T, env *TestEnv, question string) map[string]interface{} {
	t.Helper()

	var answer map[string]interface{}
	status := getJSON(t, env, "/api/v1/qa?text="+url.QueryEscape(question), &answer)
	require.Equal(t, http.StatusOK, status)
	return answer
}

// waitForDataInitialization waits until the startup refresh cycle has stored
// the top coins and the history of the highest ranked coins
func waitForDataInitialization(t *testing.T, env *TestEnv) {
	t.Helper()

	maxWait := 10 * time.Second
	pollInterval := 200 * time.Millisecond
	timeout := time.Now().Add(maxWait)

	for time.Now().Before(timeout) {
		// The startup cycle refreshes ethereum history after the top coins
		if env.MockServer.RequestCount("/api/v3/coins/ethereum/market_chart") > 0 {
			var coins, points []map[string]interface{}
			_, errCoins := tryGetJSON(env.ServerBaseURL+"/api/v1/coins/top?limit=3", &coins)
			_, errPoints := tryGetJSON(env.ServerBaseURL+"/api/v1/coins/ethereum/history?days=7", &points)
			if errCoins == nil && errPoints == nil && len(coins) == 3 && len(points) > 1 {
				t.Logf("Data initialization completed, found %d coins", len(coins))
				return
			}
		}
		time.Sleep(pollInterval)
	}
	t.Fatal("Data initialization did not complete in time")
}
