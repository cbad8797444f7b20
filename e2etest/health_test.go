package e2etest

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHealthEndpoint tests the functionality of the /health endpoint
func TestHealthEndpoint(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	waitForDataInitialization(t, env)

	var health map[string]interface{}
	status := getJSON(t, env, "/health", &health)
	require.Equal(t, http.StatusOK, status, "Should return status 200 OK")

	assert.Equal(t, "ok", health["status"], "Health status should be 'ok'")

	services, ok := health["services"].(map[string]interface{})
	require.True(t, ok, "Response should contain 'services' object")

	// Both report up once the startup refresh reached the mock API
	assert.Equal(t, "up", services["coingecko"])
	assert.Equal(t, "up", services["refresh"])
}

// TestMetricsEndpoint checks that the refresh cycle is visible in the metrics
func TestMetricsEndpoint(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	waitForDataInitialization(t, env)

	resp, err := http.Get(env.ServerBaseURL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
