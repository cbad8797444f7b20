package coingecko_common

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoingeckoRequestBuilder_BuildURL(t *testing.T) {
	rb := NewCoingeckoRequestBuilder("https://api.coingecko.com/", "/api/v3/coins/markets").
		WithCurrency("usd").
		With("per_page", "50").
		With("page", "1")

	u, err := url.Parse(rb.BuildURL())
	require.NoError(t, err)

	assert.Equal(t, "/api/v3/coins/markets", u.Path)
	assert.Equal(t, "usd", u.Query().Get("vs_currency"))
	assert.Equal(t, "50", u.Query().Get("per_page"))
	assert.Equal(t, "1", u.Query().Get("page"))
}

func TestCoingeckoRequestBuilder_NoQuery(t *testing.T) {
	rb := NewCoingeckoRequestBuilder("https://api.coingecko.com", "api/v3/global")
	assert.Equal(t, "https://api.coingecko.com/api/v3/global", rb.BuildURL())
}

func TestCoingeckoRequestBuilder_ApiKeyHeaders(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		keyType   KeyType
		header    string
		absentHdr string
	}{
		{name: "demo", key: "demo-key", keyType: DemoKey, header: HeaderDemoAPIKey, absentHdr: HeaderProAPIKey},
		{name: "pro", key: "pro-key", keyType: ProKey, header: HeaderProAPIKey, absentHdr: HeaderDemoAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewCoingeckoRequestBuilder("https://api.coingecko.com", "/api/v3/global").
				WithApiKey(tt.key, tt.keyType).
				Build(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.key, req.Header.Get(tt.header))
			assert.Empty(t, req.Header.Get(tt.absentHdr))
			assert.NotContains(t, req.URL.String(), tt.key)
		})
	}
}

func TestCoingeckoRequestBuilder_Headers(t *testing.T) {
	req, err := NewCoingeckoRequestBuilder("https://api.coingecko.com", "/api/v3/global").
		WithApiKey("", DemoKey).
		WithUserAgent("test-agent").
		WithHeader("X-Test", "1").
		Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "test-agent", req.Header.Get("User-Agent"))
	assert.Equal(t, "1", req.Header.Get("X-Test"))
	assert.Empty(t, req.Header.Get(HeaderDemoAPIKey))

	key, keyType := NewCoingeckoRequestBuilder("", "").WithApiKey("k", ProKey).GetApiKey()
	assert.Equal(t, "k", key)
	assert.Equal(t, ProKey, keyType)
}
