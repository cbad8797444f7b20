package coingecko_common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/market-assistant/config"
)

func containsKey(keys []APIKey, key string, keyType KeyType) bool {
	for _, k := range keys {
		if k.Key == key && k.Type == keyType {
			return true
		}
	}
	return false
}

func TestAPIKeyManager_GetAvailableKeys(t *testing.T) {
	manager := NewAPIKeyManager(&config.APITokens{
		Tokens:     []string{"pro1", "pro2"},
		DemoTokens: []string{"demo1", "demo2", "demo3"},
	})

	keys := manager.GetAvailableKeys()
	require.Len(t, keys, 6)
	assert.True(t, containsKey(keys, "pro1", ProKey))
	assert.True(t, containsKey(keys, "pro2", ProKey))
	assert.True(t, containsKey(keys, "demo1", DemoKey))
	assert.Equal(t, APIKey{Key: "", Type: NoKey}, keys[len(keys)-1])

	manager.MarkKeyAsFailed("pro1")

	keys = manager.GetAvailableKeys()
	assert.Len(t, keys, 5)
	assert.False(t, containsKey(keys, "pro1", ProKey))
}

func TestAPIKeyManager_SingleProKeyAlwaysAvailable(t *testing.T) {
	manager := NewAPIKeyManager(&config.APITokens{
		Tokens:     []string{"solo-pro"},
		DemoTokens: []string{"demo1"},
	})

	manager.MarkKeyAsFailed("solo-pro")

	assert.True(t, containsKey(manager.GetAvailableKeys(), "solo-pro", ProKey))
}

func TestAPIKeyManager_NoTokens(t *testing.T) {
	keys := NewAPIKeyManager(nil).GetAvailableKeys()
	assert.Equal(t, []APIKey{{Key: "", Type: NoKey}}, keys)
}

func TestAPIKeyManager_BackoffExpires(t *testing.T) {
	manager := NewAPIKeyManager(&config.APITokens{
		Tokens: []string{"pro1", "pro2", "pro3"},
	})
	manager.backoffTime = 50 * time.Millisecond

	manager.MarkKeyAsFailed("pro1")
	assert.False(t, containsKey(manager.GetAvailableKeys(), "pro1", ProKey))

	time.Sleep(80 * time.Millisecond)
	assert.True(t, containsKey(manager.GetAvailableKeys(), "pro1", ProKey))
}

func TestTryWithKeys(t *testing.T) {
	keys := []APIKey{
		{Key: "pro1", Type: ProKey},
		{Key: "demo1", Type: DemoKey},
		{Key: "", Type: NoKey},
	}

	t.Run("falls through to next key", func(t *testing.T) {
		var failed []string
		result, err := TryWithKeys(keys, "Test", func(key APIKey) (string, error) {
			if key.Type == ProKey {
				return "", errors.New("unauthorized")
			}
			return "ok:" + key.Key, nil
		}, func(key APIKey, _ error) {
			failed = append(failed, key.Key)
		})

		require.NoError(t, err)
		assert.Equal(t, "ok:demo1", result)
		assert.Equal(t, []string{"pro1"}, failed)
	})

	t.Run("returns last error when all fail", func(t *testing.T) {
		lastErr := errors.New("last")
		calls := 0
		_, err := TryWithKeys(keys, "Test", func(key APIKey) (int, error) {
			calls++
			if key.Type == NoKey {
				return 0, lastErr
			}
			return 0, errors.New("other")
		}, nil)

		assert.ErrorIs(t, err, lastErr)
		assert.Equal(t, 3, calls)
	})

	t.Run("request errors stop rotation", func(t *testing.T) {
		var failed []string
		calls := 0
		notFound := &HTTPStatusError{StatusCode: http.StatusNotFound}
		_, err := TryWithKeys(keys, "Test", func(key APIKey) (int, error) {
			calls++
			return 0, fmt.Errorf("wrapped: %w", notFound)
		}, func(key APIKey, _ error) {
			failed = append(failed, key.Key)
		})

		assert.ErrorIs(t, err, notFound)
		assert.Equal(t, 1, calls)
		assert.Empty(t, failed)
	})

	t.Run("rate limited key rotates", func(t *testing.T) {
		var failed []string
		result, err := TryWithKeys(keys, "Test", func(key APIKey) (string, error) {
			if key.Type == ProKey {
				return "", &HTTPStatusError{StatusCode: http.StatusTooManyRequests}
			}
			return "ok", nil
		}, func(key APIKey, _ error) {
			failed = append(failed, key.Key)
		})

		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, []string{"pro1"}, failed)
	})

	t.Run("no keys", func(t *testing.T) {
		_, err := TryWithKeys(nil, "Test", func(APIKey) (int, error) { return 1, nil }, nil)
		assert.Error(t, err)
	})
}

func TestIsRequestError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"not found", &HTTPStatusError{StatusCode: http.StatusNotFound}, true},
		{"bad request wrapped", fmt.Errorf("x: %w", &HTTPStatusError{StatusCode: http.StatusBadRequest}), true},
		{"unauthorized", &HTTPStatusError{StatusCode: http.StatusUnauthorized}, false},
		{"forbidden", &HTTPStatusError{StatusCode: http.StatusForbidden}, false},
		{"rate limited", &HTTPStatusError{StatusCode: http.StatusTooManyRequests}, false},
		{"server error", &HTTPStatusError{StatusCode: http.StatusBadGateway}, false},
		{"transport", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRequestError(tt.err))
		})
	}
}

func TestCreateFailCallback(t *testing.T) {
	manager := NewAPIKeyManager(&config.APITokens{Tokens: []string{"pro1", "pro2"}})
	onFailed := CreateFailCallback(manager)

	onFailed(APIKey{Key: "pro1", Type: ProKey}, errors.New("boom"))
	onFailed(APIKey{Key: "", Type: NoKey}, errors.New("boom"))
	onFailed(APIKey{Key: "pro2", Type: ProKey}, &HTTPStatusError{StatusCode: http.StatusNotFound})

	keys := manager.GetAvailableKeys()
	assert.False(t, containsKey(keys, "pro1", ProKey))
	assert.True(t, containsKey(keys, "pro2", ProKey))
	assert.True(t, containsKey(keys, "", NoKey))
}
