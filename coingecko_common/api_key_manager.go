package coingecko_common

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/status-im/market-assistant/config"
)

// KeyType defines the API key type
type KeyType int

const (
	// NoKey means no API key is available
	NoKey KeyType = iota
	// ProKey means using a Pro API key
	ProKey
	// DemoKey means using a demo API key
	DemoKey
)

func (k KeyType) String() string {
	switch k {
	case ProKey:
		return "pro"
	case DemoKey:
		return "demo"
	default:
		return "none"
	}
}

// APIKey represents an API key with its type
type APIKey struct {
	Key  string
	Type KeyType
}

// IAPIKeyManager defines the interface for API key management
//
//go:generate mockgen -destination=mocks/api_key_manager.go . IAPIKeyManager
type IAPIKeyManager interface {
	// GetAvailableKeys returns the keys to try in order:
	// Pro keys not in backoff (a single Pro key is always included),
	// Demo keys not in backoff, and finally the keyless entry.
	GetAvailableKeys() []APIKey

	// MarkKeyAsFailed puts a key in backoff
	MarkKeyAsFailed(key string)
}

// APIKeyManager implements IAPIKeyManager for CoinGecko
type APIKeyManager struct {
	apiTokens   *config.APITokens
	lastFailed  map[string]time.Time
	backoffTime time.Duration
	mu          sync.RWMutex
}

// NewAPIKeyManager creates a new API key manager
func NewAPIKeyManager(apiTokens *config.APITokens) *APIKeyManager {
	return &APIKeyManager{
		apiTokens:   apiTokens,
		lastFailed:  make(map[string]time.Time),
		backoffTime: 5 * time.Minute,
	}
}

func (m *APIKeyManager) inBackoff(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	failedAt, ok := m.lastFailed[key]
	return ok && time.Since(failedAt) < m.backoffTime
}

func (m *APIKeyManager) tokens() (pro, demo []string) {
	if m.apiTokens == nil {
		return nil, nil
	}
	return m.apiTokens.Tokens, m.apiTokens.DemoTokens
}

// GetAvailableKeys returns a list of available API keys
func (m *APIKeyManager) GetAvailableKeys() []APIKey {
	pro, demo := m.tokens()
	keys := make([]APIKey, 0, len(pro)+len(demo)+1)

	for _, key := range pro {
		if len(pro) == 1 || !m.inBackoff(key) {
			keys = append(keys, APIKey{Key: key, Type: ProKey})
		}
	}

	for _, key := range demo {
		if !m.inBackoff(key) {
			keys = append(keys, APIKey{Key: key, Type: DemoKey})
		}
	}

	return append(keys, APIKey{Key: "", Type: NoKey})
}

// MarkKeyAsFailed marks a key as non-working for some time
func (m *APIKeyManager) MarkKeyAsFailed(key string) {
	if key == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastFailed[key] = time.Now()
	log.Warn().Dur("backoff", m.backoffTime).Msg("APIKeyManager: key marked as failed")
}
