package coingecko_common

import (
	"math"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/status-im/market-assistant/config"
)

// IRateLimiterManager provides a rate limiter for an outgoing request
//
//go:generate mockgen -destination=mocks/rate_limiter_manager.go . IRateLimiterManager
type IRateLimiterManager interface {
	GetLimiterForRequest(req *http.Request) *rate.Limiter
	SetConfig(cfg config.APIKeyConfig)
}

type limiterKey struct {
	keyType KeyType
	key     string
}

// RateLimiterManager manages per-key rate limiters using APIKeyConfig
type RateLimiterManager struct {
	mu       sync.RWMutex
	limiters map[limiterKey]*rate.Limiter
	config   config.APIKeyConfig
}

var (
	managerOnce   sync.Once
	globalManager *RateLimiterManager
)

// Defaults in requests per minute, used when config is not provided
const (
	defaultProRPM   = 500
	defaultDemoRPM  = 30
	defaultNoKeyRPM = 30
)

// NewRateLimiterManager creates a manager with the given limits
func NewRateLimiterManager(cfg config.APIKeyConfig) *RateLimiterManager {
	return &RateLimiterManager{
		limiters: make(map[limiterKey]*rate.Limiter),
		config:   cfg,
	}
}

// GetRateLimiterManagerInstance returns the process-wide RateLimiterManager.
// All CoinGecko clients share it so limits hold across operations.
func GetRateLimiterManagerInstance() *RateLimiterManager {
	managerOnce.Do(func() {
		globalManager = NewRateLimiterManager(config.APIKeyConfig{})
	})
	return globalManager
}

// SetConfig applies a new APIKeyConfig and rebuilds limiters for key types whose settings changed
func (m *RateLimiterManager) SetConfig(newCfg config.APIKeyConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldCfg := m.config
	m.config = newCfg

	changed := map[KeyType]bool{
		ProKey:  oldCfg.Pro != newCfg.Pro,
		DemoKey: oldCfg.Demo != newCfg.Demo,
		NoKey:   oldCfg.NoKey != newCfg.NoKey,
	}

	for k := range m.limiters {
		if changed[k.keyType] {
			m.limiters[k] = m.newLimiterLocked(k.keyType)
		}
	}
}

// GetLimiterForRequest inspects the key headers and host to pick a limiter.
// Requests to unrelated hosts without a key are not limited.
func (m *RateLimiterManager) GetLimiterForRequest(req *http.Request) *rate.Limiter {
	if m == nil || req == nil || req.URL == nil {
		return nil
	}

	if v := req.Header.Get(HeaderProAPIKey); v != "" {
		return m.getLimiter(limiterKey{keyType: ProKey, key: v})
	}
	if v := req.Header.Get(HeaderDemoAPIKey); v != "" {
		return m.getLimiter(limiterKey{keyType: DemoKey, key: v})
	}

	switch req.URL.Hostname() {
	case "api.coingecko.com", "pro-api.coingecko.com":
		return m.getLimiter(limiterKey{keyType: NoKey})
	}
	return nil
}

func (m *RateLimiterManager) getLimiter(k limiterKey) *rate.Limiter {
	m.mu.RLock()
	lim, ok := m.limiters[k]
	m.mu.RUnlock()
	if ok {
		return lim
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if lim, ok := m.limiters[k]; ok {
		return lim
	}
	lim = m.newLimiterLocked(k.keyType)
	m.limiters[k] = lim
	return lim
}

func (m *RateLimiterManager) settingsLocked(keyType KeyType) (config.RateLimit, int) {
	switch keyType {
	case ProKey:
		return m.config.Pro, defaultProRPM
	case DemoKey:
		return m.config.Demo, defaultDemoRPM
	default:
		return m.config.NoKey, defaultNoKeyRPM
	}
}

func (m *RateLimiterManager) newLimiterLocked(keyType KeyType) *rate.Limiter {
	settings, defaultRPM := m.settingsLocked(keyType)

	rpm := settings.RateLimitPerMinute
	if rpm <= 0 {
		rpm = defaultRPM
	}
	limit := rate.Limit(float64(rpm) / 60.0)

	burst := settings.Burst
	if burst <= 0 {
		burst = defaultBurstForLimit(limit)
	}
	return rate.NewLimiter(limit, burst)
}

func defaultBurstForLimit(limit rate.Limit) int {
	if limit <= 1.0 {
		return 1
	}
	return int(math.Ceil(float64(limit)))
}
