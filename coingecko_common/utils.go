package coingecko_common

import (
	"github.com/status-im/market-assistant/config"
)

// GetApiBaseUrl returns the API base URL for the key type, honoring overrides
func GetApiBaseUrl(cfg config.CoinGeckoConfig, keyType KeyType) string {
	if keyType == ProKey {
		if cfg.OverrideProURL != "" {
			return cfg.OverrideProURL
		}
		return COINGECKO_PRO_URL
	}
	if cfg.OverridePublicURL != "" {
		return cfg.OverridePublicURL
	}
	return COINGECKO_PUBLIC_URL
}
