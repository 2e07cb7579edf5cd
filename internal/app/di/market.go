// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"

	"pricehistory/internal/feature/pricehistory/adapters/tdameritrade"
	"pricehistory/internal/platform/config"
	"pricehistory/internal/platform/credentials"
	infrahttp "pricehistory/internal/platform/http"
)

// MarketConfig resolves the API key and merges the config file section over
// the TDA_* environment defaults. The explicit key wins over the key file;
// the environment is used only when neither is set.
func MarketConfig(mc config.MarketConfig) (tdameritrade.Config, error) {
	cfg := tdameritrade.LoadConfig()
	if mc.BaseURL != "" {
		cfg.BaseURL = mc.BaseURL
	}
	if mc.Timeout > 0 {
		cfg.Timeout = mc.Timeout
	}

	if mc.APIKey != "" || mc.APIKeyFile != "" {
		key, err := credentials.Resolve(mc.APIKey, mc.APIKeyFile)
		if err != nil {
			return tdameritrade.Config{}, fmt.Errorf("resolve market api key: %w", err)
		}
		cfg.APIKey = key
	}
	if cfg.APIKey == "" {
		return tdameritrade.Config{}, credentials.ErrEmptyAPIKey
	}
	return cfg, nil
}

// NewMarket creates a fully configured TD Ameritrade Market with HTTP client.
func NewMarket(mc config.MarketConfig) (*tdameritrade.Market, error) {
	cfg, err := MarketConfig(mc)
	if err != nil {
		return nil, err
	}
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return tdameritrade.NewMarket(cfg, httpClient), nil
}
