// Package tdameritrade provides a client for the TD Ameritrade price history API.
package tdameritrade

import (
	"os"
	"time"
)

// DefaultBaseURL is the market data root; the client appends /{ticker}/pricehistory.
const DefaultBaseURL = "https://api.tdameritrade.com/v1/marketdata"

// Config holds configuration for the TD Ameritrade client.
type Config struct {
	APIKey  string        // sent as the apikey query parameter
	BaseURL string        // e.g. "https://api.tdameritrade.com/v1/marketdata"
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads TD Ameritrade configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:  os.Getenv("TDA_API_KEY"),
		BaseURL: os.Getenv("TDA_BASE_URL"),
		Timeout: 30 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg
}
