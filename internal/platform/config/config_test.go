package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  addr: ":9090"
  log_level: debug
market:
  api_key: ${TEST_TDA_API_KEY}
  timeout: 5s
database:
  host: localhost
  name: pricehistory
  user: app
  password: ${TEST_DB_PASSWORD}
redis:
  addr: localhost:6379
  ttl: 1m
symbols:
  - code: TSLA
    name: Tesla Inc
    market: NASDAQ
  - code: AAPL
    name: Apple Inc
    market: NASDAQ
`

// TestLoadAndValidate は環境変数の展開とデフォルト値の適用を検証します。
func TestLoadAndValidate(t *testing.T) {
	t.Setenv("TEST_TDA_API_KEY", "secret-key")
	t.Setenv("TEST_DB_PASSWORD", "pw")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	cfg, err := LoadAndValidate(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "secret-key", cfg.Market.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Market.Timeout)
	assert.Empty(t, cfg.Market.BaseURL, "base url default belongs to the market client")
	assert.Equal(t, "pw", cfg.Database.Password)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, time.Minute, cfg.Redis.TTL)
	require.Len(t, cfg.Symbols, 2)
	assert.Equal(t, "TSLA", cfg.Symbols[0].Code)
}

func TestLoadAndValidate_EmptyPathUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadAndValidate("")
	require.NoError(t, err)

	assert.Equal(t, defaultAddr, cfg.Server.Addr)
	assert.Equal(t, defaultTimeout, cfg.Market.Timeout)
	assert.False(t, cfg.Database.Enabled())
	assert.Equal(t, defaultCatalogTTL, cfg.Redis.TTL)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config file")

	_, err = Parse([]byte("server: [unterminated"))
	assert.ErrorContains(t, err, "parse config yaml")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad log level", func(c *Config) { c.Server.LogLevel = "verbose" }, "server.log_level"},
		{"relative base url", func(c *Config) { c.Market.BaseURL = "/marketdata" }, "market.base_url"},
		{"absolute base url", func(c *Config) { c.Market.BaseURL = "http://localhost:9999/v1/marketdata" }, ""},
		{"negative timeout", func(c *Config) { c.Market.Timeout = -time.Second }, "market.timeout"},
		{"db without name", func(c *Config) { c.Database.Host = "db"; c.Database.User = "u" }, "database.name"},
		{"db without user", func(c *Config) { c.Database.Host = "db"; c.Database.Name = "n" }, "database.user"},
		{"db bad port", func(c *Config) {
			c.Database = DatabaseConfig{Host: "db", Name: "n", User: "u", Port: 70000}
		}, "database.port"},
		{"symbol without code", func(c *Config) { c.Symbols = []SymbolSeed{{Name: "x"}} }, "symbols[0].code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &Config{}
			cfg.applyDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)

	_, err = ParseLevel("trace")
	assert.Error(t, err)
}
