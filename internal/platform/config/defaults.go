package config

import "time"

const (
	defaultAddr       = ":8080"
	defaultLogLevel   = "info"
	defaultTimeout    = 30 * time.Second
	defaultDBPort     = 5432
	defaultSSLMode    = "disable"
	defaultCatalogTTL = 10 * time.Minute
)

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = defaultLogLevel
	}
	if c.Market.Timeout == 0 {
		c.Market.Timeout = defaultTimeout
	}
	if c.Database.Port == 0 {
		c.Database.Port = defaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = defaultSSLMode
	}
	if c.Redis.TTL == 0 {
		c.Redis.TTL = defaultCatalogTTL
	}
}
