// Package config loads the server configuration from a YAML file.
//
// Values of the form ${VAR} are expanded from the environment before parsing,
// so secrets such as the API key can stay out of the file.
package config

import "time"

// Config is the top-level server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Market   MarketConfig   `yaml:"market"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Symbols  []SymbolSeed   `yaml:"symbols"`
}

// ServerConfig configures the HTTP listener and logging.
type ServerConfig struct {
	Addr     string `yaml:"addr"`
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
}

// MarketConfig configures the price history API client.
type MarketConfig struct {
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`
	APIKeyFile string        `yaml:"api_key_file"`
	Timeout    time.Duration `yaml:"timeout"`
}

// DatabaseConfig configures the symbol catalogue store.
// An empty Host disables the catalogue.
type DatabaseConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	Name          string `yaml:"name"`
	User          string `yaml:"user"`
	Password      string `yaml:"password"`
	SSLMode       string `yaml:"sslmode"`
	RunMigrations bool   `yaml:"run_migrations"`
}

// Enabled reports whether a database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// RedisConfig configures the catalogue cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// SymbolSeed is a catalogue entry registered at startup.
type SymbolSeed struct {
	Code   string `yaml:"code"`
	Name   string `yaml:"name"`
	Market string `yaml:"market"`
}
