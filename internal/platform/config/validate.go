package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Server.LogLevel); err != nil {
		return err
	}

	// 空の場合は TDA_BASE_URL または既定のエンドポイントが使われる
	if c.Market.BaseURL != "" {
		u, err := url.Parse(c.Market.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("market.base_url must be an absolute URL, got %q", c.Market.BaseURL)
		}
	}
	if c.Market.Timeout < 0 {
		return errors.New("market.timeout must be >= 0")
	}

	if c.Database.Enabled() {
		if c.Database.Name == "" {
			return errors.New("database.name is required")
		}
		if c.Database.User == "" {
			return errors.New("database.user is required")
		}
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return fmt.Errorf("database.port must be between 1 and 65535, got %d", c.Database.Port)
		}
	}

	if c.Redis.TTL < 0 {
		return errors.New("redis.ttl must be >= 0")
	}

	for i, s := range c.Symbols {
		if s.Code == "" {
			return fmt.Errorf("symbols[%d].code is required", i)
		}
	}
	return nil
}

// ParseLevel maps a config log level onto slog.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("server.log_level %q is not one of debug, info, warn, error", s)
}
