// Package config loads service configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable overrides. Each, when set, takes precedence over the
// config file value.
const (
	EnvAddr      = "COURIER_ADDR"
	EnvRedisAddr = "COURIER_REDIS_ADDR"
	EnvLogLevel  = "COURIER_LOG_LEVEL"
)

// Config is the root configuration for the courier service.
type Config struct {
	// Addr is the HTTP listen address for serve mode.
	Addr string `yaml:"addr"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// ShutdownTimeout bounds graceful HTTP shutdown (Go duration string).
	ShutdownTimeout string `yaml:"shutdown_timeout"`

	// Redis configures the outcome archive. An empty Addr selects the
	// in-memory store.
	Redis RedisConfig `yaml:"redis"`

	// UnflaggedFallback lets runs proceed as "not flagged" when the
	// classifier is unreachable.
	UnflaggedFallback bool `yaml:"unflagged_fallback"`
}

// RedisConfig holds the outcome archive connection parameters.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`

	// TTL expires archived outcomes (Go duration string). Empty keeps
	// them indefinitely.
	TTL string `yaml:"ttl"`
}

// TTLDuration returns TTL as a time.Duration, zero when unset.
func (c *RedisConfig) TTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TTL)
	return d
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:            ":8080",
		LogLevel:        "info",
		ShutdownTimeout: "10s",
	}
}

// Load reads the config file at path (optional: an empty path or a missing
// file yields defaults), applies env overrides, and validates.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: addr must not be empty")
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	if c.Redis.TTL != "" {
		if _, err := time.ParseDuration(c.Redis.TTL); err != nil {
			return fmt.Errorf("config: invalid redis ttl: %w", err)
		}
	}
	return nil
}
