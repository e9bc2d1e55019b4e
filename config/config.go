package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	Fetch   FetchConfig
	Search  SearchConfig
	Auth    AuthConfig
}

// ServerConfig holds HTTP API server configuration
type ServerConfig struct {
	Port         string `env:"PORT" envDefault:"8080"`
	HTTPBindAddr string `env:"HTTP_BIND_ADDR" envDefault:""`
	Environment  string `env:"ENVIRONMENT" envDefault:"development"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// FetchConfig holds the HTTP client configuration used for upstream requests
type FetchConfig struct {
	Proxy    string        `env:"FETCH_PROXY" envDefault:""`
	Timeout  time.Duration `env:"FETCH_TIMEOUT" envDefault:"30s"`
	RetryMax int           `env:"FETCH_RETRY_MAX" envDefault:"3"`
}

// SearchConfig holds defaults applied to search requests that leave the
// locale fields empty
type SearchConfig struct {
	DefaultLang     string `env:"SEARCH_DEFAULT_LANG" envDefault:""`
	DefaultCurrency string `env:"SEARCH_DEFAULT_CURRENCY" envDefault:""`
}

// AuthConfig holds API authentication configuration
type AuthConfig struct {
	Enabled bool   `env:"API_AUTH_ENABLED" envDefault:"false"`
	Token   string `env:"API_AUTH_TOKEN" envDefault:""`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects values that would otherwise be silently coerced to a
// default downstream
func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", c.Logging.Format)
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.Fetch.Timeout)
	}
	if c.Fetch.RetryMax < 0 {
		return fmt.Errorf("FETCH_RETRY_MAX cannot be negative, got %d", c.Fetch.RetryMax)
	}
	return nil
}

// TestConfig returns a default test configuration
func TestConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8080", Environment: "test"},
		Logging: LoggingConfig{Level: "debug", Format: "text"},
		Fetch:   FetchConfig{Timeout: 30 * time.Second, RetryMax: 3},
	}
}
