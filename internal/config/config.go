// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends selectable through DUNGEONCRAWL_STORE.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StoreYAML     = "yaml"
	StorePostgres = "postgres"
)

// Config holds process configuration options.
type Config struct {
	Addr           string        `env:"DUNGEONCRAWL_ADDR" envDefault:":5000"`
	Store          string        `env:"DUNGEONCRAWL_STORE" envDefault:"sqlite"`
	SQLitePath     string        `env:"DUNGEONCRAWL_SQLITE_PATH" envDefault:"dungeon.db"`
	SaveDir        string        `env:"DUNGEONCRAWL_SAVE_DIR" envDefault:".saves"`
	PostgresDSN    string        `env:"DUNGEONCRAWL_POSTGRES_DSN"`
	RequestTimeout time.Duration `env:"DUNGEONCRAWL_REQUEST_TIMEOUT" envDefault:"5s"`

	// Seed for the shared random source. A seed of 0 means a random seed
	// will be generated.
	Seed int64 `env:"DUNGEONCRAWL_SEED" envDefault:"0"`

	OTelEnabled  bool   `env:"DUNGEONCRAWL_OTEL_ENABLED" envDefault:"true"`
	OTelEndpoint string `env:"DUNGEONCRAWL_OTEL_ENDPOINT"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the process configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite, StoreYAML:
	case StorePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("DUNGEONCRAWL_POSTGRES_DSN is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store %q (want memory, sqlite, yaml or postgres)", c.Store)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
