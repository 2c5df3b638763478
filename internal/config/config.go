// Package config reads the server configuration from the environment and
// command-line flags.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
)

type Config struct {
	Host         string        `env:"HOST" envDefault:"localhost"`
	Port         uint          `env:"PORT" envDefault:"3000"`
	InvoicesURL  string        `env:"INVOICES_URL" envDefault:"https://takehome.api.bidsight.io/v2/invoices"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	Development  bool          `env:"DEV" envDefault:"false"`
}

// Parse reads the configuration from environment variables.
func Parse() (*Config, error) {
	return parse(env.ToMap(os.Environ()))
}

func parse(environ map[string]string) (*Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	cfg := &Config{}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// BindFlags registers flags defaulting to the current values, so a flag
// given on the command line wins over the environment.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Host, "host", c.Host, "address to listen on")
	fs.UintVarP(&c.Port, "port", "p", c.Port, "port to listen on")
	fs.StringVar(&c.InvoicesURL, "invoices-url", c.InvoicesURL, "invoice API endpoint")
	fs.DurationVar(&c.FetchTimeout, "fetch-timeout", c.FetchTimeout, "timeout of the invoice API request")
	fs.DurationVar(&c.SessionTTL, "session-ttl", c.SessionTTL, "idle time after which an editing session is dropped")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&c.Development, "dev", c.Development, "human readable logs")
}

// Validate checks values that flags may have changed after Parse.
func (c *Config) Validate() error {
	return c.validate()
}

func (c *Config) validate() error {
	if c.Port == 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.InvoicesURL == "" {
		return fmt.Errorf("INVOICES_URL is required")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", c.FetchTimeout)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL)
	}
	return nil
}
