// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration
type Config struct {
	HTTPAddr        string        `env:"USERBOOK_HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GRPCAddr        string        `env:"USERBOOK_GRPC_ADDR" envDefault:"0.0.0.0:5050"`
	LogLevel        string        `env:"USERBOOK_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"USERBOOK_LOG_FORMAT" envDefault:"console"`
	ReadTimeout     time.Duration `env:"USERBOOK_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"USERBOOK_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"USERBOOK_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"USERBOOK_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	Seed            int           `env:"USERBOOK_SEED" envDefault:"0"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the configuration from the given variables instead of the
// process environment.
func LoadFrom(environment map[string]string) (Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (cfg Config) Validate() error {
	var errs []error

	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		errs = append(errs, errors.New("http address is required"))
	}
	if strings.TrimSpace(cfg.GRPCAddr) == "" {
		errs = append(errs, errors.New("grpc address is required"))
	}
	timeouts := []struct {
		name  string
		value time.Duration
	}{
		{"read timeout", cfg.ReadTimeout},
		{"write timeout", cfg.WriteTimeout},
		{"idle timeout", cfg.IdleTimeout},
		{"shutdown timeout", cfg.ShutdownTimeout},
	}
	for _, timeout := range timeouts {
		if timeout.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", timeout.name))
		}
	}
	if cfg.Seed < 0 {
		errs = append(errs, errors.New("seed must not be negative"))
	}

	return errors.Join(errs...)
}
