// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// Fields are populated from environment variables.
type Config struct {
	// Server settings
	Port int    `env:"PORT" envDefault:"8080"`       // HTTP port to listen on
	Env  string `env:"ENV" envDefault:"development"` // development, staging, production

	// Database
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./data/paschalion.db"` // Path to SQLite file

	// Authentication
	APIKey string `env:"API_KEY"` // Guards endpoints that write to the database

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`  // debug, info, warn, error
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // json, text

	// Presentation
	DefaultLang string `env:"DEFAULT_LANG" envDefault:"en"` // en, el, ru

	// Limits
	MaxRangeDays  int `env:"MAX_RANGE_DAYS" envDefault:"90"`   // Longest echo range per request
	MaxTableYears int `env:"MAX_TABLE_YEARS" envDefault:"500"` // Longest paschalion table per request
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Load reads configuration from environment variables.
// In development, it first loads from .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	// This is a no-op in production where env vars are set directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
		// Valid
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH is required"))
	}

	// API key is required in production
	if c.Env == EnvProduction && c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required in production"))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "json", "text":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	switch c.DefaultLang {
	case "en", "el", "ru":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("DEFAULT_LANG must be one of: en, el, ru; got %q", c.DefaultLang))
	}

	if c.MaxRangeDays < 1 {
		errs = append(errs, fmt.Errorf("MAX_RANGE_DAYS must be positive, got %d", c.MaxRangeDays))
	}
	if c.MaxTableYears < 1 {
		errs = append(errs, fmt.Errorf("MAX_TABLE_YEARS must be positive, got %d", c.MaxTableYears))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}
