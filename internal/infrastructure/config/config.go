// Package config loads application settings from the environment.
//
// Variables use the TXM_ prefix and dot-delimited nesting, so
// TXM_SERVER.ADDR maps to Config.Server.Addr. A .env file, when present,
// is loaded into the process environment first.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "TXM_"

// Config is the root configuration object for the application.
type Config struct {
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig groups settings for the HTTP server runtime.
type ServerConfig struct {
	Addr string `koanf:"addr" validate:"required"`
}

// DatabaseConfig holds the BadgerDB location. InMemory skips the on-disk
// store entirely, which is what tests and ephemeral runs use.
type DatabaseConfig struct {
	Dir      string `koanf:"dir"`
	InMemory bool   `koanf:"in_memory"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error fatal"`
}

// Load reads the environment into a validated Config, applying defaults
// for anything not set.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Database.Dir == "" {
		cfg.Database.Dir = "data"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
