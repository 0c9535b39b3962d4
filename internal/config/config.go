// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mcoot/numberguess/internal/model"
)

// Config is the server configuration
type Config struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"data/numberguess.db"`

	SessionDuration time.Duration `env:"SESSION_DURATION" envDefault:"24h"`
	DefaultMinRange int           `env:"DEFAULT_MIN_RANGE" envDefault:"1"`
	DefaultMaxRange int           `env:"DEFAULT_MAX_RANGE" envDefault:"100"`
	LeaderboardSize int           `env:"LEADERBOARD_SIZE" envDefault:"10"`
}

// Load reads an optional .env file, then the environment
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	// Missing .env files are fine; real environment variables win
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env parsing cannot
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.StorageType {
	case "memory", "redis", "sqlite":
	default:
		return fmt.Errorf("unknown STORAGE_TYPE %q", c.StorageType)
	}
	if c.SessionDuration <= 0 {
		return errors.New("SESSION_DURATION must be positive")
	}
	if c.LeaderboardSize <= 0 {
		return errors.New("LEADERBOARD_SIZE must be positive")
	}
	if err := model.ValidateSettings(c.DefaultMinRange, c.DefaultMaxRange); err != nil {
		return fmt.Errorf("default range: %w", err)
	}
	return nil
}

// DefaultSettings returns the range new sessions start with
func (c Config) DefaultSettings() model.Settings {
	return model.Settings{MinRange: c.DefaultMinRange, MaxRange: c.DefaultMaxRange}
}

// SlogLevel parses LogLevel
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	return level, nil
}
