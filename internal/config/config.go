// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every setting read by the server and the CLI.
type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL"`
	Port        int    `envconfig:"PORT" default:"8080"`

	OpenAIAPIKey            string  `envconfig:"OPENAI_API_KEY"`
	OpenAIModel             string  `envconfig:"OPENAI_MODEL" default:"gpt-3.5-turbo"`
	OpenAIBaseURL           string  `envconfig:"OPENAI_BASE_URL"`
	OpenAIRequestsPerMinute int     `envconfig:"OPENAI_REQUESTS_PER_MINUTE" default:"0"`
	DefaultTemperature      float64 `envconfig:"DEFAULT_TEMPERATURE" default:"0.3"`

	NotifyChannel   string `envconfig:"NOTIFY_CHANNEL" default:"simplifications"`
	HistoryPageSize int    `envconfig:"HISTORY_PAGE_SIZE" default:"50"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
}

// Load reads a .env file when one is present and then processes the
// environment.  Variables already set take precedence over the file.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot work at all.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.DefaultTemperature < 0 || c.DefaultTemperature > 2 {
		return fmt.Errorf("DEFAULT_TEMPERATURE must be within [0, 2], got %v", c.DefaultTemperature)
	}
	if c.OpenAIRequestsPerMinute < 0 {
		return errors.New("OPENAI_REQUESTS_PER_MINUTE must not be negative")
	}
	if c.HistoryPageSize <= 0 {
		return errors.New("HISTORY_PAGE_SIZE must be positive")
	}
	return nil
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
