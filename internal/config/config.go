package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the server configuration, loaded from BUDGET_* environment
// variables.
type Config struct {
	Port      string        `default:"8080"`
	DBPath    string        `split_words:"true" default:"budget.db"`
	JWTSecret string        `split_words:"true" required:"true"`
	LogLevel  string        `split_words:"true" default:"info"`
	TokenTTL  time.Duration `split_words:"true" default:"24h"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("BUDGET", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}
