package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/xraph/relay/errors"
	"github.com/xraph/relay/logger"
)

// Config is the host configuration: defaults, overlaid by an optional YAML
// file, overlaid by environment variables.
type Config struct {
	Logging   logger.LoggingConfig `yaml:"logging"`
	Owner     OwnerConfig          `yaml:"owner"`
	RateLimit RateLimitConfig      `yaml:"rate_limit"`
	Plugins   PluginsConfig        `yaml:"plugins"`
	HTTP      HTTPConfig           `yaml:"http"`
}

// OwnerConfig identifies the single user the bot answers to.
type OwnerConfig struct {
	UserID int64 `yaml:"user_id" env:"RELAY_OWNER_USER_ID"`
}

// RateLimitConfig configures the sliding-window limiter.
type RateLimitConfig struct {
	MaxPerWindow int           `yaml:"max_per_window" env:"RELAY_RATE_LIMIT_MAX"`
	Window       time.Duration `yaml:"window" env:"RELAY_RATE_LIMIT_WINDOW"`
	RedisAddr    string        `yaml:"redis_addr" env:"RELAY_RATE_LIMIT_REDIS_ADDR"`
}

// PluginsConfig configures plugin discovery.
type PluginsConfig struct {
	Dir      string   `yaml:"dir" env:"RELAY_PLUGINS_DIR"`
	Disabled []string `yaml:"disabled" env:"RELAY_PLUGINS_DISABLED" envSeparator:","`
}

// HTTPConfig configures the health/metrics endpoint.
type HTTPConfig struct {
	Addr string `yaml:"addr" env:"RELAY_HTTP_ADDR"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: logger.LoggingConfig{
			Level:       "info",
			Format:      "console",
			Environment: "development",
		},
		RateLimit: RateLimitConfig{
			MaxPerWindow: 20,
			Window:       time.Minute,
		},
		HTTP: HTTPConfig{
			Addr: ":8090",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is non-empty), and environment variables, in that order.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.ErrConfigError("reading config file "+path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.ErrConfigError("parsing config file "+path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.ErrConfigError("parsing environment", err)
	}

	return cfg, nil
}
