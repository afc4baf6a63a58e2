// Package config loads and validates archiver configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all archiver configuration knobs loaded via Viper.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Crawl    CrawlConfig    `mapstructure:"crawl"`
	Retry    RetryConfig    `mapstructure:"retry"`
	API      APIConfig      `mapstructure:"api"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DatabaseConfig locates the SQLite database and its schema file.
type DatabaseConfig struct {
	Location string `mapstructure:"location"`
	Schema   string `mapstructure:"schema"`
}

// CrawlConfig governs per-blog crawl behavior.
type CrawlConfig struct {
	// Concurrency bounds simultaneous blog crawls; 0 means one goroutine
	// per requested blog.
	Concurrency int `mapstructure:"concurrency"`
	// ExactTotals stops pagination at total_posts instead of the
	// historical total_posts-1 bound.
	ExactTotals bool `mapstructure:"exact_totals"`
}

// RetryConfig controls rate-limit backoff.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	BaseDelay   time.Duration `mapstructure:"base_delay"`
}

// APIConfig points at the tumblr API.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Key     string        `mapstructure:"key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// MetricsConfig controls the Prometheus listener. An empty address
// disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TUMBLR_ARCHIVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// The previous archiver tooling configured its database via a bare
	// DATABASE_LOCATION variable; keep honoring it.
	if err := v.BindEnv("database.location", "TUMBLR_ARCHIVER_DATABASE_LOCATION", "DATABASE_LOCATION"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.location", "posts.sqlite")
	v.SetDefault("database.schema", "schema.sql")
	v.SetDefault("crawl.concurrency", 0)
	v.SetDefault("crawl.exact_totals", false)
	v.SetDefault("retry.max_attempts", 10)
	v.SetDefault("retry.base_delay", 20*time.Second)
	v.SetDefault("api.base_url", "https://api.tumblr.com")
	v.SetDefault("api.key", "")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("metrics.addr", "")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Database.Location == "" {
		return fmt.Errorf("database.location must be set")
	}
	if c.Crawl.Concurrency < 0 {
		return fmt.Errorf("crawl.concurrency must be >= 0")
	}
	if c.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("retry.max_attempts must be > 0")
	}
	if c.Retry.BaseDelay <= 0 {
		return fmt.Errorf("retry.base_delay must be > 0")
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must be set")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be > 0")
	}
	return nil
}
