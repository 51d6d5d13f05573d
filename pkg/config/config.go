package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	xutil "AXRadar/pkg/util"
)

// DefaultRefreshIntervalMS is used when the configured interval is absent or invalid.
const DefaultRefreshIntervalMS = 30000

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Metrics struct {
		Path string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Logging struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=json console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
	Upstream struct {
		BaseURL    string        `yaml:"base_url" default:"http://localhost:5000" validate:"required,url"`
		Timeout    time.Duration `yaml:"timeout" default:"10s"`
		Retries    *int          `yaml:"retries" default:"1" validate:"required,gte=0"`
		RetryDelay time.Duration `yaml:"retry_delay" default:"1s"`
	} `yaml:"upstream"`
	Poll struct {
		// RefreshIntervalMS is the recurring refresh period in milliseconds.
		// Missing, non-positive or malformed values mean DefaultRefreshIntervalMS.
		RefreshIntervalMS string `yaml:"refresh_interval_ms"`
	} `yaml:"poll"`
	Cache struct {
		Backend string `yaml:"backend" default:"memory" validate:"oneof=memory redis"`
		Redis   struct {
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"axradar"`
			PoolSize int    `yaml:"pool_size" default:"4" validate:"gte=1"`
			MinIdle  int    `yaml:"min_idle" default:"1" validate:"gte=0"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	StockDetail struct {
		Burst        float64 `yaml:"burst" default:"10"`
		RefillPerSec float64 `yaml:"refill_per_sec" default:"2"`
	} `yaml:"stock_detail"`
}

var validate = validator.New()

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes, applies defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// A .env file in the working directory is loaded first when present.
func LoadWithEnv(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.ApplyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// ApplyEnv overrides fields from the process environment.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv("REFRESH_INTERVAL"); ok {
		c.Poll.RefreshIntervalMS = v
	}
	if v := os.Getenv("AXRADAR_UPSTREAM_URL"); v != "" {
		c.Upstream.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("AXRADAR_CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

// RefreshInterval returns the recurring refresh period.
func (c *Config) RefreshInterval() time.Duration {
	ms := xutil.ParseIntDefault(strings.TrimSpace(c.Poll.RefreshIntervalMS), DefaultRefreshIntervalMS)
	if ms <= 0 {
		ms = DefaultRefreshIntervalMS
	}
	return time.Duration(ms) * time.Millisecond
}

// RetryCount returns the per-fetch retry bound.
func (c *Config) RetryCount() int {
	if c.Upstream.Retries == nil {
		return 1
	}
	return *c.Upstream.Retries
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Upstream.RetryDelay < 0 {
		return fmt.Errorf("upstream.retry_delay must not be negative, got %s", c.Upstream.RetryDelay)
	}
	return nil
}
