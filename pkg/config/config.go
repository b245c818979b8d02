package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
	Providers struct {
		StooqBaseURL     string        `yaml:"stooq_base_url" default:"https://stooq.com/q/d/l"`
		CoinGeckoBaseURL string        `yaml:"coingecko_base_url" default:"https://api.coingecko.com/api/v3"`
		CoinGeckoAPIKey  string        `yaml:"coingecko_api_key"`
		RequestTimeout   time.Duration `yaml:"request_timeout" default:"10s"`
		// DemoMode serves synthetic data only, no upstream calls.
		DemoMode bool `yaml:"demo_mode"`
	} `yaml:"providers"`
	Trend struct {
		Score float64 `yaml:"score" default:"60"`
	} `yaml:"trend"`
	Stream struct {
		Interval     time.Duration `yaml:"interval" default:"30s"`
		ClientBuffer int           `yaml:"client_buffer" default:"8"`
	} `yaml:"stream"`
	Cache struct {
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// Load reads a YAML configuration file, filling unset fields with
// defaults. A missing file is not an error: the defaults describe a
// fully working demo-capable setup.
func Load(path string) (*Config, error) {
	var c Config

	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from a .env file (if present), the YAML
// file, and environment variable overrides, in that order.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("MARKETPULSE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("MARKETPULSE_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		c.Providers.CoinGeckoAPIKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("TREND_SCORE"); v != "" {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("TREND_SCORE: %w", err)
		}
		c.Trend.Score = score
	}
	if v := os.Getenv("DEMO_MODE"); v != "" {
		demo, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("DEMO_MODE: %w", err)
		}
		c.Providers.DemoMode = demo
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Trend.Score < 0 || c.Trend.Score > 100 {
		return fmt.Errorf("trend.score must be in [0,100], got %v", c.Trend.Score)
	}
	if c.Stream.Interval <= 0 {
		return fmt.Errorf("stream.interval must be positive")
	}
	if !c.Providers.DemoMode {
		if c.Providers.StooqBaseURL == "" {
			return fmt.Errorf("providers.stooq_base_url is required")
		}
		if c.Providers.CoinGeckoBaseURL == "" {
			return fmt.Errorf("providers.coingecko_base_url is required")
		}
	}
	return nil
}
