package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RateLimitConfig struct {
	Capacity int           `mapstructure:"capacity"`
	Window   time.Duration `mapstructure:"window"`
}

type StorageConfig struct {
	Driver     string `mapstructure:"driver"` // memory | sqlite
	SQLitePath string `mapstructure:"sqlite_path"`
}

type CacheConfig struct {
	Driver         string        `mapstructure:"driver"` // memory | redis
	RedisAddr      string        `mapstructure:"redis_addr"`
	TTL            time.Duration `mapstructure:"ttl"`
	ConnectRetries int           `mapstructure:"connect_retries"`
}

type LogConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"

	envPrefix = "EMI"
)

var defaults = map[string]interface{}{
	"server.addr":             ":8080",
	"server.read_timeout":     15 * time.Second,
	"server.write_timeout":    15 * time.Second,
	"server.idle_timeout":     60 * time.Second,
	"server.shutdown_timeout": 10 * time.Second,
	"rate_limit.capacity":     5,
	"rate_limit.window":       time.Minute,
	"storage.driver":          DriverMemory,
	"storage.sqlite_path":     "./data/calculations.db",
	"cache.driver":            DriverMemory,
	"cache.redis_addr":        "localhost:6379",
	"cache.ttl":               24 * time.Hour,
	"cache.connect_retries":   5,
	"log.development":         false,
	"log.level":               "",
}

// Load reads configuration from path (any format viper understands) layered
// over defaults, then applies EMI_* environment overrides such as
// EMI_SERVER_ADDR. An empty path uses defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, validate(&cfg)
}

func validate(cfg *Config) error {
	if cfg.Server.Addr == "" {
		return errors.New("server.addr is empty")
	}
	if cfg.Server.ReadTimeout <= 0 || cfg.Server.WriteTimeout <= 0 || cfg.Server.IdleTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return errors.New("invalid server.shutdown_timeout")
	}
	if cfg.RateLimit.Capacity <= 0 {
		return errors.New("invalid rate_limit.capacity")
	}
	if cfg.RateLimit.Window <= 0 {
		return errors.New("invalid rate_limit.window")
	}

	switch cfg.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if cfg.Storage.SQLitePath == "" {
			return errors.New("storage.sqlite_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", cfg.Storage.Driver)
	}

	switch cfg.Cache.Driver {
	case DriverMemory:
	case DriverRedis:
		if cfg.Cache.RedisAddr == "" {
			return errors.New("cache.redis_addr is required for the redis driver")
		}
		if cfg.Cache.ConnectRetries < 1 {
			return errors.New("invalid cache.connect_retries")
		}
	default:
		return fmt.Errorf("unknown cache.driver %q", cfg.Cache.Driver)
	}
	if cfg.Cache.TTL < 0 {
		return errors.New("invalid cache.ttl")
	}

	return nil
}
