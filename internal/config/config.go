package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

const DefaultFile = "taskmanager.toml"

type Config struct {
	HTTPPort        string        `toml:"http_port"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`

	// Timezone is the IANA zone used to decide what "today" is.
	Timezone       string `toml:"timezone"`
	DefaultUserID  int64  `toml:"default_user_id"`
	SeedCategories bool   `toml:"seed_categories"`

	Log    Log    `toml:"log"`
	Store  Store  `toml:"store"`
	Events Events `toml:"events"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text, json or logfmt
}

type Store struct {
	Driver string `toml:"driver"` // memory or sqlite
	DSN    string `toml:"dsn"`
}

type Events struct {
	Backend   string `toml:"backend"` // memory or redis
	Workers   int    `toml:"workers"`
	PoolSize  int    `toml:"pool_size"`
	RedisAddr string `toml:"redis_addr"`
	Queue     string `toml:"queue"`
}

func New() Config {
	return Config{
		HTTPPort:        ":8080",
		ShutdownTimeout: time.Second * 10,
		Timezone:        "UTC",
		DefaultUserID:   1,
		SeedCategories:  true,
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Store: Store{
			Driver: "memory",
			DSN:    "file:taskmanager.db?_pragma=foreign_keys(1)",
		},
		Events: Events{
			Backend:   "memory",
			Workers:   2,
			PoolSize:  100,
			RedisAddr: "127.0.0.1:6379",
			Queue:     "default",
		},
	}
}

// Load builds the configuration from defaults, then the TOML file at path,
// then TASKMANAGER_* environment variables. An empty path falls back to
// DefaultFile when it exists.
func Load(path string) (Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	if _, err := os.Stat(path); err == nil {
		if err := loadFile(&cfg, path); err != nil {
			return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else if explicit {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}

	if err := loadFromEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys: %v", undecoded)
	}
	return nil
}

var ErrInvalidConfig = errors.New("invalid config")

func (c Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("%w: http_port is empty", ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown_timeout must be positive", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	if c.DefaultUserID <= 0 {
		return fmt.Errorf("%w: default_user_id must be positive", ErrInvalidConfig)
	}

	switch c.Store.Driver {
	case "memory":
	case "sqlite":
		if c.Store.DSN == "" {
			return fmt.Errorf("%w: store.dsn is required for sqlite", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store.driver %q", ErrInvalidConfig, c.Store.Driver)
	}

	switch c.Events.Backend {
	case "memory":
		if c.Events.PoolSize <= 0 {
			return fmt.Errorf("%w: events.pool_size must be positive", ErrInvalidConfig)
		}
		if c.Events.Workers < 0 {
			return fmt.Errorf("%w: events.workers must not be negative", ErrInvalidConfig)
		}
	case "redis":
		if c.Events.RedisAddr == "" {
			return fmt.Errorf("%w: events.redis_addr is required for redis", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown events.backend %q", ErrInvalidConfig, c.Events.Backend)
	}

	return nil
}

func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}
