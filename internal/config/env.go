package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const envPrefix = "TASKMANAGER_"

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) error {
	strs := map[string]*string{
		"HTTP_PORT":         &cfg.HTTPPort,
		"TIMEZONE":          &cfg.Timezone,
		"LOG_LEVEL":         &cfg.Log.Level,
		"LOG_FORMAT":        &cfg.Log.Format,
		"STORE_DRIVER":      &cfg.Store.Driver,
		"STORE_DSN":         &cfg.Store.DSN,
		"EVENTS_BACKEND":    &cfg.Events.Backend,
		"EVENTS_REDIS_ADDR": &cfg.Events.RedisAddr,
		"EVENTS_QUEUE":      &cfg.Events.Queue,
	}
	for key, dst := range strs {
		if v := os.Getenv(envPrefix + key); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"EVENTS_WORKERS":   &cfg.Events.Workers,
		"EVENTS_POOL_SIZE": &cfg.Events.PoolSize,
	}
	for key, dst := range ints {
		if v := os.Getenv(envPrefix + key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, key, err)
			}
			*dst = n
		}
	}

	if v := os.Getenv(envPrefix + "DEFAULT_USER_ID"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sDEFAULT_USER_ID: %w", envPrefix, err)
		}
		cfg.DefaultUserID = n
	}

	if v := os.Getenv(envPrefix + "SEED_CATEGORIES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSEED_CATEGORIES: %w", envPrefix, err)
		}
		cfg.SeedCategories = b
	}

	if v := os.Getenv(envPrefix + "SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sSHUTDOWN_TIMEOUT: %w", envPrefix, err)
		}
		cfg.ShutdownTimeout = d
	}

	return nil
}
