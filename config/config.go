// Package config loads library configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"kakeibo/ledger"
)

type Config struct {
	// Database
	SQLiteDBPath string

	// Seed account used for first run and reset
	AccountName string

	// Projection cache
	CacheSize int
	CacheTTL  time.Duration
}

// Load reads configuration from the environment, falling back to
// defaults. A .env file in the working directory is honoured when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/kakeibo.db"),
		AccountName:  getEnv("DEFAULT_ACCOUNT_NAME", ledger.DefaultAccountName),
		CacheSize:    getEnvInt("PROJECTION_CACHE_SIZE", 16),
		CacheTTL:     getEnvDuration("PROJECTION_CACHE_TTL", 5*time.Minute),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errors []string

	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if strings.TrimSpace(c.AccountName) == "" {
		errors = append(errors, "default account name cannot be empty")
	}

	if c.CacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid projection cache size %d: must be at least 1", c.CacheSize))
	} else if c.CacheSize > 1024 {
		errors = append(errors, fmt.Sprintf("invalid projection cache size %d: must be at most 1024", c.CacheSize))
	}

	if c.CacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid projection cache TTL %v: must be at least 1 second", c.CacheTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
