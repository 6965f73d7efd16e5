package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"kakeibo/ledger"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.SQLiteDBPath != "./data/kakeibo.db" {
		t.Errorf("SQLiteDBPath = %q, want ./data/kakeibo.db", cfg.SQLiteDBPath)
	}
	if cfg.AccountName != ledger.DefaultAccountName {
		t.Errorf("AccountName = %q, want %q", cfg.AccountName, ledger.DefaultAccountName)
	}
	if cfg.CacheSize != 16 {
		t.Errorf("CacheSize = %d, want 16", cfg.CacheSize)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.CacheTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SQLITE_DB_PATH", "/tmp/other.db")
	t.Setenv("DEFAULT_ACCOUNT_NAME", "Wallet")
	t.Setenv("PROJECTION_CACHE_SIZE", "4")
	t.Setenv("PROJECTION_CACHE_TTL", "30s")

	cfg := Load()

	if cfg.SQLiteDBPath != "/tmp/other.db" {
		t.Errorf("SQLiteDBPath = %q, want /tmp/other.db", cfg.SQLiteDBPath)
	}
	if cfg.AccountName != "Wallet" {
		t.Errorf("AccountName = %q, want Wallet", cfg.AccountName)
	}
	if cfg.CacheSize != 4 {
		t.Errorf("CacheSize = %d, want 4", cfg.CacheSize)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, want 30s", cfg.CacheTTL)
	}
}

func TestLoad_IgnoresUnparseableValues(t *testing.T) {
	t.Setenv("PROJECTION_CACHE_SIZE", "many")
	t.Setenv("PROJECTION_CACHE_TTL", "soon")

	cfg := Load()

	if cfg.CacheSize != 16 {
		t.Errorf("CacheSize = %d, want default 16", cfg.CacheSize)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want default 5m", cfg.CacheTTL)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			SQLiteDBPath: filepath.Join(t.TempDir(), "kakeibo.db"),
			AccountName:  "Wallet",
			CacheSize:    16,
			CacheTTL:     time.Minute,
		}
	}

	tests := []struct {
		name     string
		mutate   func(*Config)
		wantErr  bool
		errHints []string
	}{
		{"valid", func(c *Config) {}, false, nil},
		{
			"empty db path",
			func(c *Config) { c.SQLiteDBPath = "" },
			true,
			[]string{"database path"},
		},
		{
			"blank account name",
			func(c *Config) { c.AccountName = "   " },
			true,
			[]string{"account name"},
		},
		{
			"cache size too small",
			func(c *Config) { c.CacheSize = 0 },
			true,
			[]string{"cache size"},
		},
		{
			"cache size too large",
			func(c *Config) { c.CacheSize = 4096 },
			true,
			[]string{"cache size"},
		},
		{
			"cache TTL too short",
			func(c *Config) { c.CacheTTL = 50 * time.Millisecond },
			true,
			[]string{"cache TTL"},
		},
		{
			"multiple problems reported together",
			func(c *Config) {
				c.AccountName = ""
				c.CacheSize = 0
			},
			true,
			[]string{"account name", "cache size"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, hint := range tt.errHints {
				if !strings.Contains(err.Error(), hint) {
					t.Errorf("Validate() error %q does not mention %q", err, hint)
				}
			}
		})
	}
}
