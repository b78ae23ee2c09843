package config

import (
	"errors"
	"fmt"
	"time"
)

// Token store kinds understood by the client.
const (
	StoreMemory  = "memory"
	StoreSQLite  = "sqlite"
	StoreKeyring = "keyring"
)

// Config holds runtime settings for the directory admin CLI.
//
// Fields:
//   - BaseURL: root of the directory REST API, without trailing slash.
//   - APIKey: optional value for the x-api-key header.
//   - RequestTimeout: per-request HTTP timeout; zero disables it.
//   - TokenStore: where the session token lives (memory, sqlite, keyring).
//   - DatabasePath: sqlite file used by the sqlite token store.
//   - HistoryFile: readline history; empty disables history.
//   - LogLevel: diagnostic log level written to stderr.
type Config struct {
	BaseURL        string
	APIKey         string
	RequestTimeout time.Duration
	TokenStore     string
	DatabasePath   string
	HistoryFile    string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://reqres.in/api"
	c.APIKey = ""
	c.RequestTimeout = 10 * time.Second
	c.TokenStore = StoreMemory
	c.DatabasePath = "diradmin.db"
	c.HistoryFile = ""
	c.LogLevel = "warn"
}

// Validate reports settings the client cannot start with.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base url is required")
	}
	switch c.TokenStore {
	case StoreMemory, StoreKeyring:
	case StoreSQLite:
		if c.DatabasePath == "" {
			return errors.New("database path is required for the sqlite token store")
		}
	default:
		return fmt.Errorf("unknown token store %q", c.TokenStore)
	}
	if c.RequestTimeout < 0 {
		return errors.New("request timeout must not be negative")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
