// Package config loads tock's TOML configuration and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/xolan/tock/internal/osutil"
)

// ConfigFile is the name of the TOML configuration file
const ConfigFile = "config.toml"

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendJSONL  = "jsonl"
)

// Environment variables that override file settings
const (
	EnvStorageBackend = "TOCK_STORAGE_BACKEND"
	EnvStoragePath    = "TOCK_STORAGE_PATH"
	EnvLogLevel       = "TOCK_LOG_LEVEL"
	EnvTimezone       = "TOCK_TIMEZONE"
)

// Config represents the application configuration
type Config struct {
	// Timezone is an IANA timezone name, or "Local" for the system timezone
	Timezone string `toml:"timezone"`
	// ManualEntryHour is the hour of day backdated manual entries start at
	ManualEntryHour int `toml:"manual_entry_hour"`

	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig selects where entries are kept.
type StorageConfig struct {
	// Backend is "sqlite" or "jsonl"
	Backend string `toml:"backend"`
	// Path is the database file (sqlite) or directory (jsonl).
	// Empty means the application directory.
	Path string `toml:"path"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
// Logging defaults to warn so command output stays clean.
func DefaultConfig() Config {
	return Config{
		Timezone:        "Local",
		ManualEntryHour: 9,
		Storage: StorageConfig{
			Backend: BackendSQLite,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// GetConfigPath returns the path to the config file.
// Creates the application directory if it doesn't exist.
func GetConfigPath() (string, error) {
	return osutil.AppPath(ConfigFile)
}

// Load reads the config file at path on top of the defaults.
// Returns an error if the file is missing, malformed or invalid.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file, or returns the defaults when it does not exist.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// Normalize lowercases enumerated values.
func (c *Config) Normalize() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

// Validate checks every setting.
func (c Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.ManualEntryHour < 0 || c.ManualEntryHour > 23 {
		return fmt.Errorf("invalid manual_entry_hour %d: must be between 0 and 23", c.ManualEntryHour)
	}
	switch c.Storage.Backend {
	case BackendSQLite, BackendJSONL:
	default:
		return fmt.Errorf("invalid storage backend %q: must be %q or %q", c.Storage.Backend, BackendSQLite, BackendJSONL)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be debug, info, warn or error", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be text or json", c.Log.Format)
	}
	return nil
}

// ApplyEnv overrides settings from environment variables looked up with getenv,
// then normalizes and validates the result.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvStorageBackend); v != "" {
		c.Storage.Backend = v
	}
	if v := getenv(EnvStoragePath); v != "" {
		c.Storage.Path = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := getenv(EnvTimezone); v != "" {
		c.Timezone = v
	}
	c.Normalize()
	return c.Validate()
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// StoragePath returns the configured storage location, defaulting to a
// backend-specific path inside the application directory.
func (c Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := osutil.AppDir()
	if err != nil {
		return "", err
	}
	if c.Storage.Backend == BackendJSONL {
		return filepath.Join(dir, "data"), nil
	}
	return filepath.Join(dir, "tock.db"), nil
}

// String renders the effective configuration as TOML.
func (c Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "# " + err.Error()
	}
	return b.String()
}
