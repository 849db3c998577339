// Package config loads the canopy configuration file.
//
// Configuration lives in TOML at ~/.config/canopy/config.toml (or
// $XDG_CONFIG_HOME/canopy/config.toml) and is optional: a missing file
// yields the built-in defaults. Precedence is command-line flags > config
// file > built-ins; the CLI applies flag overrides after loading.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/canopy/pkg/errors"
	"github.com/matzehuels/canopy/pkg/layout"
)

// appName is used for the config and cache directory names.
const appName = "canopy"

// Config is the full configuration file shape.
type Config struct {
	Layout layout.Params `toml:"layout"`
	Cache  CacheConfig   `toml:"cache"`
	Viewer ViewerConfig  `toml:"viewer"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", "none".
	Backend string `toml:"backend"`

	// Dir overrides the file cache directory (default: XDG cache dir).
	Dir string `toml:"dir"`

	// RedisAddr is the host:port for the redis backend.
	RedisAddr string `toml:"redis_addr"`

	// RedisDB is the redis database number.
	RedisDB int `toml:"redis_db"`

	// TTLHours bounds entry lifetime; zero means no expiration.
	TTLHours int `toml:"ttl_hours"`
}

// ViewerConfig holds interactive viewer defaults.
type ViewerConfig struct {
	// Algorithm is the layout active on startup.
	Algorithm string `toml:"algorithm"`

	// TickIntervalMS is the force simulation timer cadence.
	TickIntervalMS int `toml:"tick_interval_ms"`

	// ResolveOverlap runs the overlap pass after each deterministic layout.
	ResolveOverlap bool `toml:"resolve_overlap"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: layout.DefaultParams(),
		Cache: CacheConfig{
			Backend:  "file",
			TTLHours: 24 * 7,
		},
		Viewer: ViewerConfig{
			Algorithm:      layout.AlgorithmTree,
			TickIntervalMS: 50,
			ResolveOverlap: true,
		},
	}
}

// Load reads the config file at path, decoded over the defaults so omitted
// keys keep their built-in values. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	return cfg, nil
}

// DefaultPath returns the standard config file location using XDG
// conventions.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the cache directory using XDG conventions
// (~/.cache/canopy/), unless overridden in the config.
func (c CacheConfig) CacheDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
