// Package config loads Slatedeck host configuration from a TOML file.
//
// Configuration covers the outer surfaces only (server address, storage
// backend, cache backend, authoring limits). The layout engine itself
// takes no configuration; grid dimensions travel with each slide.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Default values applied when a config file omits a field or no file
// is given at all.
const (
	DefaultListenAddr = ":8080"
	DefaultStore      = "memory"
	DefaultCache      = "none"
	DefaultMaxRows    = 5
	DefaultMaxColumns = 5
	DefaultCacheTTL   = 24 * time.Hour
)

// Config is the root configuration for the CLI and API hosts.
type Config struct {
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
	Grid   GridConfig   `toml:"grid"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	// ListenAddr is the address the API server binds to.
	ListenAddr string `toml:"listen_addr"`
}

// StoreConfig selects and configures the deck storage backend.
type StoreConfig struct {
	// Backend is one of "memory", "file", or "mongo".
	Backend string `toml:"backend"`

	// Dir is the document directory for the file backend.
	Dir string `toml:"dir"`

	// URI is the connection string for the mongo backend.
	URI string `toml:"uri"`

	// Database and Collection override the mongo defaults.
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// CacheConfig selects and configures the derived-artifact cache.
type CacheConfig struct {
	// Backend is one of "none", "file", or "redis".
	Backend string `toml:"backend"`

	// Dir is the cache directory for the file backend.
	Dir string `toml:"dir"`

	// Addr, Password, and DB configure the redis backend.
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`

	// TTL is the entry lifetime. Zero means DefaultCacheTTL;
	// negative means no expiration.
	TTL time.Duration `toml:"ttl"`
}

// GridConfig bounds the grids authors can request.
type GridConfig struct {
	MaxRows    int `toml:"max_rows"`
	MaxColumns int `toml:"max_columns"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Server: ServerConfig{ListenAddr: DefaultListenAddr},
		Store:  StoreConfig{Backend: DefaultStore},
		Cache:  CacheConfig{Backend: DefaultCache, TTL: DefaultCacheTTL},
		Grid:   GridConfig{MaxRows: DefaultMaxRows, MaxColumns: DefaultMaxColumns},
	}
}

// Load reads a TOML config file and applies defaults for omitted fields.
// An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = DefaultListenAddr
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = DefaultStore
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = DefaultCache
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = DefaultCacheTTL
	}
	if cfg.Grid.MaxRows == 0 {
		cfg.Grid.MaxRows = DefaultMaxRows
	}
	if cfg.Grid.MaxColumns == 0 {
		cfg.Grid.MaxColumns = DefaultMaxColumns
	}
}

// Validate checks backend names and required backend parameters.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case "memory":
	case "file":
		if c.Store.Dir == "" {
			return fmt.Errorf("store backend %q requires dir", c.Store.Backend)
		}
	case "mongo":
		if c.Store.URI == "" {
			return fmt.Errorf("store backend %q requires uri", c.Store.Backend)
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	switch c.Cache.Backend {
	case "none", "file":
	case "redis":
		if c.Cache.Addr == "" {
			return fmt.Errorf("cache backend %q requires addr", c.Cache.Backend)
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}

	if c.Grid.MaxRows < 1 || c.Grid.MaxColumns < 1 {
		return fmt.Errorf("grid limits must be at least 1x1, got %dx%d",
			c.Grid.MaxRows, c.Grid.MaxColumns)
	}
	return nil
}
