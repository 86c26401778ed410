package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/tanafus/engine/pkg/database"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvTanafusEnv     = "TANAFUS_ENV"
	EnvTanafusVersion = "TANAFUS_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "TANAFUS_DB_HOST",
	Port:            "TANAFUS_DB_PORT",
	Name:            "TANAFUS_DB_NAME",
	User:            "TANAFUS_DB_USER",
	Password:        "TANAFUS_DB_PASSWORD",
	SSLMode:         "TANAFUS_DB_SSL_MODE",
	MaxOpenConns:    "TANAFUS_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "TANAFUS_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "TANAFUS_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "TANAFUS_DB_CONN_TIMEOUT",
}

// Config is the root configuration for the tanafus engine.
type Config struct {
	Database database.Config `toml:"database"`
	Provider ProviderConfig  `toml:"provider"`
	Version  string          `toml:"version"`
}

// Env returns the TANAFUS_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvTanafusEnv); env != "" {
		return env
	}
	return "local"
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Database.Merge(&overlay.Database)
	c.Provider.Merge(&overlay.Provider)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Provider.Finalize(); err != nil {
		return fmt.Errorf("provider: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvTanafusVersion); v != "" {
		c.Version = v
	}
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvTanafusEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
