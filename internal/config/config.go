// Package config loads lrucache settings from defaults, an optional TOML
// file and LRUCACHE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"lrucache/internal/cache"
	"lrucache/internal/logging"
)

const (
	DefaultCapacity  = 128
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	envPrefix = "LRUCACHE"
)

// Config is the resolved configuration.
type Config struct {
	Capacity int `mapstructure:"capacity"`
	Log      Log `mapstructure:"log"`
}

// Log is the [log] section.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Manager owns the viper instance so callers can bind flags before Load.
type Manager struct {
	viper *viper.Viper
}

// NewManager creates a Manager searching the working directory and
// $XDG_CONFIG_HOME/lrucache (or ~/.config/lrucache) for lrucache.toml.
func NewManager() *Manager {
	v := viper.New()

	v.SetConfigName("lrucache")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("capacity", DefaultCapacity)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	return &Manager{viper: v}
}

// Viper exposes the underlying instance for flag binding.
func (m *Manager) Viper() *viper.Viper {
	return m.viper
}

// SetConfigFile pins an explicit file instead of searching.
func (m *Manager) SetConfigFile(path string) {
	m.viper.SetConfigFile(path)
}

// Load reads the config file if one exists, then unmarshals and validates.
// A missing file is not an error; defaults and environment still apply.
func (m *Manager) Load() (*Config, error) {
	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := m.viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks every field and joins all failures.
func (c *Config) Validate() error {
	var errs []error
	if c.Capacity < 1 {
		errs = append(errs, fmt.Errorf("capacity: %w: got %d", cache.ErrInvalidCapacity, c.Capacity))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: must be console or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// Logging converts the log section into a logging.Config.
// It assumes Validate has passed.
func (c *Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	if lvl, err := logging.ParseLevel(c.Log.Level); err == nil {
		cfg.Level = lvl
	}
	cfg.Format = c.Log.Format
	return cfg
}

func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lrucache"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lrucache"), nil
}
