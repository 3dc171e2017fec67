// Package config loads stickyjar settings from a TOML file, the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/tgienger/stickyjar/internal/db"
)

const (
	appName   = "stickyjar"
	envPrefix = "STICKYJAR"
)

// Config aggregates all runtime settings
type Config struct {
	Storage StorageConfig `toml:"storage" mapstructure:"storage"`
	Log     LogConfig     `toml:"log" mapstructure:"log"`
	Web     WebConfig     `toml:"web" mapstructure:"web"`
	Jar     JarConfig     `toml:"jar" mapstructure:"jar"`
}

type StorageConfig struct {
	Backend string `toml:"backend" mapstructure:"backend"`
	Path    string `toml:"path" mapstructure:"path"`
}

type LogConfig struct {
	Level    string `toml:"level" mapstructure:"level"`
	Encoding string `toml:"encoding" mapstructure:"encoding"`
	File     string `toml:"file" mapstructure:"file"`
}

type WebConfig struct {
	Addr string `toml:"addr" mapstructure:"addr"`
}

type JarConfig struct {
	Capacity int `toml:"capacity" mapstructure:"capacity"`
}

// Default returns the built-in settings. Empty paths are filled by Resolve.
func Default() Config {
	return Config{
		Storage: StorageConfig{Backend: db.BackendSQLite},
		Log:     LogConfig{Level: "info", Encoding: "json"},
		Web:     WebConfig{Addr: "127.0.0.1:8787"},
		Jar:     JarConfig{Capacity: 50},
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/stickyjar/config.toml
func DefaultConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, appName, "config.toml"), nil
}

// DataDir returns $XDG_DATA_HOME/stickyjar
func DataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, appName), nil
}

// EnsureDir creates the parent directory of path
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// Load reads the config file at path, if it exists, then applies
// STICKYJAR_* environment overrides. A .env file in the working
// directory is loaded into the environment first.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.encoding", cfg.Log.Encoding)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("web.addr", cfg.Web.Addr)
	v.SetDefault("jar.capacity", cfg.Jar.Capacity)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case db.BackendSQLite, db.BackendBolt, db.BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Jar.Capacity <= 0 {
		return fmt.Errorf("jar capacity must be positive, got %d", c.Jar.Capacity)
	}
	return nil
}

// Resolve fills empty storage and log paths with locations under DataDir
func (c *Config) Resolve() error {
	needsData := c.Log.File == "" || (c.Storage.Path == "" && c.Storage.Backend != db.BackendMemory)
	if !needsData {
		return nil
	}

	dataDir, err := DataDir()
	if err != nil {
		return err
	}

	if c.Storage.Path == "" {
		switch c.Storage.Backend {
		case db.BackendBolt:
			c.Storage.Path = filepath.Join(dataDir, appName+".bolt")
		case db.BackendSQLite:
			c.Storage.Path = filepath.Join(dataDir, appName+".db")
		}
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(dataDir, appName+".log")
	}
	return nil
}

// Save writes cfg as TOML
func Save(path string, cfg Config) error {
	if err := EnsureDir(path); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
