// Package config loads sleepwell settings from defaults, an optional YAML
// file and the environment, in that order of precedence (last wins).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is the runtime configuration.
type Config struct {
	Port       string `yaml:"port" env:"SLEEPWELL_PORT"`
	DataDir    string `yaml:"data_dir" env:"SLEEPWELL_DATA_DIR"`
	Backend    string `yaml:"backend" env:"SLEEPWELL_BACKEND"`
	SQLitePath string `yaml:"sqlite_path,omitempty" env:"SLEEPWELL_SQLITE_PATH"`
	LogLevel   string `yaml:"log_level" env:"SLEEPWELL_LOG_LEVEL"`
	Metrics    bool   `yaml:"metrics" env:"SLEEPWELL_METRICS"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:     "8000",
		DataDir:  "data",
		Backend:  BackendFile,
		LogLevel: "info",
		Metrics:  true,
	}
}

// Load builds the configuration. A .env file in the working directory is
// applied first without overriding real environment variables. The YAML file
// at path is optional; an empty path skips it.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("config: port must not be empty")
	}
	switch c.Backend {
	case BackendFile:
		if c.DataDir == "" {
			return errors.New("config: data_dir must not be empty")
		}
	case BackendSQLite:
		if c.DataDir == "" && c.SQLitePath == "" {
			return errors.New("config: sqlite backend needs data_dir or sqlite_path")
		}
	default:
		return fmt.Errorf("config: unknown backend %q (want %s or %s)", c.Backend, BackendFile, BackendSQLite)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// DatabasePath returns where the SQLite backend keeps its database.
func (c Config) DatabasePath() string {
	if c.SQLitePath != "" {
		return c.SQLitePath
	}
	return filepath.Join(c.DataDir, "sleepwell.db")
}

// SlogLevel maps LogLevel to a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}
	return level, nil
}
