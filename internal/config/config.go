// Package config loads showdown settings from defaults, an optional YAML or
// JSONC file, and SHOWDOWN_* environment variables, in that order.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	EnvWorkers         = "SHOWDOWN_WORKERS"
	EnvLogLevel        = "SHOWDOWN_LOG_LEVEL"
	EnvStoreDriver     = "SHOWDOWN_STORE_DRIVER"
	EnvDatabaseURL     = "SHOWDOWN_DATABASE_URL"
	EnvMetricsTextfile = "SHOWDOWN_METRICS_TEXTFILE"
)

const (
	StoreNone     = "none"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

var (
	ErrInvalidConfig     = errors.New("invalid config")
	ErrUnsupportedFormat = errors.New("unsupported config file format")
)

type Config struct {
	// Workers is the number of parallel chunks; 0 means one per CPU.
	Workers  int           `yaml:"workers" json:"workers"`
	LogLevel string        `yaml:"log_level" json:"log_level"`
	Report   ReportConfig  `yaml:"report" json:"report"`
	Store    StoreConfig   `yaml:"store" json:"store"`
	Metrics  MetricsConfig `yaml:"metrics" json:"metrics"`
}

type ReportConfig struct {
	// Path receives the JSON run report when set.
	Path string `yaml:"path" json:"path"`
}

type StoreConfig struct {
	Driver string `yaml:"driver" json:"driver"`
	DSN    string `yaml:"dsn" json:"dsn"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile" json:"textfile"`
}

func Default() Config {
	return Config{
		Workers:  0,
		LogLevel: "info",
		Store:    StoreConfig{Driver: StoreNone},
	}
}

// Load reads path over the defaults. The format is chosen by extension:
// .yaml/.yml for YAML, .json/.jsonc for JSON with comments.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(payload, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(payload), &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return cfg, nil
}

// ApplyEnv overlays SHOWDOWN_* variables that are set and non-empty.
func (c *Config) ApplyEnv(lookup func(string) string) error {
	if lookup == nil {
		lookup = os.Getenv
	}
	if raw := strings.TrimSpace(lookup(EnvWorkers)); raw != "" {
		workers, err := strconv.Atoi(raw)
		if err != nil || workers < 0 {
			return fmt.Errorf("%w: %s value %q", ErrInvalidConfig, EnvWorkers, raw)
		}
		c.Workers = workers
	}
	if raw := strings.TrimSpace(lookup(EnvLogLevel)); raw != "" {
		c.LogLevel = raw
	}
	if raw := strings.TrimSpace(lookup(EnvStoreDriver)); raw != "" {
		c.Store.Driver = raw
	}
	if raw := strings.TrimSpace(lookup(EnvDatabaseURL)); raw != "" {
		c.Store.DSN = raw
	}
	if raw := strings.TrimSpace(lookup(EnvMetricsTextfile)); raw != "" {
		c.Metrics.Textfile = raw
	}
	return nil
}

func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Store.Driver {
	case "", StoreNone:
	case StoreSQLite, StorePostgres:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return fmt.Errorf("%w: store driver %s requires a dsn", ErrInvalidConfig, c.Store.Driver)
		}
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.Store.Driver)
	}
	return nil
}

func ParseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, raw)
	}
}
