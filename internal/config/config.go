package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// EnvPrefix is prepended to every variable, e.g. STUDY_SERVICE_HTTP_PORT.
const EnvPrefix = "STUDY_SERVICE"

// Config holds the configuration for the study service.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage
	StoreDriver  string `envconfig:"STORE_DRIVER" default:"file"`
	DataDir      string `envconfig:"DATA_DIR" default:"data"`
	DataFile     string `envconfig:"DATA_FILE" default:"estudos.json"`
	SQLitePath   string `envconfig:"SQLITE_PATH" default:""`
	PostgresDSN  string `envconfig:"POSTGRES_DSN" default:""`
	ResetOnStart bool   `envconfig:"RESET_ON_START" default:"false"`

	// Health / startup
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
	StartupTimeoutSeconds     int `envconfig:"STARTUP_TIMEOUT_SECONDS" default:"30"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// ResolveDefaults validates the driver and derives file locations.
func (c *Config) ResolveDefaults() error {
	switch c.StoreDriver {
	case "", "auto":
		c.StoreDriver = DriverFile
	case DriverMemory, DriverFile, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.StoreDriver)
	}

	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.DataFile == "" {
		c.DataFile = "estudos.json"
	}
	if c.SQLitePath == "" {
		c.SQLitePath = filepath.Join(c.DataDir, "estudos.db")
	}
	if c.StoreDriver == DriverPostgres && c.PostgresDSN == "" {
		return fmt.Errorf("STORE_DRIVER=postgres requires POSTGRES_DSN")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return nil
}

// New creates a new Config by parsing environment variables prefixed with
// STUDY_SERVICE_, e.g. STUDY_SERVICE_STORE_DRIVER=sqlite.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	cfg := &Config{
		Environment:               EnvTesting,
		HTTPPort:                  8080,
		StoreDriver:               DriverMemory,
		DataDir:                   "data",
		DataFile:                  "estudos.json",
		HealthIntervalSeconds:     1,
		HealthProbeTimeoutSeconds: 1,
		StartupTimeoutSeconds:     5,
		LogLevel:                  "debug",
	}
	_ = cfg.ResolveDefaults()
	return cfg
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// DataFilePath returns the JSON document location for the file driver.
func (c *Config) DataFilePath() string {
	return filepath.Join(c.DataDir, c.DataFile)
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// Level returns the parsed log level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func (c *Config) HealthInterval() time.Duration {
	return time.Duration(c.HealthIntervalSeconds) * time.Second
}

func (c *Config) HealthProbeTimeout() time.Duration {
	return time.Duration(c.HealthProbeTimeoutSeconds) * time.Second
}

func (c *Config) StartupTimeout() time.Duration {
	return time.Duration(c.StartupTimeoutSeconds) * time.Second
}
