// Package config loads application configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Storage modes. Mock serves seeds plus a file-backed mirror; remote
// serves a MongoDB database.
const (
	ModeMock   = "mock"
	ModeRemote = "remote"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig        `yaml:"app"`
	Mongo      MongoConfig      `yaml:"mongo"`
	LocalState LocalStateConfig `yaml:"localState"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	// ID namespaces remote collections and local state keys so several
	// deployments can share one database.
	ID       string `yaml:"id"`
	Mode     string `yaml:"mode"`
	DemoData bool   `yaml:"demoData"`
}

// MongoConfig holds remote storage settings
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// LocalStateConfig holds mock-mode persistence settings
type LocalStateConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// LoadConfig reads configuration from the given file, applies
// environment overrides and validates the result. An empty path loads
// defaults and environment only.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.App.ID = "ither"
	cfg.App.Mode = ModeMock
	cfg.App.DemoData = true
	cfg.Mongo.Database = "ither"
	cfg.LocalState.Dir = ".ither-state"
	cfg.Logging.Level = "info"
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("ITHER_APP_ID"); ok {
		cfg.App.ID = v
	}
	if v, ok := os.LookupEnv("ITHER_MODE"); ok {
		cfg.App.Mode = v
	}
	if v, ok := os.LookupEnv("ITHER_DEMO_DATA"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.App.DemoData = b
		}
	}
	if v, ok := os.LookupEnv("ITHER_MONGO_URI"); ok {
		cfg.Mongo.URI = v
	}
	if v, ok := os.LookupEnv("ITHER_MONGO_DATABASE"); ok {
		cfg.Mongo.Database = v
	}
	if v, ok := os.LookupEnv("ITHER_STATE_DIR"); ok {
		cfg.LocalState.Dir = v
	}
	if v, ok := os.LookupEnv("ITHER_LOG_LEVEL"); ok {
		cfg.Logging.Level = v
	}
}

func (c *Config) validate() error {
	switch c.App.Mode {
	case ModeMock, ModeRemote:
	default:
		return fmt.Errorf("invalid mode %q: must be %q or %q", c.App.Mode, ModeMock, ModeRemote)
	}
	if c.App.ID == "" {
		return fmt.Errorf("app id must not be empty")
	}
	if c.App.Mode == ModeRemote && c.Mongo.URI == "" {
		return fmt.Errorf("mongo uri is required in remote mode")
	}
	return nil
}
