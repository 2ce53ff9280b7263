package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment" validate:"omitempty,oneof=development production"`
	Logging     LoggingConfig   `toml:"logging"`
	Graph       GraphConfig     `toml:"graph"`
	Pipeboard   PipeboardConfig `toml:"pipeboard"`
	Storage     StorageConfig   `toml:"storage"`
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"omitempty,oneof=debug info warn error"`
	Output []string `toml:"output"` // "stderr", "file"
}

// GraphConfig configures the Meta Graph API client
type GraphConfig struct {
	BaseURL    string `toml:"base_url" validate:"omitempty,url"`
	APIVersion string `toml:"api_version"`
	RateLimit  int    `toml:"rate_limit" validate:"gte=0"` // Requests per second, 0 = default
}

// PipeboardConfig configures the token provider. An empty APIToken selects
// bypass mode: no live credentials, sentinel token for every call.
type PipeboardConfig struct {
	BaseURL  string `toml:"base_url" validate:"omitempty,url"`
	APIToken string `toml:"api_token"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`
	ResetOnStartup bool   `toml:"reset_on_startup"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level:  "warn",
			Output: []string{"stderr"},
		},
		Graph: GraphConfig{
			BaseURL:    "https://graph.facebook.com",
			APIVersion: "v20.0",
		},
		Pipeboard: PipeboardConfig{
			BaseURL: "https://pipeboard.co",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/praeco",
			},
		},
	}
}

// LoadFromFile loads configuration from a TOML file, applies environment
// overrides and validates the result. A missing file is not an error; the
// defaults plus environment are used.
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration using go-playground/validator.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// BypassActive reports whether the token lifecycle should run in bypass
// mode (no provider credential configured).
func (c *Config) BypassActive() bool {
	return c.Pipeboard.APIToken == ""
}

func applyEnvOverrides(config *Config) {
	if v := os.Getenv("PIPEBOARD_API_TOKEN"); v != "" {
		config.Pipeboard.APIToken = v
	}
	if v := os.Getenv("PIPEBOARD_API_BASE"); v != "" {
		config.Pipeboard.BaseURL = v
	}
	if v := os.Getenv("META_GRAPH_API_VERSION"); v != "" {
		config.Graph.APIVersion = v
	}
	if v := os.Getenv("PRAECO_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("PRAECO_DATA_DIR"); v != "" {
		config.Storage.Badger.Path = v
	}
	if v := os.Getenv("PRAECO_GRAPH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Graph.RateLimit = n
		}
	}
}
