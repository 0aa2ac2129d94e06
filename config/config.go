package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete tracker configuration.
type Config struct {
	Account Account `json:"account" yaml:"account"`
	Journal Journal `json:"journal" yaml:"journal"`
	Logging Logging `json:"logging" yaml:"logging"`
}

// Account contains paper-account initialization parameters.
type Account struct {
	ID             string  `json:"id" yaml:"id"`
	InitialBalance float64 `json:"initial_balance" yaml:"initial_balance"`
}

// Journal contains persistence parameters.
type Journal struct {
	Type   string `json:"type" yaml:"type"` // "sqlite" or "none"
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// Logging contains log output parameters.
type Logging struct {
	Level  string `json:"level" yaml:"level"` // zerolog level names
	Pretty bool   `json:"pretty" yaml:"pretty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON). Env overrides
// are applied afterwards.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv overlays OPTRACK_* environment variables. The CLI loads .env files
// with godotenv before this runs.
func (c *Config) applyEnv() {
	if v := os.Getenv("OPTRACK_DB"); v != "" {
		c.Journal.Type = "sqlite"
		c.Journal.DBPath = v
	}
	if v := os.Getenv("OPTRACK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Account.ID == "" {
		return fmt.Errorf("account.id is required")
	}
	if c.Account.InitialBalance <= 0 {
		return fmt.Errorf("account.initial_balance must be positive")
	}
	switch strings.ToLower(c.Journal.Type) {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite journal")
		}
	case "none", "":
	default:
		return fmt.Errorf("journal.type must be 'sqlite' or 'none'")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: Account{
			ID:             "PAPER-001",
			InitialBalance: 100000,
		},
		Journal: Journal{
			Type:   "sqlite",
			DBPath: "./optrack.sqlite",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}
