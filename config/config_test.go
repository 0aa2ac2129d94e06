package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "PAPER-001", cfg.Account.ID)
	assert.Equal(t, 100000.0, cfg.Account.InitialBalance)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"missing account id", func(c *Config) { c.Account.ID = "" }, "account.id"},
		{"zero balance", func(c *Config) { c.Account.InitialBalance = 0 }, "initial_balance"},
		{"negative balance", func(c *Config) { c.Account.InitialBalance = -1 }, "initial_balance"},
		{"sqlite without path", func(c *Config) { c.Journal.DBPath = "" }, "db_path"},
		{"unknown journal type", func(c *Config) { c.Journal.Type = "postgres" }, "journal.type"},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errSub)
		})
	}

	t.Run("journal none needs no path", func(t *testing.T) {
		cfg := Default()
		cfg.Journal.Type = "none"
		cfg.Journal.DBPath = ""
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoadFromFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
account:
  id: TEST-42
  initial_balance: 25000
journal:
  type: none
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "TEST-42", cfg.Account.ID)
	assert.Equal(t, 25000.0, cfg.Account.InitialBalance)
	assert.Equal(t, "none", cfg.Journal.Type)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"account":{"id":"TEST-7","initial_balance":5000},"journal":{"type":"none"}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "TEST-7", cfg.Account.ID)
	// Defaults fill fields the file omits.
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFileEnvOverride(t *testing.T) {
	t.Setenv("OPTRACK_DB", "/tmp/override.sqlite")
	t.Setenv("OPTRACK_LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "account:\n  id: TEST-1\n  initial_balance: 1000\njournal:\n  type: none\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, "/tmp/override.sqlite", cfg.Journal.DBPath)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
