// Package cli wires the cobra command tree for the optrack binary.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/optrack/optrack/config"
	"github.com/optrack/optrack/exit"
	"github.com/optrack/optrack/journal"
	"github.com/optrack/optrack/ledger"
)

// App carries the shared state commands operate on.
type App struct {
	Cfg    *config.Config
	Log    zerolog.Logger
	Store  *journal.SQLite
	Ledger *ledger.Ledger

	configPath string
	dbPath     string
}

// Root builds the optrack command tree.
func Root() *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:           "optrack",
		Short:         "Paper-trading option position ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.teardown()
		},
	}

	root.PersistentFlags().StringVar(&app.configPath, "config", "", "path to YAML/JSON config file")
	root.PersistentFlags().StringVar(&app.dbPath, "db", "", "path to SQLite journal DB (overrides config)")

	root.AddCommand(
		newOpenCmd(app),
		newCloseCmd(app),
		newAdjustCmd(app),
		newPositionsCmd(app),
		newReportCmd(app),
		newReplayCmd(app),
		newExportCmd(app),
	)

	return root
}

func (a *App) setup() error {
	// .env files are optional; missing ones are not an error.
	_ = godotenv.Load()

	var cfg *config.Config
	if a.configPath != "" {
		c, err := config.LoadFromFile(a.configPath)
		if err != nil {
			return err
		}
		cfg = c
	} else {
		cfg = config.Default()
		if v := os.Getenv("OPTRACK_DB"); v != "" {
			cfg.Journal.DBPath = v
		}
		if v := os.Getenv("OPTRACK_LOG_LEVEL"); v != "" {
			cfg.Logging.Level = v
		}
	}
	if a.dbPath != "" {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = a.dbPath
	}
	a.Cfg = cfg

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	var w = os.Stderr
	log := zerolog.New(w).Level(level).With().Timestamp().Logger()
	if cfg.Logging.Pretty {
		log = log.Output(zerolog.ConsoleWriter{Out: w})
	}
	a.Log = log

	if strings.ToLower(cfg.Journal.Type) == "sqlite" {
		store, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return fmt.Errorf("open journal db: %w", err)
		}
		a.Store = store
	}

	acct := ledger.Account{
		ID:             cfg.Account.ID,
		InitialBalance: cfg.Account.InitialBalance,
	}
	var store journal.Store
	if a.Store != nil {
		store = a.Store
	}
	a.Ledger = ledger.New(acct, exit.New(), store, a.Log)

	if a.Store != nil {
		open, err := a.Store.LoadOpen()
		if err != nil {
			return fmt.Errorf("load open positions: %w", err)
		}
		a.Ledger.Restore(open)

		closed, err := a.Store.ListClosed()
		if err != nil {
			return fmt.Errorf("load closed trades: %w", err)
		}
		a.Ledger.RestoreClosed(closed)
	}

	return nil
}

func (a *App) teardown() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
