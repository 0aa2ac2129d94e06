package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/optrack/optrack/perf"
)

func newReportCmd(app *App) *cobra.Command {
	var (
		window    string
		from, to  string
		benchmark string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Performance summary over a time window",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := resolveWindow(window, from, to)
			if err != nil {
				return err
			}

			snap := perf.Compute(perf.Input{
				Closed:         app.Ledger.ClosedHistory(),
				Open:           app.Ledger.OpenPositions(),
				Window:         w,
				Now:            time.Now(),
				InitialBalance: app.Cfg.Account.InitialBalance,
				Benchmark:      benchmark,
			})

			fmt.Fprintln(cmd.OutOrStdout(), renderSnapshot(snap))
			return nil
		},
	}

	cmd.Flags().StringVar(&window, "window", "all", "window preset: 1d, 1w, 1m or all")
	cmd.Flags().StringVar(&from, "from", "", "explicit range start YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "explicit range end YYYY-MM-DD")
	cmd.Flags().StringVar(&benchmark, "benchmark", "", "benchmark label carried into the snapshot")

	return cmd
}

func resolveWindow(preset, from, to string) (perf.Window, error) {
	if from == "" && to == "" {
		return perf.ParseWindow(preset)
	}
	if from == "" || to == "" {
		return perf.Window{}, fmt.Errorf("--from and --to must be given together")
	}
	start, err := parseDate(from)
	if err != nil {
		return perf.Window{}, fmt.Errorf("from: %w", err)
	}
	end, err := parseDate(to)
	if err != nil {
		return perf.Window{}, fmt.Errorf("to: %w", err)
	}
	// Make the end date inclusive through end of day.
	end = end.Add(24*time.Hour - time.Nanosecond)
	if end.Before(start) {
		return perf.Window{}, fmt.Errorf("range end %s is before start %s", to, from)
	}
	return perf.Range(start, end), nil
}
