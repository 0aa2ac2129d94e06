package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/optrack/optrack/feed"
	"github.com/optrack/optrack/ledger"
)

func newReplayCmd(app *App) *cobra.Command {
	var (
		ticksPath string
		closeEnd  bool
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a CSV tick file through the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := feed.OpenCSV(ticksPath)
			if err != nil {
				return err
			}

			r := &feed.Runner{
				Ledger: app.Ledger,
				Feed:   f,
				Options: feed.RunnerOptions{
					CloseEnd:    closeEnd,
					CloseReason: ledger.ExitManual,
				},
			}

			res, err := r.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"ticks=%d applied=%d closed=%d balance=%.2f equity=%.2f\n",
				res.Ticks, res.Applied, res.Closed, res.Balance, res.Equity)
			return nil
		},
	}

	cmd.Flags().StringVar(&ticksPath, "ticks", "", "CSV tick file (required)")
	cmd.Flags().BoolVar(&closeEnd, "close-end", false, "close remaining open positions at end of feed")
	_ = cmd.MarkFlagRequired("ticks")

	return cmd
}
