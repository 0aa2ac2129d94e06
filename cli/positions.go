package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/optrack/optrack/ledger"
)

func newPositionsCmd(app *App) *cobra.Command {
	var status, ticker string

	cmd := &cobra.Command{
		Use:   "positions",
		Short: "List positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.Ledger.List(ledger.Filter{Status: status, Ticker: ticker})
			if err != nil {
				return err
			}
			if len(out) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no positions")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPositions(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status: open or closed")
	cmd.Flags().StringVar(&ticker, "ticker", "", "filter by ticker substring")

	return cmd
}
