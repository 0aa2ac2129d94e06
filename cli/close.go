package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/optrack/optrack/ledger"
)

func newCloseCmd(app *App) *cobra.Command {
	var (
		price  float64
		reason string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "close [position-id]",
		Short: "Close a position (or all open positions)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()

			if all {
				if len(args) != 0 {
					return fmt.Errorf("close --all takes no position id")
				}
				return app.Ledger.CloseAll(ledger.ExitReason(strings.ToUpper(reason)), now)
			}

			if len(args) != 1 {
				return fmt.Errorf("close requires a position id (or --all)")
			}

			var exitPrice *float64
			if cmd.Flags().Changed("price") {
				exitPrice = &price
			}

			p, err := app.Ledger.Close(args[0], exitPrice, ledger.ExitReason(strings.ToUpper(reason)), now)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderPositions([]ledger.Position{p}))
			return nil
		},
	}

	cmd.Flags().Float64Var(&price, "price", 0, "exit price (last known price if omitted)")
	cmd.Flags().StringVar(&reason, "reason", "", "exit reason (default MANUAL)")
	cmd.Flags().BoolVar(&all, "all", false, "close every open position")

	return cmd
}
