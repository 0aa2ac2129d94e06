package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/optrack/optrack/ledger"
)

func newAdjustCmd(app *App) *cobra.Command {
	var stop, target, trail string

	cmd := &cobra.Command{
		Use:   "adjust <position-id>",
		Short: "Adjust stop-loss, profit-target or trailing-stop",
		Long: `Adjust exit conditions on an open position.

Each flag takes a price (or a distance, for --trail), or the word "clear" to
remove the condition. Flags not given leave the stored value unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adj := ledger.Adjustment{}

			var err error
			if adj.StopLoss, err = parseField(cmd, "stop", stop); err != nil {
				return err
			}
			if adj.ProfitTarget, err = parseField(cmd, "target", target); err != nil {
				return err
			}
			if adj.TrailingStop, err = parseField(cmd, "trail", trail); err != nil {
				return err
			}

			p, err := app.Ledger.AdjustExitConditions(args[0], adj, time.Now())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderPositions([]ledger.Position{p}))
			return nil
		},
	}

	cmd.Flags().StringVar(&stop, "stop", "", `stop-loss price, or "clear"`)
	cmd.Flags().StringVar(&target, "target", "", `profit-target price, or "clear"`)
	cmd.Flags().StringVar(&trail, "trail", "", `trailing-stop distance, or "clear"`)

	return cmd
}

func parseField(cmd *cobra.Command, name, raw string) (ledger.Field, error) {
	if !cmd.Flags().Changed(name) {
		return ledger.Field{}, nil
	}
	if raw == "clear" {
		return ledger.ClearField(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return ledger.Field{}, fmt.Errorf("--%s: want a number or \"clear\", got %q", name, raw)
	}
	return ledger.SetField(v), nil
}
