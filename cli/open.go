package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/optrack/optrack/ledger"
)

func newOpenCmd(app *App) *cobra.Command {
	var (
		ticker   string
		symbol   string
		contract string
		strike   float64
		expiry   string
		side     string
		qty      int64
		price    float64
		mult     float64
	)

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open a new paper position",
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := parseDate(expiry)
			if err != nil {
				return fmt.Errorf("expiry: %w", err)
			}

			p, err := app.Ledger.Open(ledger.OpenSpec{
				Ticker:     ticker,
				Symbol:     symbol,
				Contract:   ledger.ContractType(strings.ToUpper(contract)),
				Strike:     strike,
				Expiry:     exp,
				Side:       ledger.Side(strings.ToUpper(side)),
				Quantity:   qty,
				EntryPrice: price,
				Multiplier: mult,
			}, time.Now())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderPositions([]ledger.Position{p}))
			return nil
		},
	}

	cmd.Flags().StringVar(&ticker, "ticker", "", "underlying ticker (required)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "option symbol (derived from terms if empty)")
	cmd.Flags().StringVar(&contract, "type", "", "contract type: CALL or PUT (required)")
	cmd.Flags().Float64Var(&strike, "strike", 0, "strike price (required)")
	cmd.Flags().StringVar(&expiry, "expiry", "", "expiration date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&side, "side", "LONG", "LONG or SHORT")
	cmd.Flags().Int64Var(&qty, "qty", 0, "contract count (required)")
	cmd.Flags().Float64Var(&price, "price", 0, "entry premium per contract")
	cmd.Flags().Float64Var(&mult, "mult", 0, "contract multiplier (default 100)")

	return cmd
}

// parseDate accepts YYYY-MM-DD in UTC.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
