package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/optrack/optrack/ledger"
	"github.com/optrack/optrack/perf"
)

func renderPositions(ps []ledger.Position) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tSYMBOL\tSIDE\tQTY\tENTRY\tPRICE\tPNL\tSTATUS\tREASON")
	for _, p := range ps {
		pnl := p.UnrealizedPnL
		if p.Status == ledger.StatusClosed {
			pnl = p.RealizedPnL
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%.2f\t%.2f\t%s\t%s\n",
			p.ID, p.Symbol, p.Side, p.Quantity, p.EntryPrice, p.CurrentPrice,
			pnl, p.Status, p.ExitReason)
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func renderSnapshot(s perf.Snapshot) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	if s.Bounded {
		fmt.Fprintf(w, "window\t%s .. %s\n", s.Start.Format("2006-01-02 15:04"), s.End.Format("2006-01-02 15:04"))
	} else {
		fmt.Fprintf(w, "window\tall\n")
	}
	if s.Benchmark != "" {
		fmt.Fprintf(w, "benchmark\t%s\n", s.Benchmark)
	}
	fmt.Fprintf(w, "trades\t%d (%d wins / %d losses)\n", s.TotalTrades, s.WinningTrades, s.LosingTrades)
	fmt.Fprintf(w, "win rate\t%.1f%%\n", s.WinRate*100)
	fmt.Fprintf(w, "profit factor\t%s\n", fmtOpt(s.ProfitFactor, "%.2f"))
	fmt.Fprintf(w, "avg win / loss\t%.2f / %.2f\n", s.AverageWin, s.AverageLoss)
	fmt.Fprintf(w, "best / worst\t%s / %s\n", fmtOpt(s.BestTrade, "%.2f"), fmtOpt(s.WorstTrade, "%.2f"))
	fmt.Fprintf(w, "streaks\t%d wins, %d losses\n", s.ConsecutiveWins, s.ConsecutiveLosses)
	fmt.Fprintf(w, "max drawdown\t%.2f (%.1f%%)\n", s.MaxDrawdown, s.MaxDrawdownPercent*100)
	fmt.Fprintf(w, "sharpe\t%s\n", fmtOpt(s.SharpeRatio, "%.2f"))
	fmt.Fprintf(w, "realized pnl\t%.2f\n", s.RealizedPnL)
	fmt.Fprintf(w, "unrealized pnl\t%.2f\n", s.UnrealizedPnL)
	fmt.Fprintf(w, "account balance\t%.2f\n", s.AccountBalance)
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

// fmtOpt renders an optional metric, "n/a" when undefined.
func fmtOpt(v *float64, format string) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf(format, *v)
}
