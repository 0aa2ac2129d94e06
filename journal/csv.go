// journal/csv.go
package journal

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// WriteClosedCSV writes closed-trade records as CSV with a header row.
func WriteClosedCSV(w io.Writer, recs []ClosedRecord) error {
	cw := csv.NewWriter(w)

	header := []string{
		"position_id", "ticker", "symbol", "contract", "strike", "expiry",
		"side", "quantity", "multiplier", "entry_price", "entry_time",
		"exit_price", "exit_time", "reason", "realized_pnl",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range recs {
		row := []string{
			r.ID,
			r.Ticker,
			r.Symbol,
			r.Contract,
			f(r.Strike),
			r.Expiry.Format(time.RFC3339),
			r.Side,
			strconv.FormatInt(r.Quantity, 10),
			f(r.Multiplier),
			f(r.EntryPrice),
			r.EntryTime.Format(time.RFC3339),
			f(r.ExitPrice),
			r.ExitTime.Format(time.RFC3339),
			r.Reason,
			f(r.RealizedPnL),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
