package ledger

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// OptionSymbol renders an OCC-style option symbol, e.g.
// SPY260320C00450000 for the SPY 2026-03-20 450 call.
func OptionSymbol(ticker string, expiry time.Time, ct ContractType, strike float64) string {
	cp := "C"
	if ct == Put {
		cp = "P"
	}
	// Strike is encoded as price * 1000, zero-padded to 8 digits.
	enc := int64(math.Round(strike * 1000))
	return fmt.Sprintf("%s%s%s%08d", strings.ToUpper(ticker), expiry.Format("060102"), cp, enc)
}
