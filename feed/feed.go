// Package feed supplies market ticks (price plus Greeks) to a ledger. Feeds
// are deterministic and caller-driven; the ledger itself never blocks on I/O.
package feed

import (
	"time"

	"github.com/optrack/optrack/ledger"
)

// Tick is one observed option quote.
type Tick struct {
	Symbol string // option symbol, matches Position.Symbol
	Price  float64
	Greeks ledger.Greeks
	Time   time.Time
}

// TickFeed yields ticks one at a time. Implementations should be
// deterministic and return (ok=false, err=nil) at EOF.
type TickFeed interface {
	Next() (t Tick, ok bool, err error)
	Close() error
}
