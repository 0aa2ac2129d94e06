// journal/journal.go
package journal

import "time"

// OpenRecord is the persisted form of an open position. One row per position
// id, upserted on every mutation so the ledger can be rebuilt on restart.
type OpenRecord struct {
	ID           string
	Ticker       string
	Symbol       string
	Contract     string
	Strike       float64
	Expiry       time.Time
	Side         string
	Quantity     int64
	Multiplier   float64
	EntryPrice   float64
	EntryTime    time.Time
	CurrentPrice float64
	MaxFavorable float64
	MaxAdverse   float64
	Favorable    float64
	StopLoss     *float64
	ProfitTarget *float64
	TrailingStop *float64
	LastUpdate   time.Time
}

// ClosedRecord is one row of the append-only closed-trade log,
// ordered by exit time.
type ClosedRecord struct {
	ID          string
	Ticker      string
	Symbol      string
	Contract    string
	Strike      float64
	Expiry      time.Time
	Side        string
	Quantity    int64
	Multiplier  float64
	EntryPrice  float64
	EntryTime   time.Time
	ExitPrice   float64
	ExitTime    time.Time
	Reason      string
	RealizedPnL float64
}

// EquityPoint is a snapshot of account value after a ledger mutation.
type EquityPoint struct {
	Time       time.Time
	Balance    float64
	Equity     float64
	OpenCount  int64
	Unrealized float64
}

type Store interface {
	SaveOpen(OpenRecord) error
	DeleteOpen(id string) error
	RecordClose(ClosedRecord) error
	RecordEquity(EquityPoint) error
	Close() error
}
