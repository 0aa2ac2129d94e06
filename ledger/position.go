package ledger

import (
	"time"

	"github.com/optrack/optrack/journal"
)

type ContractType string

const (
	Call ContractType = "CALL"
	Put  ContractType = "PUT"
)

type Side string

const (
	Long  Side = "LONG"
	Short Side = "SHORT"
)

// Sign returns +1 for long positions and -1 for short positions.
func (s Side) Sign() float64 {
	if s == Short {
		return -1
	}
	return 1
}

type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

type ExitReason string

const (
	ExitManual       ExitReason = "MANUAL"
	ExitStopLoss     ExitReason = "STOP_LOSS"
	ExitProfitTarget ExitReason = "PROFIT_TARGET"
	ExitTrailingStop ExitReason = "TRAILING_STOP"
	ExitExpiration   ExitReason = "EXPIRATION"
)

// DefaultMultiplier is the contract multiplier for US equity options.
const DefaultMultiplier = 100

type Greeks struct {
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
	Rho   float64
	IV    float64
}

// Position is one paper-tracked option trade. A position is OPEN until it is
// closed (manually or by an exit condition), after which its exit fields are
// fixed and never recomputed.
type Position struct {
	ID         string
	Ticker     string
	Symbol     string // option symbol, e.g. SPY260320C00450000
	Contract   ContractType
	Strike     float64
	Expiry     time.Time
	Side       Side
	Quantity   int64 // contracts, always positive; direction lives in Side
	Multiplier float64
	EntryPrice float64
	EntryTime  time.Time

	Status        Status
	CurrentPrice  float64
	UnrealizedPnL float64
	PnLPercent    float64
	MaxFavorable  float64 // best unrealized P&L seen while open
	MaxAdverse    float64 // worst unrealized P&L seen while open
	Favorable     float64 // most favorable price seen, drives trailing stops
	Greeks        Greeks
	LastUpdate    time.Time

	StopLoss     *float64
	ProfitTarget *float64
	TrailingStop *float64

	ExitPrice   float64
	ExitTime    time.Time
	ExitReason  ExitReason
	RealizedPnL float64
}

// PnLAt returns the P&L of the position marked at the given price.
func (p *Position) PnLAt(price float64) float64 {
	return (price - p.EntryPrice) * float64(p.Quantity) * p.Side.Sign() * p.Multiplier
}

// CostBasis is the absolute premium paid or received at entry.
func (p *Position) CostBasis() float64 {
	return p.EntryPrice * float64(p.Quantity) * p.Multiplier
}

// Expired reports whether the contract's expiry has passed at the given time.
func (p *Position) Expired(now time.Time) bool {
	return !p.Expiry.IsZero() && now.After(p.Expiry)
}

func (p *Position) toOpenRecord() journal.OpenRecord {
	return journal.OpenRecord{
		ID:           p.ID,
		Ticker:       p.Ticker,
		Symbol:       p.Symbol,
		Contract:     string(p.Contract),
		Strike:       p.Strike,
		Expiry:       p.Expiry,
		Side:         string(p.Side),
		Quantity:     p.Quantity,
		Multiplier:   p.Multiplier,
		EntryPrice:   p.EntryPrice,
		EntryTime:    p.EntryTime,
		CurrentPrice: p.CurrentPrice,
		MaxFavorable: p.MaxFavorable,
		MaxAdverse:   p.MaxAdverse,
		Favorable:    p.Favorable,
		StopLoss:     copyFloat(p.StopLoss),
		ProfitTarget: copyFloat(p.ProfitTarget),
		TrailingStop: copyFloat(p.TrailingStop),
		LastUpdate:   p.LastUpdate,
	}
}

func (p *Position) toClosedRecord() journal.ClosedRecord {
	return journal.ClosedRecord{
		ID:          p.ID,
		Ticker:      p.Ticker,
		Symbol:      p.Symbol,
		Contract:    string(p.Contract),
		Strike:      p.Strike,
		Expiry:      p.Expiry,
		Side:        string(p.Side),
		Quantity:    p.Quantity,
		Multiplier:  p.Multiplier,
		EntryPrice:  p.EntryPrice,
		EntryTime:   p.EntryTime,
		ExitPrice:   p.ExitPrice,
		ExitTime:    p.ExitTime,
		Reason:      string(p.ExitReason),
		RealizedPnL: p.RealizedPnL,
	}
}

// FromOpenRecord rebuilds an open position from its persisted form.
func FromOpenRecord(r journal.OpenRecord) Position {
	p := Position{
		ID:           r.ID,
		Ticker:       r.Ticker,
		Symbol:       r.Symbol,
		Contract:     ContractType(r.Contract),
		Strike:       r.Strike,
		Expiry:       r.Expiry,
		Side:         Side(r.Side),
		Quantity:     r.Quantity,
		Multiplier:   r.Multiplier,
		EntryPrice:   r.EntryPrice,
		EntryTime:    r.EntryTime,
		Status:       StatusOpen,
		CurrentPrice: r.CurrentPrice,
		MaxFavorable: r.MaxFavorable,
		MaxAdverse:   r.MaxAdverse,
		Favorable:    r.Favorable,
		StopLoss:     copyFloat(r.StopLoss),
		ProfitTarget: copyFloat(r.ProfitTarget),
		TrailingStop: copyFloat(r.TrailingStop),
		LastUpdate:   r.LastUpdate,
	}
	if p.CurrentPrice != 0 {
		p.UnrealizedPnL = p.PnLAt(p.CurrentPrice)
		if cb := p.CostBasis(); cb != 0 {
			p.PnLPercent = p.UnrealizedPnL / cb
		}
	}
	return p
}

// FromClosedRecord rebuilds a closed position from the closed-trade log.
func FromClosedRecord(r journal.ClosedRecord) Position {
	return Position{
		ID:          r.ID,
		Ticker:      r.Ticker,
		Symbol:      r.Symbol,
		Contract:    ContractType(r.Contract),
		Strike:      r.Strike,
		Expiry:      r.Expiry,
		Side:        Side(r.Side),
		Quantity:    r.Quantity,
		Multiplier:  r.Multiplier,
		EntryPrice:  r.EntryPrice,
		EntryTime:   r.EntryTime,
		Status:      StatusClosed,
		ExitPrice:   r.ExitPrice,
		ExitTime:    r.ExitTime,
		ExitReason:  ExitReason(r.Reason),
		RealizedPnL: r.RealizedPnL,
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
