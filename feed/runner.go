package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/optrack/optrack/ledger"
)

// RunnerOptions controls replay behavior.
type RunnerOptions struct {
	// If true, close all positions still open at the end of the feed.
	// Close reason will be CloseReason (MANUAL if empty).
	CloseEnd    bool
	CloseReason ledger.ExitReason
}

// Runner drives a ledger forward by replaying a tick feed. Each tick is
// applied to every open position whose option symbol matches.
type Runner struct {
	Ledger  *ledger.Ledger
	Feed    TickFeed
	Options RunnerOptions
}

// Result summarizes a replay.
type Result struct {
	Ticks   int
	Applied int
	Closed  int
	Start   time.Time
	End     time.Time
	Balance float64
	Equity  float64
}

// Run executes the replay loop:
//  1. read next tick
//  2. apply it to matching open positions (exit conditions fire inline)
//  3. repeat until EOF or ctx is done
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if r.Ledger == nil {
		return Result{}, fmt.Errorf("replay: Ledger is required")
	}
	if r.Feed == nil {
		return Result{}, fmt.Errorf("replay: Feed is required")
	}
	defer r.Feed.Close()

	closedBefore := len(r.Ledger.ClosedHistory())

	var res Result
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		t, ok, err := r.Feed.Next()
		if err != nil {
			return res, err
		}
		if !ok {
			break
		}
		res.Ticks++

		if res.Start.IsZero() || t.Time.Before(res.Start) {
			res.Start = t.Time
		}
		if res.End.IsZero() || t.Time.After(res.End) {
			res.End = t.Time
		}

		for _, p := range r.Ledger.OpenPositions() {
			if p.Symbol != t.Symbol {
				continue
			}
			if _, err := r.Ledger.ApplyPriceUpdate(p.ID, t.Price, t.Greeks, t.Time); err != nil {
				// A concurrent close between the snapshot and the update is
				// not a replay failure.
				if err == ledger.ErrNotFound {
					continue
				}
				return res, err
			}
			res.Applied++
		}
	}

	if r.Options.CloseEnd {
		now := res.End
		if now.IsZero() {
			now = time.Now()
		}
		if err := r.Ledger.CloseAll(r.Options.CloseReason, now); err != nil {
			return res, err
		}
	}

	res.Closed = len(r.Ledger.ClosedHistory()) - closedBefore
	res.Balance, res.Equity = r.Ledger.Balance()
	return res, nil
}
