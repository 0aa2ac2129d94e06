package perf_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optrack/optrack/ledger"
	"github.com/optrack/optrack/perf"
)

var now = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

// closedAt builds a closed position with the given realized P&L, exiting
// daysAgo days before now after holding for two days.
func closedAt(pnl float64, daysAgo int) ledger.Position {
	exitTime := now.AddDate(0, 0, -daysAgo)
	return ledger.Position{
		ID:          fmt.Sprintf("%s-%+.0f", exitTime.Format("20060102"), pnl),
		Ticker:      "SPY",
		Contract:    ledger.Call,
		Strike:      450,
		Side:        ledger.Long,
		Quantity:    1,
		Multiplier:  100,
		EntryPrice:  2.00,
		EntryTime:   exitTime.AddDate(0, 0, -2),
		Status:      ledger.StatusClosed,
		ExitTime:    exitTime,
		ExitReason:  ledger.ExitManual,
		RealizedPnL: pnl,
	}
}

func allWindow() perf.Window {
	w, _ := perf.ParseWindow("all")
	return w
}

func TestComputeBasicCounts(t *testing.T) {
	closed := []ledger.Position{
		closedAt(100, 3),
		closedAt(-50, 2),
	}

	s := perf.Compute(perf.Input{
		Closed:         closed,
		Window:         allWindow(),
		Now:            now,
		InitialBalance: 10000,
	})

	assert.Equal(t, 2, s.TotalTrades)
	assert.Equal(t, 1, s.WinningTrades)
	assert.Equal(t, 1, s.LosingTrades)
	assert.Equal(t, 0.5, s.WinRate)

	require.NotNil(t, s.ProfitFactor)
	assert.InDelta(t, 2.0, *s.ProfitFactor, 1e-9)

	require.NotNil(t, s.BestTrade)
	require.NotNil(t, s.WorstTrade)
	assert.Equal(t, 100.0, *s.BestTrade)
	assert.Equal(t, -50.0, *s.WorstTrade)

	assert.Equal(t, 100.0, s.AverageWin)
	assert.Equal(t, -50.0, s.AverageLoss)
	assert.InDelta(t, 50.0, s.RealizedPnL, 1e-9)
	assert.InDelta(t, 10050.0, s.AccountBalance, 1e-9)
}

func TestComputeEmptyHistory(t *testing.T) {
	s := perf.Compute(perf.Input{
		Window:         allWindow(),
		Now:            now,
		InitialBalance: 10000,
	})

	assert.Equal(t, 0, s.TotalTrades)
	assert.Equal(t, 0.0, s.WinRate, "win rate of an empty set is 0, not NaN")
	require.NotNil(t, s.ProfitFactor)
	assert.Equal(t, 0.0, *s.ProfitFactor)
	assert.Nil(t, s.BestTrade)
	assert.Nil(t, s.WorstTrade)
	assert.Nil(t, s.SharpeRatio)
	assert.Equal(t, 10000.0, s.AccountBalance)
}

func TestProfitFactorUndefinedWithoutLosses(t *testing.T) {
	s := perf.Compute(perf.Input{
		Closed: []ledger.Position{closedAt(100, 1), closedAt(30, 2)},
		Window: allWindow(),
		Now:    now,
	})

	assert.Nil(t, s.ProfitFactor, "all-win history has no defined profit factor")
}

func TestBreakEvenTradesCountNeither(t *testing.T) {
	s := perf.Compute(perf.Input{
		Closed: []ledger.Position{closedAt(0, 1), closedAt(100, 2)},
		Window: allWindow(),
		Now:    now,
	})

	assert.Equal(t, 2, s.TotalTrades)
	assert.Equal(t, 1, s.WinningTrades)
	assert.Equal(t, 0, s.LosingTrades)
	assert.Equal(t, 0.5, s.WinRate)
}

func TestAppendOrderIndependence(t *testing.T) {
	a := []ledger.Position{closedAt(100, 5), closedAt(-40, 3), closedAt(60, 1)}
	b := []ledger.Position{a[2], a[0], a[1]}

	in := func(closed []ledger.Position) perf.Input {
		return perf.Input{Closed: closed, Window: allWindow(), Now: now, InitialBalance: 1000}
	}

	assert.Equal(t, perf.Compute(in(a)), perf.Compute(in(b)))
}

func TestStreaksFollowExitTimeOrder(t *testing.T) {
	// Exit order: +10, +20, +5, -3, -4, +1
	closed := []ledger.Position{
		closedAt(10, 9),
		closedAt(20, 8),
		closedAt(5, 7),
		closedAt(-3, 6),
		closedAt(-4, 5),
		closedAt(1, 4),
	}

	s := perf.Compute(perf.Input{Closed: closed, Window: allWindow(), Now: now})

	assert.Equal(t, 3, s.ConsecutiveWins)
	assert.Equal(t, 2, s.ConsecutiveLosses)
}

func TestMaxDrawdown(t *testing.T) {
	// Curve from 1000: 1100, 1050, 900, 1200 -> worst decline 200 from peak 1100.
	closed := []ledger.Position{
		closedAt(100, 9),
		closedAt(-50, 8),
		closedAt(-150, 7),
		closedAt(300, 6),
	}

	s := perf.Compute(perf.Input{
		Closed:         closed,
		Window:         allWindow(),
		Now:            now,
		InitialBalance: 1000,
	})

	assert.InDelta(t, 200.0, s.MaxDrawdown, 1e-9)
	assert.InDelta(t, 200.0/1100.0, s.MaxDrawdownPercent, 1e-9)
}

func TestSharpeUndefinedCases(t *testing.T) {
	one := perf.Compute(perf.Input{
		Closed: []ledger.Position{closedAt(100, 1)},
		Window: allWindow(),
		Now:    now,
	})
	assert.Nil(t, one.SharpeRatio, "one trade has no Sharpe")

	flat := perf.Compute(perf.Input{
		Closed: []ledger.Position{closedAt(50, 1), closedAt(50, 2), closedAt(50, 3)},
		Window: allWindow(),
		Now:    now,
	})
	assert.Nil(t, flat.SharpeRatio, "zero variance has no Sharpe")
}

func TestSharpeDefinedForVariedReturns(t *testing.T) {
	s := perf.Compute(perf.Input{
		Closed: []ledger.Position{closedAt(100, 1), closedAt(-50, 2), closedAt(70, 3)},
		Window: allWindow(),
		Now:    now,
	})

	require.NotNil(t, s.SharpeRatio)
	assert.Greater(t, *s.SharpeRatio, 0.0)
}

func TestWindowFiltersByExitTime(t *testing.T) {
	closed := []ledger.Position{
		closedAt(100, 40), // outside 1m window
		closedAt(-50, 3),  // inside
		closedAt(25, 1),   // inside
	}

	w, err := perf.ParseWindow("1m")
	require.NoError(t, err)

	s := perf.Compute(perf.Input{
		Closed:         closed,
		Window:         w,
		Now:            now,
		InitialBalance: 1000,
	})

	assert.Equal(t, 2, s.TotalTrades)
	assert.InDelta(t, -25.0, s.RealizedPnL, 1e-9)
	// Account balance still includes all history.
	assert.InDelta(t, 1000+100-50+25, s.AccountBalance, 1e-9)
}

func TestWindowBoundsInclusive(t *testing.T) {
	start := now.AddDate(0, 0, -10)
	end := now.AddDate(0, 0, -5)

	atStart := closedAt(10, 10)
	atEnd := closedAt(20, 5)
	before := closedAt(99, 11)
	after := closedAt(99, 4)

	s := perf.Compute(perf.Input{
		Closed: []ledger.Position{atStart, atEnd, before, after},
		Window: perf.Range(start, end),
		Now:    now,
	})

	assert.Equal(t, 2, s.TotalTrades)
	assert.InDelta(t, 30.0, s.RealizedPnL, 1e-9)
}

func TestUnrealizedFeedsBalance(t *testing.T) {
	open := []ledger.Position{{
		ID:            "O1",
		Status:        ledger.StatusOpen,
		UnrealizedPnL: 165,
	}}

	s := perf.Compute(perf.Input{
		Open:           open,
		Window:         allWindow(),
		Now:            now,
		InitialBalance: 10000,
	})

	assert.InDelta(t, 165.0, s.UnrealizedPnL, 1e-9)
	assert.InDelta(t, 10165.0, s.AccountBalance, 1e-9)
}
