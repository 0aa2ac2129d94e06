// Package perf derives summary statistics from the ledger's closed-position
// history plus the live open set. Every metric is a deterministic pure
// function of its inputs; "now" is an explicit parameter, never the clock.
package perf

import (
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/optrack/optrack/ledger"
)

// Input is everything Compute needs. Closed and Open are read-only views
// supplied by the ledger; the aggregator keeps no copy of its own.
type Input struct {
	Closed         []ledger.Position
	Open           []ledger.Position
	Window         Window
	Now            time.Time
	InitialBalance float64
	Benchmark      string
}

// Snapshot is the derived performance view. Metrics with no defined value for
// the given data (Sharpe under two trades, profit factor with zero losses,
// best/worst of an empty set) are nil rather than zero or an error.
type Snapshot struct {
	Start   time.Time
	End     time.Time
	Bounded bool

	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64

	GrossProfit  float64
	GrossLoss    float64
	ProfitFactor *float64
	AverageWin   float64
	AverageLoss  float64
	BestTrade    *float64
	WorstTrade   *float64

	ConsecutiveWins    int
	ConsecutiveLosses  int
	MaxDrawdown        float64
	MaxDrawdownPercent float64
	SharpeRatio        *float64

	RealizedPnL    float64 // over the window
	UnrealizedPnL  float64 // over the current open set
	AccountBalance float64 // initial + all realized + unrealized

	Benchmark string
}

// tradingDaysPerYear is the annualization base for Sharpe when the average
// holding period is unusable.
const tradingDaysPerYear = 252

// Compute aggregates the window-filtered closed history. Streaks and drawdown
// are computed over exit-time order; every other metric depends only on the
// filtered set.
func Compute(in Input) Snapshot {
	start, end, bounded := in.Window.Resolve(in.Now)

	var window []ledger.Position
	var realizedAll, realizedBefore float64
	for _, p := range in.Closed {
		realizedAll += p.RealizedPnL
		if !bounded || contains(p.ExitTime, start, end) {
			window = append(window, p)
		} else if bounded && p.ExitTime.Before(start) {
			realizedBefore += p.RealizedPnL
		}
	}
	sort.Slice(window, func(i, j int) bool {
		return window[i].ExitTime.Before(window[j].ExitTime)
	})

	s := Snapshot{
		Start:     start,
		End:       end,
		Bounded:   bounded,
		Benchmark: in.Benchmark,
	}

	var wins, losses []float64
	var pnls []float64
	for _, p := range window {
		pnls = append(pnls, p.RealizedPnL)
		s.RealizedPnL += p.RealizedPnL
		switch {
		case p.RealizedPnL > 0:
			wins = append(wins, p.RealizedPnL)
			s.GrossProfit += p.RealizedPnL
		case p.RealizedPnL < 0:
			losses = append(losses, p.RealizedPnL)
			s.GrossLoss += -p.RealizedPnL
		}
	}

	s.TotalTrades = len(window)
	s.WinningTrades = len(wins)
	s.LosingTrades = len(losses)
	if s.TotalTrades > 0 {
		s.WinRate = float64(s.WinningTrades) / float64(s.TotalTrades)
	}

	switch {
	case s.GrossLoss > 0:
		pf := s.GrossProfit / s.GrossLoss
		s.ProfitFactor = &pf
	case s.GrossProfit == 0:
		zero := 0.0
		s.ProfitFactor = &zero
	// gross profit with zero losses: undefined, left nil
	}

	s.AverageWin = meanOrZero(wins)
	s.AverageLoss = meanOrZero(losses)

	if len(pnls) > 0 {
		if best, err := stats.Max(pnls); err == nil {
			s.BestTrade = &best
		}
		if worst, err := stats.Min(pnls); err == nil {
			s.WorstTrade = &worst
		}
	}

	s.ConsecutiveWins, s.ConsecutiveLosses = longestStreaks(window)
	base := in.InitialBalance + realizedBefore
	s.MaxDrawdown, s.MaxDrawdownPercent = maxDrawdown(window, base)
	s.SharpeRatio = sharpe(window)

	for _, p := range in.Open {
		s.UnrealizedPnL += p.UnrealizedPnL
	}
	s.AccountBalance = in.InitialBalance + realizedAll + s.UnrealizedPnL

	return s
}

func meanOrZero(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m, err := stats.Mean(xs)
	if err != nil {
		return 0
	}
	return m
}

// longestStreaks returns the longest run of winning and of losing trades in
// exit-time order. A break-even trade ends both kinds of run.
func longestStreaks(window []ledger.Position) (wins, losses int) {
	var curWins, curLosses int
	for _, p := range window {
		switch {
		case p.RealizedPnL > 0:
			curWins++
			curLosses = 0
		case p.RealizedPnL < 0:
			curLosses++
			curWins = 0
		default:
			curWins = 0
			curLosses = 0
		}
		if curWins > wins {
			wins = curWins
		}
		if curLosses > losses {
			losses = curLosses
		}
	}
	return wins, losses
}

// maxDrawdown walks the cumulative realized P&L curve and returns the largest
// peak-to-trough decline, in currency and as a fraction of the running balance
// at the peak. base is the account balance entering the window.
func maxDrawdown(window []ledger.Position, base float64) (dd, ddPct float64) {
	cum := base
	peak := base
	for _, p := range window {
		cum += p.RealizedPnL
		if cum > peak {
			peak = cum
		}
		decline := peak - cum
		if decline > dd {
			dd = decline
			if peak > 0 {
				ddPct = decline / peak
			}
		}
	}
	return dd, ddPct
}

// sharpe computes mean over stdev of per-trade returns, annualized by the
// average holding period. Undefined (fewer than two usable trades, or zero
// variance) yields nil.
func sharpe(window []ledger.Position) *float64 {
	var returns []float64
	var holding time.Duration
	for _, p := range window {
		cb := p.CostBasis()
		if cb == 0 {
			continue
		}
		returns = append(returns, p.RealizedPnL/cb)
		holding += p.ExitTime.Sub(p.EntryTime)
	}
	if len(returns) < 2 {
		return nil
	}

	mean, err := stats.Mean(returns)
	if err != nil {
		return nil
	}
	sd, err := stats.StandardDeviationSample(returns)
	if err != nil || sd == 0 {
		return nil
	}

	avgHold := holding / time.Duration(len(returns))
	factor := math.Sqrt(tradingDaysPerYear)
	if avgHold > 0 {
		tradesPerYear := float64(365*24*time.Hour) / float64(avgHold)
		factor = math.Sqrt(tradesPerYear)
	}

	ratio := mean / sd * factor
	return &ratio
}
