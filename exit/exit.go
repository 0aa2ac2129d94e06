// Package exit evaluates exit conditions against a position and its latest
// price. The engine is stateless: trailing-stop tracking rides on the
// favorable-price extreme the ledger already maintains.
package exit

import (
	"time"

	"github.com/optrack/optrack/ledger"
)

// Engine implements ledger.Evaluator. When several conditions are satisfied by
// the same update, the first rule in this fixed order wins:
//
//	1. stop-loss      -> STOP_LOSS
//	2. profit target  -> PROFIT_TARGET
//	3. trailing stop  -> TRAILING_STOP
//	4. expiration     -> EXPIRATION
type Engine struct{}

func New() Engine { return Engine{} }

func (Engine) Evaluate(p *ledger.Position, price float64, now time.Time) (ledger.ExitReason, bool) {
	switch {
	case hitStopLoss(p, price):
		return ledger.ExitStopLoss, true
	case hitProfitTarget(p, price):
		return ledger.ExitProfitTarget, true
	case hitTrailingStop(p, price):
		return ledger.ExitTrailingStop, true
	case p.Expired(now):
		return ledger.ExitExpiration, true
	}
	return "", false
}

func hitStopLoss(p *ledger.Position, price float64) bool {
	if p.StopLoss == nil {
		return false
	}
	if p.Side == ledger.Long {
		return price <= *p.StopLoss
	}
	return price >= *p.StopLoss
}

func hitProfitTarget(p *ledger.Position, price float64) bool {
	if p.ProfitTarget == nil {
		return false
	}
	if p.Side == ledger.Long {
		return price >= *p.ProfitTarget
	}
	return price <= *p.ProfitTarget
}

// hitTrailingStop fires when price has retraced from the running favorable
// extreme by more than the configured distance.
func hitTrailingStop(p *ledger.Position, price float64) bool {
	if p.TrailingStop == nil {
		return false
	}
	retrace := (p.Favorable - price) * p.Side.Sign()
	return retrace > *p.TrailingStop
}
