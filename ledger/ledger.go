// Package ledger owns the authoritative set of paper option positions for one
// account. It is the sole mutator of that set: open, price updates, exit
// adjustments and closes are serialized behind a single lock, while reads
// observe consistent copies.
package ledger

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/optrack/optrack/internal/id"
	"github.com/optrack/optrack/journal"
)

// Evaluator decides whether a position should be auto-closed after a price
// update. It must be a pure function of its arguments; the ledger calls it
// under the write lock.
type Evaluator interface {
	Evaluate(p *Position, price float64, now time.Time) (ExitReason, bool)
}

// ExitListener is notified when the ledger auto-closes a position. The
// callback runs after the ledger lock is released.
type ExitListener interface {
	OnPositionClosed(positionID string, reason ExitReason)
}

// Account holds the paper account the ledger tracks positions for.
type Account struct {
	ID             string
	InitialBalance float64
}

// OpenSpec is the caller input for opening a position.
type OpenSpec struct {
	Ticker     string
	Symbol     string // optional, synthesized from the contract terms if empty
	Contract   ContractType
	Strike     float64
	Expiry     time.Time
	Side       Side
	Quantity   int64
	EntryPrice float64
	Multiplier float64 // 0 means DefaultMultiplier
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Status string // matched exactly after upper-casing
	Ticker string // case-insensitive substring match
}

type Ledger struct {
	mu        sync.RWMutex
	acct      Account
	realized  float64
	positions map[string]*Position // every position ever opened, keyed by id
	closed    []*Position          // terminal records ordered by exit time
	eval      Evaluator
	store     journal.Store // may be nil
	log       zerolog.Logger
	listener  ExitListener
}

// New builds a ledger for the given account. eval decides auto-exits and is
// required; store may be nil for a purely in-memory ledger.
func New(acct Account, eval Evaluator, store journal.Store, log zerolog.Logger) *Ledger {
	return &Ledger{
		acct:      acct,
		positions: make(map[string]*Position),
		eval:      eval,
		store:     store,
		log:       log,
	}
}

// SetExitListener installs an optional callback for auto-closed positions.
func (l *Ledger) SetExitListener(listener ExitListener) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listener = listener
}

// Open validates the spec and creates a new OPEN position with a fresh id,
// zero unrealized P&L and zero excursions. now becomes the entry timestamp.
func (l *Ledger) Open(spec OpenSpec, now time.Time) (Position, error) {
	if err := validateOpenSpec(spec, now); err != nil {
		return Position{}, err
	}

	mult := spec.Multiplier
	if mult == 0 {
		mult = DefaultMultiplier
	}

	symbol := spec.Symbol
	if symbol == "" {
		symbol = OptionSymbol(spec.Ticker, spec.Expiry, spec.Contract, spec.Strike)
	}

	p := &Position{
		ID:           id.New(),
		Ticker:       strings.ToUpper(spec.Ticker),
		Symbol:       symbol,
		Contract:     spec.Contract,
		Strike:       spec.Strike,
		Expiry:       spec.Expiry,
		Side:         spec.Side,
		Quantity:     spec.Quantity,
		Multiplier:   mult,
		EntryPrice:   spec.EntryPrice,
		EntryTime:    now,
		Status:       StatusOpen,
		CurrentPrice: spec.EntryPrice,
		Favorable:    spec.EntryPrice,
		LastUpdate:   now,
	}

	l.mu.Lock()
	l.positions[p.ID] = p
	snap := *p
	err := l.persistOpenLocked(p)
	l.mu.Unlock()
	if err != nil {
		return Position{}, err
	}

	l.log.Info().
		Str("id", p.ID).
		Str("symbol", p.Symbol).
		Str("side", string(p.Side)).
		Int64("qty", p.Quantity).
		Float64("entry", p.EntryPrice).
		Msg("position opened")

	return snap, nil
}

// ApplyPriceUpdate marks the position at the given price, refreshes its Greeks
// snapshot and excursion extremes, then consults the exit evaluator. A
// triggered exit closes the position immediately with the matching reason.
func (l *Ledger) ApplyPriceUpdate(positionID string, price float64, g Greeks, now time.Time) (Position, error) {
	if price <= 0 {
		return Position{}, invalidf("price", "must be positive, got %v", price)
	}

	l.mu.Lock()

	p, ok := l.positions[positionID]
	if !ok || p.Status == StatusClosed {
		l.mu.Unlock()
		return Position{}, ErrNotFound
	}

	// A position opened without an entry price adopts the first mark.
	if p.EntryPrice == 0 {
		p.EntryPrice = price
		p.Favorable = price
	}

	p.CurrentPrice = price
	p.UnrealizedPnL = p.PnLAt(price)
	if cb := p.CostBasis(); cb != 0 {
		p.PnLPercent = p.UnrealizedPnL / cb
	}
	if p.UnrealizedPnL > p.MaxFavorable {
		p.MaxFavorable = p.UnrealizedPnL
	}
	if p.UnrealizedPnL < p.MaxAdverse {
		p.MaxAdverse = p.UnrealizedPnL
	}
	if p.Side == Long && price > p.Favorable {
		p.Favorable = price
	}
	if p.Side == Short && price < p.Favorable {
		p.Favorable = price
	}
	p.Greeks = g
	p.LastUpdate = now

	var exited bool
	var reason ExitReason
	if l.eval != nil {
		if r, hit := l.eval.Evaluate(p, price, now); hit {
			reason = r
			exited = true
			if err := l.closeLocked(p, price, now, r); err != nil {
				l.mu.Unlock()
				return Position{}, err
			}
		}
	}

	if !exited {
		if err := l.persistOpenLocked(p); err != nil {
			l.mu.Unlock()
			return Position{}, err
		}
	}
	if err := l.recordEquityLocked(now); err != nil {
		l.mu.Unlock()
		return Position{}, err
	}

	snap := *p
	listener := l.listener
	l.mu.Unlock()

	if exited && listener != nil {
		listener.OnPositionClosed(snap.ID, reason)
	}

	return snap, nil
}

// AdjustExitConditions overwrites the provided exit fields. Absent fields are
// left untouched; an explicitly cleared field is removed. An adjustment with
// no fields at all is rejected.
func (l *Ledger) AdjustExitConditions(positionID string, adj Adjustment, now time.Time) (Position, error) {
	if adj.empty() {
		return Position{}, invalidf("adjustment", "at least one of stopLoss, profitTarget, trailingStop is required")
	}
	if err := validateAdjustment(adj); err != nil {
		return Position{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.positions[positionID]
	if !ok || p.Status == StatusClosed {
		return Position{}, ErrNotFound
	}

	p.StopLoss = adj.StopLoss.apply(p.StopLoss)
	p.ProfitTarget = adj.ProfitTarget.apply(p.ProfitTarget)
	p.TrailingStop = adj.TrailingStop.apply(p.TrailingStop)
	p.LastUpdate = now

	if err := l.persistOpenLocked(p); err != nil {
		return Position{}, err
	}

	l.log.Debug().Str("id", p.ID).Msg("exit conditions adjusted")

	return *p, nil
}

// Close transitions the position to CLOSED. exitPrice nil means the last known
// current price. An empty reason defaults to MANUAL.
func (l *Ledger) Close(positionID string, exitPrice *float64, reason ExitReason, now time.Time) (Position, error) {
	if reason == "" {
		reason = ExitManual
	}

	l.mu.Lock()

	p, ok := l.positions[positionID]
	if !ok {
		l.mu.Unlock()
		return Position{}, ErrNotFound
	}
	if p.Status == StatusClosed {
		l.mu.Unlock()
		return Position{}, ErrAlreadyClosed
	}

	price := p.CurrentPrice
	if exitPrice != nil {
		price = *exitPrice
	}

	if err := l.closeLocked(p, price, now, reason); err != nil {
		l.mu.Unlock()
		return Position{}, err
	}
	if err := l.recordEquityLocked(now); err != nil {
		l.mu.Unlock()
		return Position{}, err
	}

	snap := *p
	l.mu.Unlock()
	return snap, nil
}

// CloseAll closes every open position at its last known price.
func (l *Ledger) CloseAll(reason ExitReason, now time.Time) error {
	if reason == "" {
		reason = ExitManual
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.positions {
		if p.Status != StatusOpen {
			continue
		}
		if err := l.closeLocked(p, p.CurrentPrice, now, reason); err != nil {
			return err
		}
	}
	return l.recordEquityLocked(now)
}

// List returns copies of positions matching the filter, ordered by entry time.
func (l *Ledger) List(f Filter) ([]Position, error) {
	status := strings.ToUpper(strings.TrimSpace(f.Status))
	switch status {
	case "", string(StatusOpen), string(StatusClosed):
	default:
		return nil, invalidf("status", "must be OPEN or CLOSED, got %q", f.Status)
	}
	ticker := strings.ToUpper(strings.TrimSpace(f.Ticker))

	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Position, 0, len(l.positions))
	for _, p := range l.positions {
		if status != "" && string(p.Status) != status {
			continue
		}
		if ticker != "" && !strings.Contains(strings.ToUpper(p.Ticker), ticker) {
			continue
		}
		out = append(out, *p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].EntryTime.Equal(out[j].EntryTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].EntryTime.Before(out[j].EntryTime)
	})
	return out, nil
}

// Get returns a copy of a single position by id.
func (l *Ledger) Get(positionID string) (Position, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, ok := l.positions[positionID]
	if !ok {
		return Position{}, ErrNotFound
	}
	return *p, nil
}

// OpenPositions returns copies of the live open set.
func (l *Ledger) OpenPositions() []Position {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Position, 0, len(l.positions))
	for _, p := range l.positions {
		if p.Status == StatusOpen {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EntryTime.Equal(out[j].EntryTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].EntryTime.Before(out[j].EntryTime)
	})
	return out
}

// ClosedHistory returns copies of the closed set ordered by exit time.
func (l *Ledger) ClosedHistory() []Position {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Position, len(l.closed))
	for i, p := range l.closed {
		out[i] = *p
	}
	return out
}

// Balance returns the realized account balance and live equity.
func (l *Ledger) Balance() (balance, equity float64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balanceLocked()
}

// Restore loads persisted open positions into an empty ledger, typically right
// after construction on restart.
func (l *Ledger) Restore(recs []journal.OpenRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, r := range recs {
		p := FromOpenRecord(r)
		l.positions[p.ID] = &p
	}
}

// RestoreClosed seeds realized history from the closed-trade log so balances
// and performance queries survive a restart.
func (l *Ledger) RestoreClosed(recs []journal.ClosedRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, r := range recs {
		p := FromClosedRecord(r)
		l.positions[p.ID] = &p
		l.closed = append(l.closed, &p)
		l.realized += p.RealizedPnL
	}
	sort.Slice(l.closed, func(i, j int) bool {
		return l.closed[i].ExitTime.Before(l.closed[j].ExitTime)
	})
}

func (l *Ledger) closeLocked(p *Position, exitPrice float64, now time.Time, reason ExitReason) error {
	p.ExitPrice = exitPrice
	p.ExitTime = now
	p.ExitReason = reason
	p.RealizedPnL = p.PnLAt(exitPrice)
	p.CurrentPrice = exitPrice
	p.UnrealizedPnL = 0
	p.PnLPercent = 0
	p.Status = StatusClosed

	l.realized += p.RealizedPnL

	// Keep the closed slice ordered by exit time even if a caller supplies an
	// out-of-order timestamp.
	i := sort.Search(len(l.closed), func(i int) bool {
		return l.closed[i].ExitTime.After(p.ExitTime)
	})
	l.closed = append(l.closed, nil)
	copy(l.closed[i+1:], l.closed[i:])
	l.closed[i] = p

	if l.store != nil {
		if err := l.store.DeleteOpen(p.ID); err != nil {
			return err
		}
		if err := l.store.RecordClose(p.toClosedRecord()); err != nil {
			return err
		}
	}

	l.log.Info().
		Str("id", p.ID).
		Str("symbol", p.Symbol).
		Str("reason", string(reason)).
		Float64("exit", exitPrice).
		Float64("pnl", p.RealizedPnL).
		Msg("position closed")

	return nil
}

func (l *Ledger) persistOpenLocked(p *Position) error {
	if l.store == nil {
		return nil
	}
	return l.store.SaveOpen(p.toOpenRecord())
}

func (l *Ledger) recordEquityLocked(now time.Time) error {
	if l.store == nil {
		return nil
	}
	balance, equity := l.balanceLocked()
	var open int64
	for _, p := range l.positions {
		if p.Status == StatusOpen {
			open++
		}
	}
	return l.store.RecordEquity(journal.EquityPoint{
		Time:       now,
		Balance:    balance,
		Equity:     equity,
		OpenCount:  open,
		Unrealized: equity - balance,
	})
}

func (l *Ledger) balanceLocked() (balance, equity float64) {
	balance = l.acct.InitialBalance + l.realized
	equity = balance
	for _, p := range l.positions {
		if p.Status == StatusOpen {
			equity += p.UnrealizedPnL
		}
	}
	return balance, equity
}

func validateOpenSpec(spec OpenSpec, now time.Time) error {
	if strings.TrimSpace(spec.Ticker) == "" {
		return invalidf("ticker", "is required")
	}
	if spec.Contract != Call && spec.Contract != Put {
		return invalidf("contractType", "must be CALL or PUT, got %q", spec.Contract)
	}
	if spec.Strike <= 0 {
		return invalidf("strike", "must be positive, got %v", spec.Strike)
	}
	if spec.Expiry.IsZero() {
		return invalidf("expiration", "is required")
	}
	if spec.Expiry.Before(truncateDay(now)) {
		return invalidf("expiration", "must not be before the entry date")
	}
	if spec.Side != Long && spec.Side != Short {
		return invalidf("side", "must be LONG or SHORT, got %q", spec.Side)
	}
	if spec.Quantity <= 0 {
		return invalidf("quantity", "must be a positive contract count, got %d", spec.Quantity)
	}
	if spec.EntryPrice < 0 {
		return invalidf("entryPrice", "must not be negative, got %v", spec.EntryPrice)
	}
	if spec.Multiplier < 0 {
		return invalidf("multiplier", "must not be negative, got %v", spec.Multiplier)
	}
	return nil
}

func validateAdjustment(adj Adjustment) error {
	check := func(name string, f Field) error {
		if f.Present() && !f.clear && f.value <= 0 {
			return invalidf(name, "must be positive, got %v", f.value)
		}
		return nil
	}
	if err := check("stopLoss", adj.StopLoss); err != nil {
		return err
	}
	if err := check("profitTarget", adj.ProfitTarget); err != nil {
		return err
	}
	return check("trailingStop", adj.TrailingStop)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
