package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetClosed returns a single closed-trade record by position id.
func (s *SQLite) GetClosed(id string) (ClosedRecord, error) {
	row := s.db.QueryRow(`
		SELECT position_id, ticker, symbol, contract, strike, expiry, side, quantity,
		       multiplier, entry_price, entry_time, exit_price, exit_time, reason, realized_pnl
		FROM closed_trades
		WHERE position_id = ?`, id)

	var r ClosedRecord
	err := row.Scan(
		&r.ID, &r.Ticker, &r.Symbol, &r.Contract, &r.Strike, &r.Expiry, &r.Side,
		&r.Quantity, &r.Multiplier, &r.EntryPrice, &r.EntryTime, &r.ExitPrice,
		&r.ExitTime, &r.Reason, &r.RealizedPnL,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return ClosedRecord{}, fmt.Errorf("closed trade %q not found", id)
		}
		return ClosedRecord{}, err
	}
	return r, nil
}

// ListClosed returns the full closed-trade log ordered by exit time.
func (s *SQLite) ListClosed() ([]ClosedRecord, error) {
	return s.listClosed(`
		SELECT position_id, ticker, symbol, contract, strike, expiry, side, quantity,
		       multiplier, entry_price, entry_time, exit_price, exit_time, reason, realized_pnl
		FROM closed_trades
		ORDER BY exit_time ASC`)
}

// ListClosedBetween returns closed trades whose exit_time is within [start, end).
func (s *SQLite) ListClosedBetween(start, end time.Time) ([]ClosedRecord, error) {
	return s.listClosed(`
		SELECT position_id, ticker, symbol, contract, strike, expiry, side, quantity,
		       multiplier, entry_price, entry_time, exit_price, exit_time, reason, realized_pnl
		FROM closed_trades
		WHERE exit_time >= ? AND exit_time < ?
		ORDER BY exit_time ASC`, start, end)
}

func (s *SQLite) listClosed(query string, args ...any) ([]ClosedRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ClosedRecord
	for rows.Next() {
		var r ClosedRecord
		if err := rows.Scan(
			&r.ID, &r.Ticker, &r.Symbol, &r.Contract, &r.Strike, &r.Expiry, &r.Side,
			&r.Quantity, &r.Multiplier, &r.EntryPrice, &r.EntryTime, &r.ExitPrice,
			&r.ExitTime, &r.Reason, &r.RealizedPnL,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEquityBetween returns equity snapshots recorded within [start, end).
func (s *SQLite) ListEquityBetween(start, end time.Time) ([]EquityPoint, error) {
	rows, err := s.db.Query(`
		SELECT time, balance, equity, open_count, unrealized
		FROM equity
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquityPoint
	for rows.Next() {
		var e EquityPoint
		if err := rows.Scan(&e.Time, &e.Balance, &e.Equity, &e.OpenCount, &e.Unrealized); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
