package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) SaveOpen(r OpenRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO open_positions
		(position_id, ticker, symbol, contract, strike, expiry, side, quantity, multiplier,
		 entry_price, entry_time, current_price, max_favorable, max_adverse, favorable,
		 stop_loss, profit_target, trailing_stop, last_update)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(position_id) DO UPDATE SET
			current_price = excluded.current_price,
			max_favorable = excluded.max_favorable,
			max_adverse = excluded.max_adverse,
			favorable = excluded.favorable,
			stop_loss = excluded.stop_loss,
			profit_target = excluded.profit_target,
			trailing_stop = excluded.trailing_stop,
			last_update = excluded.last_update`,
		r.ID, r.Ticker, r.Symbol, r.Contract, r.Strike, r.Expiry, r.Side, r.Quantity,
		r.Multiplier, r.EntryPrice, r.EntryTime, r.CurrentPrice, r.MaxFavorable,
		r.MaxAdverse, r.Favorable, r.StopLoss, r.ProfitTarget, r.TrailingStop, r.LastUpdate,
	)
	return err
}

func (s *SQLite) DeleteOpen(id string) error {
	_, err := s.db.Exec(`DELETE FROM open_positions WHERE position_id = ?`, id)
	return err
}

func (s *SQLite) RecordClose(r ClosedRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO closed_trades
		(position_id, ticker, symbol, contract, strike, expiry, side, quantity, multiplier,
		 entry_price, entry_time, exit_price, exit_time, reason, realized_pnl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Ticker, r.Symbol, r.Contract, r.Strike, r.Expiry, r.Side, r.Quantity,
		r.Multiplier, r.EntryPrice, r.EntryTime, r.ExitPrice, r.ExitTime, r.Reason,
		r.RealizedPnL,
	)
	return err
}

func (s *SQLite) RecordEquity(e EquityPoint) error {
	_, err := s.db.Exec(`
		INSERT INTO equity (time, balance, equity, open_count, unrealized)
		VALUES (?, ?, ?, ?, ?)`,
		e.Time, e.Balance, e.Equity, e.OpenCount, e.Unrealized,
	)
	return err
}

// LoadOpen returns every persisted open position so a ledger can be
// reconstructed after a restart.
func (s *SQLite) LoadOpen() ([]OpenRecord, error) {
	rows, err := s.db.Query(`
		SELECT position_id, ticker, symbol, contract, strike, expiry, side, quantity,
		       multiplier, entry_price, entry_time, current_price, max_favorable,
		       max_adverse, favorable, stop_loss, profit_target, trailing_stop, last_update
		FROM open_positions
		ORDER BY entry_time ASC, position_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OpenRecord
	for rows.Next() {
		var r OpenRecord
		var stop, target, trail sql.NullFloat64
		if err := rows.Scan(
			&r.ID, &r.Ticker, &r.Symbol, &r.Contract, &r.Strike, &r.Expiry, &r.Side,
			&r.Quantity, &r.Multiplier, &r.EntryPrice, &r.EntryTime, &r.CurrentPrice,
			&r.MaxFavorable, &r.MaxAdverse, &r.Favorable, &stop, &target, &trail,
			&r.LastUpdate,
		); err != nil {
			return nil, err
		}
		if stop.Valid {
			v := stop.Float64
			r.StopLoss = &v
		}
		if target.Valid {
			v := target.Float64
			r.ProfitTarget = &v
		}
		if trail.Valid {
			v := trail.Float64
			r.TrailingStop = &v
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
