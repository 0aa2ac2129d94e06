// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS open_positions (
	position_id TEXT PRIMARY KEY,
	ticker TEXT NOT NULL,
	symbol TEXT NOT NULL,
	contract TEXT NOT NULL,
	strike REAL NOT NULL,
	expiry DATETIME NOT NULL,
	side TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	multiplier REAL NOT NULL,
	entry_price REAL NOT NULL,
	entry_time DATETIME NOT NULL,
	current_price REAL NOT NULL,
	max_favorable REAL NOT NULL,
	max_adverse REAL NOT NULL,
	favorable REAL NOT NULL,
	stop_loss REAL,
	profit_target REAL,
	trailing_stop REAL,
	last_update DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS closed_trades (
	position_id TEXT PRIMARY KEY,
	ticker TEXT NOT NULL,
	symbol TEXT NOT NULL,
	contract TEXT NOT NULL,
	strike REAL NOT NULL,
	expiry DATETIME NOT NULL,
	side TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	multiplier REAL NOT NULL,
	entry_price REAL NOT NULL,
	entry_time DATETIME NOT NULL,
	exit_price REAL NOT NULL,
	exit_time DATETIME NOT NULL,
	reason TEXT NOT NULL,
	realized_pnl REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	time DATETIME NOT NULL,
	balance REAL NOT NULL,
	equity REAL NOT NULL,
	open_count INTEGER NOT NULL,
	unrealized REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_closed_exit_time ON closed_trades(exit_time);
CREATE INDEX IF NOT EXISTS idx_equity_time ON equity(time);
`
