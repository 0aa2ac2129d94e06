package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

func fp(v float64) *float64 { return &v }

func openRec(id string) OpenRecord {
	entry := time.Date(2026, 1, 5, 14, 30, 0, 0, time.UTC)
	return OpenRecord{
		ID:           id,
		Ticker:       "SPY",
		Symbol:       "SPY260320C00450000",
		Contract:     "CALL",
		Strike:       450,
		Expiry:       time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		Side:         "LONG",
		Quantity:     5,
		Multiplier:   100,
		EntryPrice:   2.45,
		EntryTime:    entry,
		CurrentPrice: 2.45,
		Favorable:    2.45,
		LastUpdate:   entry,
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	s, path := newTestSQLite(t)
	require.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('open_positions','closed_trades','equity')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["open_positions"])
	assert.True(t, found["closed_trades"])
	assert.True(t, found["equity"])
}

func TestSQLiteSaveOpenUpsertAndLoad(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)

	rec := openRec("P1")
	require.NoError(t, s.SaveOpen(rec))

	// Upsert: same id with changed mutable state.
	rec.CurrentPrice = 2.78
	rec.MaxFavorable = 165
	rec.StopLoss = fp(2.00)
	rec.LastUpdate = rec.LastUpdate.Add(time.Minute)
	require.NoError(t, s.SaveOpen(rec))

	require.NoError(t, s.SaveOpen(openRec("P2")))

	got, err := s.LoadOpen()
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "P1", got[0].ID)
	assert.Equal(t, 2.78, got[0].CurrentPrice)
	assert.Equal(t, 165.0, got[0].MaxFavorable)
	require.NotNil(t, got[0].StopLoss)
	assert.Equal(t, 2.00, *got[0].StopLoss)
	assert.Nil(t, got[0].ProfitTarget)
	assert.Nil(t, got[0].TrailingStop)

	assert.Equal(t, "P2", got[1].ID)
	assert.Nil(t, got[1].StopLoss)
}

func TestSQLiteDeleteOpen(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)

	require.NoError(t, s.SaveOpen(openRec("P1")))
	require.NoError(t, s.DeleteOpen("P1"))

	got, err := s.LoadOpen()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteRecordCloseRoundTrip(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)

	rec := ClosedRecord{
		ID:          "P1",
		Ticker:      "SPY",
		Symbol:      "SPY260320C00450000",
		Contract:    "CALL",
		Strike:      450,
		Expiry:      time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		Side:        "LONG",
		Quantity:    5,
		Multiplier:  100,
		EntryPrice:  2.45,
		EntryTime:   time.Date(2026, 1, 5, 14, 30, 0, 0, time.UTC),
		ExitPrice:   2.78,
		ExitTime:    time.Date(2026, 1, 7, 15, 45, 0, 0, time.UTC),
		Reason:      "PROFIT_TARGET",
		RealizedPnL: 165,
	}

	require.NoError(t, s.RecordClose(rec))

	got, err := s.GetClosed("P1")
	require.NoError(t, err)
	assert.Equal(t, rec.Reason, got.Reason)
	assert.Equal(t, rec.RealizedPnL, got.RealizedPnL)
	assert.True(t, rec.ExitTime.Equal(got.ExitTime))

	_, err = s.GetClosed("missing")
	assert.Error(t, err)
}

func TestSQLiteEquity(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)

	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.RecordEquity(EquityPoint{
			Time:    base.Add(time.Duration(i) * time.Hour),
			Balance: 100000,
			Equity:  100000 + float64(i)*10,
		}))
	}

	got, err := s.ListEquityBetween(base, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 100010.0, got[1].Equity)
}
