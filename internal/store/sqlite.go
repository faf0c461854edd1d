// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "journal-bot/internal/errors"
	"journal-bot/internal/models"
)

// SQLiteStore implements TradeStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based trade store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Concurrent sessions share this pool; each call is a single statement.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the trades table and indexes. Safe to run repeatedly.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		ticker TEXT NOT NULL,
		win_loss TEXT NOT NULL,
		side TEXT NOT NULL,
		rr TEXT NOT NULL,
		pnl TEXT NOT NULL,
		strategy TEXT NOT NULL,
		picture TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
	CREATE INDEX IF NOT EXISTS idx_trades_ticker ON trades(ticker);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const tradeColumns = "id, date, time, ticker, win_loss, side, rr, pnl, strategy, picture"

// CreateTrade inserts a new trade and returns the assigned id.
func (s *SQLiteStore) CreateTrade(ctx context.Context, trade models.Trade) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO trades (date, time, ticker, win_loss, side, rr, pnl, strategy, picture)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, trade.Date, trade.Time, trade.Ticker, trade.Outcome, trade.Side, trade.RR, trade.PnL, trade.Strategy, trade.Picture)
	if err != nil {
		return 0, apperrors.NewPersistenceError("create trade", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, apperrors.NewPersistenceError("create trade", err)
	}
	return id, nil
}

// GetTradeByID retrieves a single trade by primary key.
func (s *SQLiteStore) GetTradeByID(ctx context.Context, id int64) (models.Trade, error) {
	var t models.Trade
	err := s.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+` FROM trades WHERE id = ?
	`, id).Scan(&t.ID, &t.Date, &t.Time, &t.Ticker, &t.Outcome, &t.Side, &t.RR, &t.PnL, &t.Strategy, &t.Picture)
	if err == sql.ErrNoRows {
		return models.Trade{}, apperrors.ErrNotFound
	}
	if err != nil {
		return models.Trade{}, apperrors.NewPersistenceError("get trade", err)
	}
	return t, nil
}

// GetTradesByDateRange retrieves trades inside the inclusive date window.
func (s *SQLiteStore) GetTradesByDateRange(ctx context.Context, r models.DateRange) ([]models.Trade, error) {
	return s.queryTrades(ctx, `
		SELECT `+tradeColumns+` FROM trades
		WHERE date BETWEEN ? AND ? ORDER BY id ASC
	`, r.Start, r.End)
}

// GetTradesByField retrieves trades matching a field value exactly.
func (s *SQLiteStore) GetTradesByField(ctx context.Context, field FilterField, value string) ([]models.Trade, error) {
	var column string
	switch field {
	case FilterTicker:
		column = "ticker"
	case FilterSide:
		column = "side"
	case FilterOutcome:
		column = "win_loss"
	default:
		return nil, fmt.Errorf("unsupported filter field: %q", field)
	}

	return s.queryTrades(ctx, `
		SELECT `+tradeColumns+` FROM trades
		WHERE `+column+` = ? ORDER BY id ASC
	`, value)
}

// GetTradesForExport retrieves trades inside the window, optionally
// restricted to one ticker.
func (s *SQLiteStore) GetTradesForExport(ctx context.Context, ticker string, r models.DateRange) ([]models.Trade, error) {
	query := "SELECT " + tradeColumns + " FROM trades WHERE date BETWEEN ? AND ?"
	args := []interface{}{r.Start, r.End}

	if ticker != "" {
		query += " AND ticker = ?"
		args = append(args, ticker)
	}
	query += " ORDER BY id ASC"

	return s.queryTrades(ctx, query, args...)
}

// UpdateTrade applies a partial update to a trade.
func (s *SQLiteStore) UpdateTrade(ctx context.Context, id int64, update models.TradeUpdate) error {
	if update.IsZero() {
		return apperrors.ErrEmptyUpdate
	}

	query := "UPDATE trades SET "
	args := []interface{}{}

	appendSet := func(column string, value interface{}) {
		if len(args) > 0 {
			query += ", "
		}
		query += column + " = ?"
		args = append(args, value)
	}

	if update.Ticker != nil {
		appendSet("ticker", *update.Ticker)
	}
	if update.Outcome != nil {
		appendSet("win_loss", string(*update.Outcome))
	}
	if update.Side != nil {
		appendSet("side", string(*update.Side))
	}
	if update.Strategy != nil {
		appendSet("strategy", string(*update.Strategy))
	}

	query += " WHERE id = ?"
	args = append(args, id)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewPersistenceError("update trade", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTradeByID removes one trade by primary key.
func (s *SQLiteStore) DeleteTradeByID(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, id)
	if err != nil {
		return apperrors.NewPersistenceError("delete trade", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAllTrades removes every trade and returns the count deleted.
func (s *SQLiteStore) DeleteAllTrades(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM trades`)
	if err != nil {
		return 0, apperrors.NewPersistenceError("delete all trades", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewPersistenceError("delete all trades", err)
	}
	return count, nil
}

// DistinctTickers lists every ticker present in the journal.
func (s *SQLiteStore) DistinctTickers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT ticker FROM trades ORDER BY ticker ASC`)
	if err != nil {
		return nil, apperrors.NewPersistenceError("distinct tickers", err)
	}
	defer rows.Close()

	tickers := []string{}
	for rows.Next() {
		var ticker string
		if err := rows.Scan(&ticker); err != nil {
			return nil, apperrors.NewPersistenceError("distinct tickers", err)
		}
		tickers = append(tickers, ticker)
	}

	return tickers, rows.Err()
}

func (s *SQLiteStore) queryTrades(ctx context.Context, query string, args ...interface{}) ([]models.Trade, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("query trades", err)
	}
	defer rows.Close()

	trades := []models.Trade{}
	for rows.Next() {
		var t models.Trade
		if err := rows.Scan(&t.ID, &t.Date, &t.Time, &t.Ticker, &t.Outcome, &t.Side, &t.RR, &t.PnL, &t.Strategy, &t.Picture); err != nil {
			return nil, apperrors.NewPersistenceError("scan trade", err)
		}
		trades = append(trades, t)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("iterate trades", err)
	}
	return trades, nil
}
