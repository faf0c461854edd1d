// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"journal-bot/internal/models"
)

// FilterField identifies a column usable for exact-match lookups.
type FilterField string

const (
	FilterTicker  FilterField = "ticker"
	FilterSide    FilterField = "side"
	FilterOutcome FilterField = "outcome"
)

// TradeStore defines the interface for trade persistence.
//
// All list operations return trades ordered by id ascending and an empty
// slice, never nil results, when nothing matches. Each operation executes as
// a single atomic unit; no transaction spans calls.
type TradeStore interface {
	// CreateTrade inserts a new trade and returns the assigned id.
	CreateTrade(ctx context.Context, trade models.Trade) (int64, error)

	// GetTradeByID retrieves a single trade, or errors.ErrNotFound.
	GetTradeByID(ctx context.Context, id int64) (models.Trade, error)

	// GetTradesByDateRange retrieves trades with dates inside the inclusive window.
	GetTradesByDateRange(ctx context.Context, r models.DateRange) ([]models.Trade, error)

	// GetTradesByField retrieves trades matching a field value exactly.
	GetTradesByField(ctx context.Context, field FilterField, value string) ([]models.Trade, error)

	// GetTradesForExport retrieves trades inside the window, optionally
	// restricted to one ticker (empty ticker means all).
	GetTradesForExport(ctx context.Context, ticker string, r models.DateRange) ([]models.Trade, error)

	// UpdateTrade applies a partial update; unset fields keep their prior
	// value. Returns errors.ErrNotFound if the id is absent.
	UpdateTrade(ctx context.Context, id int64, update models.TradeUpdate) error

	// DeleteTradeByID removes one trade, or errors.ErrNotFound.
	DeleteTradeByID(ctx context.Context, id int64) error

	// DeleteAllTrades removes every trade and returns the count deleted.
	DeleteAllTrades(ctx context.Context) (int64, error)

	// DistinctTickers lists every ticker present in the journal.
	DistinctTickers(ctx context.Context) ([]string, error)

	// Close releases the underlying resources.
	Close() error
}
