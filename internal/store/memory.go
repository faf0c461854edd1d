package store

import (
	"context"
	"sort"
	"sync"

	apperrors "journal-bot/internal/errors"
	"journal-bot/internal/models"
)

// MemoryStore is the in-memory implementation of TradeStore used for testing
// and ephemeral runs.
type MemoryStore struct {
	mu     sync.RWMutex
	trades map[int64]models.Trade
	nextID int64
	closed bool
}

// NewMemoryStore returns a new in-memory TradeStore implementation.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		trades: make(map[int64]models.Trade),
		nextID: 1,
	}
}

// CreateTrade inserts a new trade and returns the assigned id.
func (s *MemoryStore) CreateTrade(ctx context.Context, trade models.Trade) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, apperrors.ErrStoreClosed
	}
	id := s.nextID
	s.nextID++
	trade.ID = id
	s.trades[id] = trade
	return id, nil
}

// GetTradeByID retrieves a single trade by id.
func (s *MemoryStore) GetTradeByID(ctx context.Context, id int64) (models.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.trades[id]
	if !ok {
		return models.Trade{}, apperrors.ErrNotFound
	}
	return t, nil
}

// GetTradesByDateRange retrieves trades inside the inclusive date window.
func (s *MemoryStore) GetTradesByDateRange(ctx context.Context, r models.DateRange) ([]models.Trade, error) {
	return s.collect(func(t models.Trade) bool {
		return t.Date >= r.Start && t.Date <= r.End
	}), nil
}

// GetTradesByField retrieves trades matching a field value exactly.
func (s *MemoryStore) GetTradesByField(ctx context.Context, field FilterField, value string) ([]models.Trade, error) {
	return s.collect(func(t models.Trade) bool {
		switch field {
		case FilterTicker:
			return t.Ticker == value
		case FilterSide:
			return string(t.Side) == value
		case FilterOutcome:
			return string(t.Outcome) == value
		}
		return false
	}), nil
}

// GetTradesForExport retrieves trades inside the window, optionally
// restricted to one ticker.
func (s *MemoryStore) GetTradesForExport(ctx context.Context, ticker string, r models.DateRange) ([]models.Trade, error) {
	return s.collect(func(t models.Trade) bool {
		if t.Date < r.Start || t.Date > r.End {
			return false
		}
		return ticker == "" || t.Ticker == ticker
	}), nil
}

// UpdateTrade applies a partial update to a trade.
func (s *MemoryStore) UpdateTrade(ctx context.Context, id int64, update models.TradeUpdate) error {
	if update.IsZero() {
		return apperrors.ErrEmptyUpdate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trades[id]
	if !ok {
		return apperrors.ErrNotFound
	}

	if update.Ticker != nil {
		t.Ticker = *update.Ticker
	}
	if update.Outcome != nil {
		t.Outcome = *update.Outcome
	}
	if update.Side != nil {
		t.Side = *update.Side
	}
	if update.Strategy != nil {
		t.Strategy = *update.Strategy
	}

	s.trades[id] = t
	return nil
}

// DeleteTradeByID removes one trade by id.
func (s *MemoryStore) DeleteTradeByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trades[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.trades, id)
	return nil
}

// DeleteAllTrades removes every trade and returns the count deleted.
func (s *MemoryStore) DeleteAllTrades(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := int64(len(s.trades))
	s.trades = make(map[int64]models.Trade)
	return count, nil
}

// DistinctTickers lists every ticker present in the journal.
func (s *MemoryStore) DistinctTickers(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	tickers := []string{}
	for _, t := range s.trades {
		if _, ok := seen[t.Ticker]; ok {
			continue
		}
		seen[t.Ticker] = struct{}{}
		tickers = append(tickers, t.Ticker)
	}
	sort.Strings(tickers)
	return tickers, nil
}

// Close marks the store closed; further writes fail with ErrStoreClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *MemoryStore) collect(match func(models.Trade) bool) []models.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trades := []models.Trade{}
	for _, t := range s.trades {
		if match(t) {
			trades = append(trades, t)
		}
	}
	sort.Slice(trades, func(i, j int) bool { return trades[i].ID < trades[j].ID })
	return trades
}
