// Package models defines the domain types for the trade journal.
package models

import (
	"fmt"
	"strings"
)

// Outcome represents the result of a trade.
type Outcome string

const (
	OutcomeWin  Outcome = "Win"
	OutcomeLoss Outcome = "Loss"
)

// Side represents the direction of a trade.
type Side string

const (
	SideLong  Side = "Long"
	SideShort Side = "Short"
)

// Strategy represents the trading setup used for a trade.
type Strategy string

const (
	StrategyMTR       Strategy = "MTR"
	StrategyFF        Strategy = "FF"
	StrategyCloseNYSE Strategy = "Close_NYSE"
	StrategyDHL       Strategy = "DHL"
)

// SuggestedTickers is the set offered as buttons when recording a trade.
// Ticker input is open-ended; these are only the common choices.
var SuggestedTickers = []string{"XAUUSD", "EURUSD"}

// Strategies lists every selectable strategy.
var Strategies = []Strategy{StrategyDHL, StrategyCloseNYSE, StrategyMTR, StrategyFF}

// ParseOutcome validates a raw outcome value.
func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case OutcomeWin, OutcomeLoss:
		return Outcome(s), nil
	}
	return "", fmt.Errorf("invalid outcome: %q", s)
}

// ParseSide validates a raw side value.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideLong, SideShort:
		return Side(s), nil
	}
	return "", fmt.Errorf("invalid side: %q", s)
}

// ParseStrategy validates a raw strategy value.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyMTR, StrategyFF, StrategyCloseNYSE, StrategyDHL:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("invalid strategy: %q", s)
}

// Trade represents one persisted trade-journal record.
type Trade struct {
	ID       int64
	Date     string // YYYY-MM-DD
	Time     string // HH:MM
	Ticker   string
	Outcome  Outcome
	Side     Side
	RR       string // free text, see journal.strict_numeric
	PnL      string // free text, see journal.strict_numeric
	Strategy Strategy
	Picture  string // opaque attachment reference, may be empty
}

// TradeUpdate carries a partial update; nil fields keep their prior value.
type TradeUpdate struct {
	Ticker   *string
	Outcome  *Outcome
	Side     *Side
	Strategy *Strategy
}

// IsZero reports whether the update changes nothing.
func (u TradeUpdate) IsZero() bool {
	return u.Ticker == nil && u.Outcome == nil && u.Side == nil && u.Strategy == nil
}

// Render formats a trade as the labeled lines shown in chat.
func (t Trade) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Trade ID: %d\n", t.ID)
	fmt.Fprintf(&b, "Date: %s\n", t.Date)
	fmt.Fprintf(&b, "Time: %s\n", t.Time)
	fmt.Fprintf(&b, "Ticker: %s\n", t.Ticker)
	fmt.Fprintf(&b, "Side: %s\n", t.Side)
	fmt.Fprintf(&b, "Status: %s\n", t.Outcome)
	fmt.Fprintf(&b, "PnL: %s\n", t.PnL)
	fmt.Fprintf(&b, "RR: %s\n", t.RR)
	fmt.Fprintf(&b, "Strategy: %s\n", t.Strategy)
	return b.String()
}
