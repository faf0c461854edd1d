package models

import (
	"strings"
	"testing"
)

func TestParseOutcome(t *testing.T) {
	for _, valid := range []string{"Win", "Loss"} {
		if _, err := ParseOutcome(valid); err != nil {
			t.Errorf("ParseOutcome(%q) failed: %v", valid, err)
		}
	}
	for _, invalid := range []string{"win", "WIN", "Draw", ""} {
		if _, err := ParseOutcome(invalid); err == nil {
			t.Errorf("ParseOutcome(%q): expected error", invalid)
		}
	}
}

func TestParseSide(t *testing.T) {
	for _, valid := range []string{"Long", "Short"} {
		if _, err := ParseSide(valid); err != nil {
			t.Errorf("ParseSide(%q) failed: %v", valid, err)
		}
	}
	for _, invalid := range []string{"long", "Buy", ""} {
		if _, err := ParseSide(invalid); err == nil {
			t.Errorf("ParseSide(%q): expected error", invalid)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	for _, valid := range Strategies {
		if _, err := ParseStrategy(string(valid)); err != nil {
			t.Errorf("ParseStrategy(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseStrategy("Scalping"); err == nil {
		t.Error("ParseStrategy of unknown setup: expected error")
	}
}

func TestTradeUpdateIsZero(t *testing.T) {
	if !(TradeUpdate{}).IsZero() {
		t.Error("Empty update should be zero")
	}
	ticker := "XAUUSD"
	if (TradeUpdate{Ticker: &ticker}).IsZero() {
		t.Error("Update with ticker should not be zero")
	}
}

func TestTradeRender(t *testing.T) {
	trade := Trade{
		ID: 7, Date: "2024-01-10", Time: "09:30", Ticker: "XAUUSD",
		Outcome: OutcomeWin, Side: SideLong, RR: "2.5", PnL: "150",
		Strategy: StrategyMTR, Picture: "img1",
	}
	rendered := trade.Render()

	for _, line := range []string{
		"Trade ID: 7",
		"Date: 2024-01-10",
		"Time: 09:30",
		"Ticker: XAUUSD",
		"Side: Long",
		"Status: Win",
		"PnL: 150",
		"RR: 2.5",
		"Strategy: MTR",
	} {
		if !strings.Contains(rendered, line) {
			t.Errorf("Render missing %q:\n%s", line, rendered)
		}
	}
	// The attachment reference is internal and never rendered.
	if strings.Contains(rendered, "img1") {
		t.Errorf("Render leaked picture reference:\n%s", rendered)
	}
}
