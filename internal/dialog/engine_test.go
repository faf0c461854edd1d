package dialog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"journal-bot/internal/models"
	"journal-bot/internal/store"
)

// fakeExporter records what the engine hands it and returns a fixed reference.
type fakeExporter struct {
	trades []models.Trade
	scope  string
	period models.Period
	calls  int
}

func (f *fakeExporter) Export(ctx context.Context, trades []models.Trade, scope string, period models.Period) (string, error) {
	f.trades = trades
	f.scope = scope
	f.period = period
	f.calls++
	return "export.csv", nil
}

func newTestEngine(t *testing.T, policy Policy, opts ...Option) (*Engine, *store.MemoryStore, *fakeExporter) {
	t.Helper()
	st := store.NewMemoryStore()
	exporter := &fakeExporter{}
	engine := NewEngine(st, exporter, zerolog.Nop(), policy, opts...)
	return engine, st, exporter
}

// send runs one turn and fails the test on engine errors.
func send(t *testing.T, e *Engine, chatID string, ev Event) ([]Message, State) {
	t.Helper()
	msgs, state, err := e.HandleEvent(context.Background(), chatID, ev)
	if err != nil {
		t.Fatalf("HandleEvent(%+v) failed: %v", ev, err)
	}
	return msgs, state
}

func seedTrade(t *testing.T, st *store.MemoryStore, trade models.Trade) int64 {
	t.Helper()
	id, err := st.CreateTrade(context.Background(), trade)
	if err != nil {
		t.Fatalf("seed trade failed: %v", err)
	}
	return id
}

func baseTrade() models.Trade {
	return models.Trade{
		Date: "2024-01-10", Time: "09:30", Ticker: "XAUUSD",
		Outcome: models.OutcomeWin, Side: models.SideLong,
		RR: "2.5", PnL: "150", Strategy: models.StrategyMTR, Picture: "img1",
	}
}

func TestEngine_IdleShowsMenu(t *testing.T) {
	engine, _, _ := newTestEngine(t, Policy{RequireAttachment: true})

	msgs, state := send(t, engine, "chat-1", Text("/start"))
	if state != StateIdle {
		t.Errorf("Expected idle state, got %s", state)
	}
	if len(msgs) != 1 || msgs[0].Text != "Welcome to trading journal bot. Choose an option:" {
		t.Fatalf("Expected main menu, got %+v", msgs)
	}
	if len(msgs[0].Buttons) != 4 {
		t.Errorf("Expected 4 menu buttons, got %d", len(msgs[0].Buttons))
	}
}

func TestEngine_CreateFlow(t *testing.T) {
	engine, st, _ := newTestEngine(t, Policy{RequireAttachment: true})
	chatID := "chat-1"

	steps := []struct {
		ev        Event
		wantState State
		wantText  string
	}{
		{Choice("add_new_trade"), StateCreateTicker, "Please Choose Ticker's Name."},
		{Choice("XAUUSD"), StateCreateOutcome, "Trade Status? (WIN/LOSS)."},
		{Choice("Win"), StateCreateSide, "Position Side? (Long/Short)"},
		{Choice("Long"), StateCreateStrategy, "Trading Setup?"},
		{Choice("MTR"), StateCreateDate, "Please enter the date of the trade (YYYY-MM-DD):"},
		{Text("2024-01-10"), StateCreateTime, "Time Of Trade? (HH:MM)"},
		{Text("09:30"), StateCreateRR, "What is Risk:Reward Ratio?"},
		{Text("2.5"), StateCreatePnL, "What was PnL?"},
		{Text("150"), StateCreateAttachment, "Please Send a Picture of Your Trade."},
	}
	for i, step := range steps {
		msgs, state := send(t, engine, chatID, step.ev)
		if state != step.wantState {
			t.Fatalf("Step %d: expected state %s, got %s", i, step.wantState, state)
		}
		if len(msgs) == 0 || msgs[0].Text != step.wantText {
			t.Fatalf("Step %d: expected prompt %q, got %+v", i, step.wantText, msgs)
		}
	}

	msgs, state := send(t, engine, chatID, Text("").WithAttachment("img1"))
	if state != StateIdle {
		t.Errorf("Expected idle after commit, got %s", state)
	}
	if len(msgs) < 2 || msgs[0].Text != "Trade recorded successfully. The Trade ID is 1." {
		t.Fatalf("Expected commit confirmation, got %+v", msgs)
	}

	got, err := st.GetTradeByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetTradeByID failed: %v", err)
	}
	want := baseTrade()
	want.ID = 1
	if got != want {
		t.Errorf("Stored trade mismatch: got %+v, want %+v", got, want)
	}
}

func TestEngine_CreateFlow_SkipAttachment(t *testing.T) {
	engine, st, _ := newTestEngine(t, Policy{RequireAttachment: false})
	chatID := "chat-1"

	for _, ev := range []Event{
		Choice("add_new_trade"), Choice("XAUUSD"), Choice("Win"), Choice("Long"),
		Choice("MTR"), Text("2024-01-10"), Text("09:30"), Text("2.5"), Text("150"),
	} {
		send(t, engine, chatID, ev)
	}

	// The attachment prompt must offer Skip under a lax policy.
	s, release := engine.sessions.acquire(chatID)
	prompt := engine.prompt(s.State, s)
	release()
	if len(prompt.Buttons) != 1 || prompt.Buttons[0].Token != tokenSkip {
		t.Fatalf("Expected Skip button on attachment prompt, got %+v", prompt.Buttons)
	}

	msgs, state := send(t, engine, chatID, Choice(tokenSkip))
	if state != StateIdle {
		t.Errorf("Expected idle after skip-commit, got %s", state)
	}
	if !strings.HasPrefix(msgs[0].Text, "Trade recorded successfully.") {
		t.Fatalf("Expected commit confirmation, got %+v", msgs)
	}

	got, err := st.GetTradeByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetTradeByID failed: %v", err)
	}
	if got.Picture != "" {
		t.Errorf("Expected empty picture after skip, got %q", got.Picture)
	}
}

func TestEngine_CreateFlow_InvalidInputRetries(t *testing.T) {
	engine, _, _ := newTestEngine(t, Policy{RequireAttachment: true})
	chatID := "chat-1"

	send(t, engine, chatID, Choice("add_new_trade"))
	send(t, engine, chatID, Choice("XAUUSD"))

	// Nonsense outcome keeps the session in place and re-prompts.
	msgs, state := send(t, engine, chatID, Text("maybe"))
	if state != StateCreateOutcome {
		t.Errorf("Expected to stay in create/outcome, got %s", state)
	}
	if msgs[0].Text != "Sorry, I didn't understand that." {
		t.Errorf("Expected unknown-input notice, got %q", msgs[0].Text)
	}
	if msgs[1].Text != "Trade Status? (WIN/LOSS)." {
		t.Errorf("Expected re-prompt, got %q", msgs[1].Text)
	}

	send(t, engine, chatID, Choice("Win"))
	send(t, engine, chatID, Choice("Long"))
	send(t, engine, chatID, Choice("MTR"))

	msgs, state = send(t, engine, chatID, Text("10/01/2024"))
	if state != StateCreateDate {
		t.Errorf("Expected to stay in create/date, got %s", state)
	}
	if msgs[0].Text != "Invalid date. Please use YYYY-MM-DD." {
		t.Errorf("Expected date notice, got %q", msgs[0].Text)
	}

	send(t, engine, chatID, Text("2024-01-10"))
	msgs, state = send(t, engine, chatID, Text("9am"))
	if state != StateCreateTime {
		t.Errorf("Expected to stay in create/time, got %s", state)
	}
	if msgs[0].Text != "Invalid time. Please use HH:MM." {
		t.Errorf("Expected time notice, got %q", msgs[0].Text)
	}
}

func TestEngine_StrictNumericRejectsNonDecimal(t *testing.T) {
	engine, _, _ := newTestEngine(t, Policy{RequireAttachment: true, StrictNumeric: true})
	chatID := "chat-1"

	for _, ev := range []Event{
		Choice("add_new_trade"), Choice("XAUUSD"), Choice("Win"), Choice("Long"),
		Choice("MTR"), Text("2024-01-10"), Text("09:30"),
	} {
		send(t, engine, chatID, ev)
	}

	msgs, state := send(t, engine, chatID, Text("about two"))
	if state != StateCreateRR {
		t.Errorf("Expected to stay in create/rr, got %s", state)
	}
	if msgs[0].Text != "Please enter a numeric value." {
		t.Errorf("Expected numeric notice, got %q", msgs[0].Text)
	}

	if _, state = send(t, engine, chatID, Text("2.5")); state != StateCreatePnL {
		t.Errorf("Expected create/pnl after valid rr, got %s", state)
	}
}

func TestEngine_CancelFromEveryState(t *testing.T) {
	engine, _, _ := newTestEngine(t, Policy{RequireAttachment: true})

	for _, st := range AllStates() {
		if st == StateIdle {
			continue
		}
		chatID := "chat-" + string(st)

		s, release := engine.sessions.acquire(chatID)
		s.State = st
		s.Set(FieldTicker, "XAUUSD")
		release()

		msgs, state := send(t, engine, chatID, Choice(tokenCancel))
		if state != StateIdle {
			t.Errorf("Cancel from %s: expected idle, got %s", st, state)
		}
		if len(msgs) != 2 || msgs[0].Text != "Operation cancelled." {
			t.Errorf("Cancel from %s: expected cancellation notice, got %+v", st, msgs)
		}

		s, release = engine.sessions.acquire(chatID)
		if !s.Empty() {
			t.Errorf("Cancel from %s: session fields not cleared", st)
		}
		release()
	}
}

func TestEngine_CancelAsSlashCommand(t *testing.T) {
	engine, _, _ := newTestEngine(t, Policy{RequireAttachment: true})
	chatID := "chat-1"

	send(t, engine, chatID, Choice("add_new_trade"))
	msgs, state := send(t, engine, chatID, Text("/cancel"))
	if state != StateIdle {
		t.Errorf("Expected idle after /cancel, got %s", state)
	}
	if msgs[0].Text != "Operation cancelled." {
		t.Errorf("Expected cancellation notice, got %q", msgs[0].Text)
	}
}

func TestEngine_LookupByDateRange(t *testing.T) {
	engine, st, _ := newTestEngine(t, Policy{RequireAttachment: true})
	chatID := "chat-1"

	in := baseTrade()
	out := baseTrade()
	out.Date = "2024-03-01"
	seedTrade(t, st, in)
	seedTrade(t, st, out)

	send(t, engine, chatID, Choice("check_previous_trades"))
	send(t, engine, chatID, Choice("by_date_range"))

	// Malformed range input re-prompts without leaving the state.
	msgs, state := send(t, engine, chatID, Text("not-a-range"))
	if state != StateLookupDateRange {
		t.Errorf("Expected to stay in lookup/date_range, got %s", state)
	}
	if msgs[0].Text != "Invalid date range format. Please use YYYY-MM-DD to YYYY-MM-DD." {
		t.Errorf("Expected range notice, got %q", msgs[0].Text)
	}

	msgs, state = send(t, engine, chatID, Text("2024-01-01 to 2024-01-31"))
	if state != StateIdle {
		t.Errorf("Expected idle after lookup, got %s", state)
	}
	// One rendered trade plus the menu.
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 messages, got %d: %+v", len(msgs), msgs)
	}
	if !strings.Contains(msgs[0].Text, "XAUUSD") || !strings.Contains(msgs[0].Text, "2024-01-10") {
		t.Errorf("Rendered trade missing fields: %q", msgs[0].Text)
	}
}

func TestEngine_LookupNoResults(t *testing.T) {
	engine, _, _ := newTestEngine(t, Policy{RequireAttachment: true})
	chatID := "chat-1"

	send(t, engine, chatID, Choice("check_previous_trades"))
	send(t, engine, chatID, Choice("by_ticker_name"))

	msgs, state := send(t, engine, chatID, Text("GBPUSD"))
	if state != StateIdle {
		t.Errorf("Expected idle after empty lookup, got %s", state)
	}
	if msgs[0].Text != "No trades found for the given criteria." {
		t.Errorf("Expected no-results notice, got %q", msgs[0].Text)
	}
}

func TestEngine_LookupByID(t *testing.T) {
	engine, st, _ := newTestEngine(t, Policy{RequireAttachment: true})
	chatID := "chat-1"
	id := seedTrade(t, st, baseTrade())

	send(t, engine, chatID, Choice("check_previous_trades"))
	send(t, engine, chatID, Choice("by_trade_id"))

	// Non-numeric input retries the same state.
	_, state := send(t, engine, chatID, Text("abc"))
	if state != StateLookupID {
		t.Errorf("Expected to stay in lookup/id, got %s", state)
	}

	msgs, state := send(t, engine, chatID, Text("1"))
	if state != StateIdle {
		t.Errorf("Expected idle, got %s", state)
	}
	if !strings.Contains(msgs[0].Text, "Trade ID") {
		t.Errorf("Expected rendered trade for id %d, got %q", id, msgs[0].Text)
	}
}

func TestEngine_LookupBySideAndStatus(t *testing.T) {
	engine, st, _ := newTestEngine(t, Policy{RequireAttachment: true})

	long := baseTrade()
	short := baseTrade()
	short.Side = models.SideShort
	short.Outcome = models.OutcomeLoss
	seedTrade(t, st, long)
	seedTrade(t, st, short)

	send(t, engine, "a", Choice("check_previous_trades"))
	send(t, engine, "a", Choice("by_side"))
	msgs, _ := send(t, engine, "a", Choice("Short"))
	if len(msgs) != 2 || !strings.Contains(msgs[0].Text, "Short") {
		t.Errorf("Expected one Short trade, got %+v", msgs)
	}

	send(t, engine, "b", Choice("check_previous_trades"))
	send(t, engine, "b", Choice("by_status"))
	msgs, _ = send(t, engine, "b", Choice("Win"))
	if len(msgs) != 2 || !strings.Contains(msgs[0].Text, "Win") {
		t.Errorf("Expected one Win trade, got %+v", msgs)
	}
}

func TestEngine_ExportNamedPeriodWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	engine, st, exporter := newTestEngine(t, Policy{RequireAttachment: true},
		WithClock(func() time.Time { return now }))
	chatID := "chat-1"

	// Window for 1W is [now-7d, now], both ends inclusive.
	edges := map[string]bool{
		"2024-06-08": true,
		"2024-06-15": true,
		"2024-06-07": false,
	}
	for date := range edges {
		trade := baseTrade()
		trade.Date = date
		seedTrade(t, st, trade)
	}

	send(t, engine, chatID, Choice("export_csv"))
	send(t, engine, chatID, Choice("1W"))
	msgs, state := send(t, engine, chatID, Choice("all_trades"))

	if state != StateIdle {
		t.Errorf("Expected idle after export, got %s", state)
	}
	if exporter.calls != 1 {
		t.Fatalf("Expected one export call, got %d", exporter.calls)
	}
	if exporter.scope != "all_trades" || exporter.period != models.Period1W {
		t.Errorf("Wrong export metadata: scope=%s period=%s", exporter.scope, exporter.period)
	}
	if len(exporter.trades) != 2 {
		t.Fatalf("Expected 2 trades in window, got %d", len(exporter.trades))
	}
	for _, trade := range exporter.trades {
		if !edges[trade.Date] {
			t.Errorf("Trade outside window exported: %s", trade.Date)
		}
	}
	if msgs[0].Text != "Data exported successfully." || msgs[0].Document != "export.csv" {
		t.Errorf("Expected export confirmation with document, got %+v", msgs[0])
	}
}

func TestEngine_ExportCustomRangeAndTickerScope(t *testing.T) {
	now := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)
	engine, st, exporter := newTestEngine(t, Policy{RequireAttachment: true},
		WithClock(func() time.Time { return now }))
	chatID := "chat-1"

	xau := baseTrade()
	eur := baseTrade()
	eur.Ticker = "EURUSD"
	seedTrade(t, st, xau)
	seedTrade(t, st, eur)

	send(t, engine, chatID, Choice("export_csv"))
	_, state := send(t, engine, chatID, Choice("custom"))
	if state != StateExportRange {
		t.Fatalf("Expected export/range for custom period, got %s", state)
	}
	send(t, engine, chatID, Text("2024-01-01 to 2024-01-31"))

	if exporter.period != models.PeriodCustom || exporter.scope != "all_trades" {
		t.Errorf("Wrong custom export metadata: scope=%s period=%s", exporter.scope, exporter.period)
	}
	if len(exporter.trades) != 2 {
		t.Errorf("Expected 2 trades, got %d", len(exporter.trades))
	}

	// Ticker-scoped export only carries the chosen instrument.
	send(t, engine, chatID, Choice("export_csv"))
	send(t, engine, chatID, Choice("1M"))
	send(t, engine, chatID, Choice("choose_ticker"))
	send(t, engine, chatID, Text("EURUSD"))

	if exporter.scope != "EURUSD" {
		t.Errorf("Expected EURUSD scope, got %s", exporter.scope)
	}
	for _, trade := range exporter.trades {
		if trade.Ticker != "EURUSD" {
			t.Errorf("Foreign ticker in scoped export: %s", trade.Ticker)
		}
	}
}

func TestEngine_ExportNoTrades(t *testing.T) {
	engine, _, exporter := newTestEngine(t, Policy{RequireAttachment: true})
	chatID := "chat-1"

	send(t, engine, chatID, Choice("export_csv"))
	send(t, engine, chatID, Choice("1D"))
	msgs, state := send(t, engine, chatID, Choice("all_trades"))

	if state != StateIdle {
		t.Errorf("Expected idle, got %s", state)
	}
	if exporter.calls != 0 {
		t.Errorf("Exporter must not run on empty result, got %d calls", exporter.calls)
	}
	if msgs[0].Text != "No trades found for the selected criteria." {
		t.Errorf("Expected no-trades notice, got %q", msgs[0].Text)
	}
}

func TestEngine_UpdateSide(t *testing.T) {
	engine, st, _ := newTestEngine(t, Policy{RequireAttachment: true})
	chatID := "chat-1"
	id := seedTrade(t, st, baseTrade())

	send(t, engine, chatID, Choice("update_trades"))
	send(t, engine, chatID, Choice("update_trade_by_id"))
	msgs, state := send(t, engine, chatID, Text("1"))
	if state != StateUpdateField {
		t.Fatalf("Expected update/field, got %s", state)
	}
	if msgs[0].Text != "Trade found, What would you like to update?" {
		t.Errorf("Expected field menu, got %q", msgs[0].Text)
	}

	send(t, engine, chatID, Choice("update_side"))
	msgs, state = send(t, engine, chatID, Choice("Short"))
	if state != StateIdle {
		t.Errorf("Expected idle after update, got %s", state)
	}
	if msgs[0].Text != "Side updated successfully to Short." {
		t.Errorf("Expected update confirmation, got %q", msgs[0].Text)
	}

	got, err := st.GetTradeByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetTradeByID failed: %v", err)
	}
	want := baseTrade()
	want.ID = id
	want.Side = models.SideShort
	if got != want {
		t.Errorf("Update touched unrelated fields: got %+v, want %+v", got, want)
	}
}

func TestEngine_UpdateTargetIDNotFoundRetries(t *testing.T) {
	engine, _, _ := newTestEngine(t, Policy{RequireAttachment: true})
	chatID := "chat-1"

	send(t, engine, chatID, Choice("update_trades"))
	send(t, engine, chatID, Choice("update_trade_by_id"))

	msgs, state := send(t, engine, chatID, Text("42"))
	if state != StateUpdateTargetID {
		t.Errorf("Expected to stay in update/target_id, got %s", state)
	}
	if msgs[0].Text != "Trade ID not found. Please enter a valid Trade ID:" {
		t.Errorf("Expected not-found notice, got %q", msgs[0].Text)
	}
}

func TestEngine_UpdateBackKeepsTradeID(t *testing.T) {
	engine, st, _ := newTestEngine(t, Policy{RequireAttachment: true})
	chatID := "chat-1"
	seedTrade(t, st, baseTrade())

	send(t, engine, chatID, Choice("update_trades"))
	send(t, engine, chatID, Choice("update_trade_by_id"))
	send(t, engine, chatID, Text("1"))
	send(t, engine, chatID, Choice("update_side"))

	// Back from the new-value step returns to the field menu.
	_, state := send(t, engine, chatID, Choice(tokenBack))
	if state != StateUpdateField {
		t.Fatalf("Expected update/field after back, got %s", state)
	}

	// The captured trade id survives, so a new branch applies without re-asking.
	send(t, engine, chatID, Choice("update_ticker"))
	msgs, state := send(t, engine, chatID, Text("EURUSD"))
	if state != StateIdle {
		t.Errorf("Expected idle after update, got %s", state)
	}
	if msgs[0].Text != "Ticker updated successfully to EURUSD." {
		t.Errorf("Expected ticker confirmation, got %q", msgs[0].Text)
	}

	got, _ := st.GetTradeByID(context.Background(), 1)
	if got.Ticker != "EURUSD" {
		t.Errorf("Ticker not updated: %s", got.Ticker)
	}
}

func TestEngine_RemoveTrade(t *testing.T) {
	engine, st, _ := newTestEngine(t, Policy{RequireAttachment: true})
	chatID := "chat-1"
	id := seedTrade(t, st, baseTrade())

	send(t, engine, chatID, Choice("update_trades"))
	send(t, engine, chatID, Choice("remove_trade"))
	msgs, state := send(t, engine, chatID, Text("1"))
	if state != StateRemoveConfirm {
		t.Fatalf("Expected update/remove_confirm, got %s", state)
	}
	if msgs[0].Text != "Are you sure you want to remove this trade?" {
		t.Errorf("Expected confirmation prompt, got %q", msgs[0].Text)
	}

	msgs, state = send(t, engine, chatID, Choice("confirm_remove_trade"))
	if state != StateIdle {
		t.Errorf("Expected idle after removal, got %s", state)
	}
	if msgs[0].Text != "Trade with ID 1 has been removed." {
		t.Errorf("Expected removal confirmation, got %q", msgs[0].Text)
	}

	if _, err := st.GetTradeByID(context.Background(), id); err == nil {
		t.Error("Trade still present after removal")
	}
}

func TestEngine_RemoveTradeCancelled(t *testing.T) {
	engine, st, _ := newTestEngine(t, Policy{RequireAttachment: true})
	chatID := "chat-1"
	id := seedTrade(t, st, baseTrade())

	send(t, engine, chatID, Choice("update_trades"))
	send(t, engine, chatID, Choice("remove_trade"))
	send(t, engine, chatID, Text("1"))

	_, state := send(t, engine, chatID, Choice(tokenCancel))
	if state != StateIdle {
		t.Errorf("Expected idle after cancel, got %s", state)
	}
	if _, err := st.GetTradeByID(context.Background(), id); err != nil {
		t.Errorf("Trade deleted despite cancel: %v", err)
	}
}

func TestEngine_WipeJournal(t *testing.T) {
	engine, st, _ := newTestEngine(t, Policy{RequireAttachment: true})
	chatID := "chat-1"
	seedTrade(t, st, baseTrade())
	seedTrade(t, st, baseTrade())

	send(t, engine, chatID, Choice("update_trades"))
	msgs, state := send(t, engine, chatID, Choice("remove_all_data"))
	if state != StateWipeConfirm {
		t.Fatalf("Expected update/wipe_confirm, got %s", state)
	}
	if msgs[0].Text != "Are you sure you want to remove the whole database?" {
		t.Errorf("Expected wipe prompt, got %q", msgs[0].Text)
	}

	msgs, state = send(t, engine, chatID, Choice("confirm_remove_all_data"))
	if state != StateIdle {
		t.Errorf("Expected idle after wipe, got %s", state)
	}
	if msgs[0].Text != "The whole database has been removed. 2 trades deleted." {
		t.Errorf("Expected wipe confirmation, got %q", msgs[0].Text)
	}

	tickers, _ := st.DistinctTickers(context.Background())
	if len(tickers) != 0 {
		t.Errorf("Journal not empty after wipe: %v", tickers)
	}
}

func TestEngine_WipeJournalCancelled(t *testing.T) {
	engine, st, _ := newTestEngine(t, Policy{RequireAttachment: true})
	chatID := "chat-1"
	seedTrade(t, st, baseTrade())

	send(t, engine, chatID, Choice("update_trades"))
	send(t, engine, chatID, Choice("remove_all_data"))
	_, state := send(t, engine, chatID, Choice("cancel_remove_all_data"))
	if state != StateIdle {
		t.Errorf("Expected idle after wipe cancel, got %s", state)
	}

	if _, err := st.GetTradeByID(context.Background(), 1); err != nil {
		t.Errorf("Trade lost despite wipe cancel: %v", err)
	}
}

func TestEngine_SessionIsolation(t *testing.T) {
	engine, _, _ := newTestEngine(t, Policy{RequireAttachment: true})

	// Two chats progress through different flows independently.
	_, stateA := send(t, engine, "chat-a", Choice("add_new_trade"))
	_, stateB := send(t, engine, "chat-b", Choice("check_previous_trades"))

	if stateA != StateCreateTicker {
		t.Errorf("Chat A: expected create/ticker, got %s", stateA)
	}
	if stateB != StateLookupMenu {
		t.Errorf("Chat B: expected lookup/menu, got %s", stateB)
	}

	_, stateA = send(t, engine, "chat-a", Choice("XAUUSD"))
	if stateA != StateCreateOutcome {
		t.Errorf("Chat A: expected create/outcome, got %s", stateA)
	}
	if got, _ := engine.sessions.Peek("chat-b"); got != StateLookupMenu {
		t.Errorf("Chat B state disturbed by chat A: %s", got)
	}
}
