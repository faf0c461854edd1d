package dialog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "journal-bot/internal/errors"
	"journal-bot/internal/models"
	"journal-bot/internal/store"
)

// Exporter receives the finished result set of an export flow. The concrete
// formatting (CSV file, upload) lives outside the engine; the returned
// reference is handed back to the user as a document.
type Exporter interface {
	Export(ctx context.Context, trades []models.Trade, scope string, period models.Period) (string, error)
}

// Policy holds the configurable strictness knobs of the create flow.
type Policy struct {
	// RequireAttachment demands a picture before a trade can be saved.
	RequireAttachment bool
	// StrictNumeric requires rr/pnl input to parse as decimals.
	StrictNumeric bool
}

// Engine drives one logical conversation per chat through the dialog graph.
// It is purely reactive: one inbound event produces outbound messages and a
// state change, nothing runs in between turns.
type Engine struct {
	store    store.TradeStore
	exporter Exporter
	logger   zerolog.Logger
	policy   Policy
	sessions *SessionManager
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source. Used by the export flow to
// resolve named periods, and by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a dialog engine over the given store and exporter.
func NewEngine(st store.TradeStore, exporter Exporter, logger zerolog.Logger, policy Policy, opts ...Option) *Engine {
	e := &Engine{
		store:    st,
		exporter: exporter,
		logger:   logger,
		policy:   policy,
		sessions: NewSessionManager(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sessions exposes the engine's session manager for diagnostics and tests.
func (e *Engine) Sessions() *SessionManager {
	return e.sessions
}

// HandleEvent processes one inbound event for a chat and returns the
// outbound messages plus the state the session is left in.
//
// The returned error is non-nil only for store failures and internal
// defects; the messages already carry the user-facing explanation and the
// session has been returned to idle, so callers only need the error for
// logging.
func (e *Engine) HandleEvent(ctx context.Context, chatID string, ev Event) ([]Message, State, error) {
	s, release := e.sessions.acquire(chatID)
	defer release()

	// Global cancel override, checked before any per-state dispatch.
	if s.State != StateIdle && isCancel(ev) {
		s.Reset()
		e.logger.Info().Str("chat_id", chatID).Msg("conversation cancelled")
		return []Message{{Text: "Operation cancelled."}, e.mainMenu()}, s.State, nil
	}

	msgs, err := e.dispatch(ctx, s, ev)
	if err != nil {
		return e.recover(s, err), s.State, err
	}
	return msgs, s.State, nil
}

func (e *Engine) dispatch(ctx context.Context, s *Session, ev Event) ([]Message, error) {
	switch s.State {
	case StateIdle:
		return e.handleIdle(s, ev)

	case StateCreateTicker:
		return e.handleCreateTicker(s, ev)
	case StateCreateOutcome:
		return e.handleCreateOutcome(s, ev)
	case StateCreateSide:
		return e.handleCreateSide(s, ev)
	case StateCreateStrategy:
		return e.handleCreateStrategy(s, ev)
	case StateCreateDate:
		return e.handleCreateDate(s, ev)
	case StateCreateTime:
		return e.handleCreateTime(s, ev)
	case StateCreateRR:
		return e.handleCreateNumeric(s, ev, FieldRR, StateCreatePnL)
	case StateCreatePnL:
		return e.handleCreateNumeric(s, ev, FieldPnL, StateCreateAttachment)
	case StateCreateAttachment:
		return e.handleCreateAttachment(ctx, s, ev)

	case StateLookupMenu:
		return e.handleLookupMenu(s, ev)
	case StateLookupDateRange:
		return e.handleLookupDateRange(ctx, s, ev)
	case StateLookupID:
		return e.handleLookupID(ctx, s, ev)
	case StateLookupTicker:
		return e.handleLookupTicker(ctx, s, ev)
	case StateLookupSide:
		return e.handleLookupChoice(ctx, s, ev, store.FilterSide)
	case StateLookupOutcome:
		return e.handleLookupChoice(ctx, s, ev, store.FilterOutcome)

	case StateExportPeriod:
		return e.handleExportPeriod(s, ev)
	case StateExportRange:
		return e.handleExportRange(ctx, s, ev)
	case StateExportScope:
		return e.handleExportScope(ctx, s, ev)
	case StateExportTicker:
		return e.handleExportTicker(ctx, s, ev)

	case StateUpdateMenu:
		return e.handleUpdateMenu(s, ev)
	case StateUpdateTargetID:
		return e.handleUpdateTargetID(ctx, s, ev)
	case StateUpdateField:
		return e.handleUpdateField(s, ev)
	case StateUpdateNewTicker:
		return e.handleUpdateNewTicker(ctx, s, ev)
	case StateUpdateNewOutcome:
		return e.handleUpdateNewOutcome(ctx, s, ev)
	case StateUpdateNewSide:
		return e.handleUpdateNewSide(ctx, s, ev)
	case StateUpdateNewStrategy:
		return e.handleUpdateNewStrategy(ctx, s, ev)
	case StateRemoveTargetID:
		return e.handleRemoveTargetID(ctx, s, ev)
	case StateRemoveConfirm:
		return e.handleRemoveConfirm(ctx, s, ev)
	case StateWipeConfirm:
		return e.handleWipeConfirm(ctx, s, ev)
	}

	// Unknown state tag is a defect; fall back to the menu.
	e.logger.Error().Str("chat_id", s.ChatID).Str("state", string(s.State)).Msg("session in unknown state")
	s.Reset()
	return []Message{e.mainMenu()}, nil
}

// recover turns a dispatch error into user-facing messages. Validation
// errors are handled inside the handlers; everything reaching here aborts
// the flow and returns the user to the main menu.
func (e *Engine) recover(s *Session, err error) []Message {
	var incomplete *apperrors.IncompleteRecordError
	if apperrors.As(err, &incomplete) {
		e.logger.Error().Str("chat_id", s.ChatID).Strs("missing", incomplete.Missing).
			Msg("commit reached with missing fields")
	} else {
		e.logger.Error().Str("chat_id", s.ChatID).Str("state", string(s.State)).Err(err).
			Msg("turn failed")
	}
	s.Reset()
	return []Message{
		{Text: "Something went wrong while accessing the journal. Returning to the main menu."},
		e.mainMenu(),
	}
}

// retry re-prompts the current state after invalid or unexpected input.
func (e *Engine) retry(s *Session, notice string) []Message {
	return []Message{{Text: notice}, e.prompt(s.State, s)}
}

// advance stores nothing, moves the session to the next state and prompts it.
func (e *Engine) advance(s *Session, next State) []Message {
	s.State = next
	return []Message{e.prompt(next, s)}
}

const unknownInputNotice = "Sorry, I didn't understand that."

// ----------------------------------------------------------------------------
// Idle
// ----------------------------------------------------------------------------

func (e *Engine) handleIdle(s *Session, ev Event) ([]Message, error) {
	if ev.Kind == EventChoice {
		switch ev.Data {
		case tokenAddTrade:
			return e.advance(s, StateCreateTicker), nil
		case tokenCheckTrades:
			return e.advance(s, StateLookupMenu), nil
		case tokenExportCSV:
			return e.advance(s, StateExportPeriod), nil
		case tokenUpdateMenu:
			return e.advance(s, StateUpdateMenu), nil
		}
	}
	// Any text in idle, /start included, re-offers the menu.
	return []Message{e.mainMenu()}, nil
}

// ----------------------------------------------------------------------------
// Create flow
// ----------------------------------------------------------------------------

func (e *Engine) handleCreateTicker(s *Session, ev Event) ([]Message, error) {
	ticker, err := parseTicker(ev.Data)
	if err != nil {
		return e.retry(s, "Ticker must not be empty."), nil
	}
	s.Set(FieldTicker, ticker)
	return e.advance(s, StateCreateOutcome), nil
}

func (e *Engine) handleCreateOutcome(s *Session, ev Event) ([]Message, error) {
	outcome, err := models.ParseOutcome(ev.Data)
	if err != nil {
		return e.retry(s, unknownInputNotice), nil
	}
	s.Set(FieldOutcome, string(outcome))
	return e.advance(s, StateCreateSide), nil
}

func (e *Engine) handleCreateSide(s *Session, ev Event) ([]Message, error) {
	side, err := models.ParseSide(ev.Data)
	if err != nil {
		return e.retry(s, unknownInputNotice), nil
	}
	s.Set(FieldSide, string(side))
	return e.advance(s, StateCreateStrategy), nil
}

func (e *Engine) handleCreateStrategy(s *Session, ev Event) ([]Message, error) {
	strategy, err := models.ParseStrategy(ev.Data)
	if err != nil {
		return e.retry(s, unknownInputNotice), nil
	}
	s.Set(FieldStrategy, string(strategy))
	return e.advance(s, StateCreateDate), nil
}

func (e *Engine) handleCreateDate(s *Session, ev Event) ([]Message, error) {
	date, err := parseDate(ev.Data)
	if err != nil {
		return e.retry(s, "Invalid date. Please use YYYY-MM-DD."), nil
	}
	s.Set(FieldDate, date)
	return e.advance(s, StateCreateTime), nil
}

func (e *Engine) handleCreateTime(s *Session, ev Event) ([]Message, error) {
	tod, err := parseTimeOfDay(ev.Data)
	if err != nil {
		return e.retry(s, "Invalid time. Please use HH:MM."), nil
	}
	s.Set(FieldTime, tod)
	return e.advance(s, StateCreateRR), nil
}

func (e *Engine) handleCreateNumeric(s *Session, ev Event, field Field, next State) ([]Message, error) {
	value, err := parseNumeric(field, ev.Data, e.policy.StrictNumeric)
	if err != nil {
		return e.retry(s, "Please enter a numeric value."), nil
	}
	s.Set(field, value)
	return e.advance(s, next), nil
}

func (e *Engine) handleCreateAttachment(ctx context.Context, s *Session, ev Event) ([]Message, error) {
	if ev.Kind == EventChoice && ev.Data == tokenSkip && !e.policy.RequireAttachment {
		s.Set(FieldPicture, "")
		return e.commitTrade(ctx, s)
	}

	ref := ev.Attachment
	if ref == "" && ev.Kind == EventText {
		// Transports without media support pass the file reference as text.
		ref = strings.TrimSpace(ev.Data)
	}
	if ref == "" {
		return e.retry(s, "Please Send a Picture of Your Trade."), nil
	}
	s.Set(FieldPicture, ref)
	return e.commitTrade(ctx, s)
}

// requiredFields are the session slots that must be present at commit.
// FieldPicture is checked separately since empty is legal under a lax policy.
var requiredFields = []Field{
	FieldTicker, FieldOutcome, FieldSide, FieldStrategy,
	FieldDate, FieldTime, FieldRR, FieldPnL,
}

func (e *Engine) commitTrade(ctx context.Context, s *Session) ([]Message, error) {
	// Unreachable through normal transitions; a miss here is a defect, not
	// a user-input problem, and must never persist a partial record.
	missing := []string{}
	for _, f := range requiredFields {
		if v, ok := s.Get(f); !ok || v == "" {
			missing = append(missing, string(f))
		}
	}
	picture, ok := s.Get(FieldPicture)
	if !ok || (picture == "" && e.policy.RequireAttachment) {
		missing = append(missing, string(FieldPicture))
	}
	if len(missing) > 0 {
		return nil, apperrors.NewIncompleteRecordError(missing)
	}

	trade := models.Trade{Picture: picture}
	trade.Ticker, _ = s.Get(FieldTicker)
	trade.Date, _ = s.Get(FieldDate)
	trade.Time, _ = s.Get(FieldTime)
	trade.RR, _ = s.Get(FieldRR)
	trade.PnL, _ = s.Get(FieldPnL)
	outcome, _ := s.Get(FieldOutcome)
	trade.Outcome = models.Outcome(outcome)
	side, _ := s.Get(FieldSide)
	trade.Side = models.Side(side)
	strategy, _ := s.Get(FieldStrategy)
	trade.Strategy = models.Strategy(strategy)

	id, err := e.store.CreateTrade(ctx, trade)
	if err != nil {
		return nil, err
	}

	e.logger.Info().Str("chat_id", s.ChatID).Int64("trade_id", id).
		Str("ticker", trade.Ticker).Msg("trade recorded")

	s.Reset()
	return []Message{
		{Text: fmt.Sprintf("Trade recorded successfully. The Trade ID is %d.", id)},
		e.mainMenu(),
	}, nil
}

// ----------------------------------------------------------------------------
// Lookup flow
// ----------------------------------------------------------------------------

func (e *Engine) handleLookupMenu(s *Session, ev Event) ([]Message, error) {
	if ev.Kind == EventChoice {
		switch ev.Data {
		case tokenByDateRange:
			return e.advance(s, StateLookupDateRange), nil
		case tokenByTradeID:
			return e.advance(s, StateLookupID), nil
		case tokenByTicker:
			return e.advance(s, StateLookupTicker), nil
		case tokenBySide:
			return e.advance(s, StateLookupSide), nil
		case tokenByStatus:
			return e.advance(s, StateLookupOutcome), nil
		}
	}
	return e.retry(s, unknownInputNotice), nil
}

func (e *Engine) handleLookupDateRange(ctx context.Context, s *Session, ev Event) ([]Message, error) {
	r, err := parseDateRange(ev.Data)
	if err != nil {
		return e.retry(s, "Invalid date range format. Please use YYYY-MM-DD to YYYY-MM-DD."), nil
	}
	trades, err := e.store.GetTradesByDateRange(ctx, r)
	if err != nil {
		return nil, err
	}
	return e.displayResults(s, trades), nil
}

func (e *Engine) handleLookupID(ctx context.Context, s *Session, ev Event) ([]Message, error) {
	id, err := parseTradeID(ev.Data)
	if err != nil {
		return e.retry(s, "Invalid trade ID. Please enter a number."), nil
	}
	trade, err := e.store.GetTradeByID(ctx, id)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return e.displayResults(s, nil), nil
	}
	if err != nil {
		return nil, err
	}
	return e.displayResults(s, []models.Trade{trade}), nil
}

func (e *Engine) handleLookupTicker(ctx context.Context, s *Session, ev Event) ([]Message, error) {
	ticker, err := parseTicker(ev.Data)
	if err != nil {
		return e.retry(s, "Ticker must not be empty."), nil
	}
	trades, err := e.store.GetTradesByField(ctx, store.FilterTicker, ticker)
	if err != nil {
		return nil, err
	}
	return e.displayResults(s, trades), nil
}

func (e *Engine) handleLookupChoice(ctx context.Context, s *Session, ev Event, field store.FilterField) ([]Message, error) {
	var value string
	switch field {
	case store.FilterSide:
		side, err := models.ParseSide(ev.Data)
		if err != nil {
			return e.retry(s, unknownInputNotice), nil
		}
		value = string(side)
	case store.FilterOutcome:
		outcome, err := models.ParseOutcome(ev.Data)
		if err != nil {
			return e.retry(s, unknownInputNotice), nil
		}
		value = string(outcome)
	}

	trades, err := e.store.GetTradesByField(ctx, field, value)
	if err != nil {
		return nil, err
	}
	return e.displayResults(s, trades), nil
}

// displayResults renders each matched trade, then returns to the menu.
func (e *Engine) displayResults(s *Session, trades []models.Trade) []Message {
	msgs := []Message{}
	if len(trades) == 0 {
		msgs = append(msgs, Message{Text: "No trades found for the given criteria."})
	}
	for _, t := range trades {
		msgs = append(msgs, Message{Text: t.Render()})
	}
	s.Reset()
	return append(msgs, e.mainMenu())
}

// ----------------------------------------------------------------------------
// Export flow
// ----------------------------------------------------------------------------

func (e *Engine) handleExportPeriod(s *Session, ev Event) ([]Message, error) {
	if ev.Kind != EventChoice {
		return e.retry(s, unknownInputNotice), nil
	}
	period := models.Period(ev.Data)
	if period == models.PeriodCustom {
		s.Set(FieldPeriod, string(period))
		return e.advance(s, StateExportRange), nil
	}
	if _, err := models.ResolvePeriod(period, e.now()); err != nil {
		return e.retry(s, unknownInputNotice), nil
	}
	s.Set(FieldPeriod, string(period))
	return e.advance(s, StateExportScope), nil
}

func (e *Engine) handleExportRange(ctx context.Context, s *Session, ev Event) ([]Message, error) {
	r, err := parseDateRange(ev.Data)
	if err != nil {
		return e.retry(s, "Invalid date range format. Please use YYYY-MM-DD to YYYY-MM-DD."), nil
	}
	return e.resolveAndExport(ctx, s, "", r)
}

func (e *Engine) handleExportScope(ctx context.Context, s *Session, ev Event) ([]Message, error) {
	if ev.Kind == EventChoice {
		switch ev.Data {
		case tokenAllTrades:
			r, err := e.sessionPeriodRange(s)
			if err != nil {
				return nil, err
			}
			return e.resolveAndExport(ctx, s, "", r)
		case tokenChooseTicker:
			return e.advance(s, StateExportTicker), nil
		}
	}
	return e.retry(s, unknownInputNotice), nil
}

func (e *Engine) handleExportTicker(ctx context.Context, s *Session, ev Event) ([]Message, error) {
	ticker, err := parseTicker(ev.Data)
	if err != nil {
		return e.retry(s, "Ticker must not be empty."), nil
	}
	r, err := e.sessionPeriodRange(s)
	if err != nil {
		return nil, err
	}
	return e.resolveAndExport(ctx, s, ticker, r)
}

// sessionPeriodRange resolves the period captured earlier in the flow.
func (e *Engine) sessionPeriodRange(s *Session) (models.DateRange, error) {
	period, ok := s.Get(FieldPeriod)
	if !ok {
		return models.DateRange{}, apperrors.NewIncompleteRecordError([]string{string(FieldPeriod)})
	}
	return models.ResolvePeriod(models.Period(period), e.now())
}

func (e *Engine) resolveAndExport(ctx context.Context, s *Session, ticker string, r models.DateRange) ([]Message, error) {
	trades, err := e.store.GetTradesForExport(ctx, ticker, r)
	if err != nil {
		return nil, err
	}
	if len(trades) == 0 {
		s.Reset()
		return []Message{
			{Text: "No trades found for the selected criteria."},
			e.mainMenu(),
		}, nil
	}

	scope := ticker
	if scope == "" {
		scope = tokenAllTrades
	}
	period := models.PeriodCustom
	if p, ok := s.Get(FieldPeriod); ok {
		period = models.Period(p)
	}

	ref, err := e.exporter.Export(ctx, trades, scope, period)
	if err != nil {
		return nil, apperrors.Wrap(err, "export failed")
	}

	e.logger.Info().Str("chat_id", s.ChatID).Str("scope", scope).
		Int("trades", len(trades)).Msg("journal exported")

	s.Reset()
	return []Message{
		{Text: "Data exported successfully.", Document: ref},
		e.mainMenu(),
	}, nil
}

// ----------------------------------------------------------------------------
// Update flow
// ----------------------------------------------------------------------------

func (e *Engine) handleUpdateMenu(s *Session, ev Event) ([]Message, error) {
	if ev.Kind == EventChoice {
		switch ev.Data {
		case tokenUpdateByID:
			return e.advance(s, StateUpdateTargetID), nil
		case tokenRemoveTrade:
			return e.advance(s, StateRemoveTargetID), nil
		case tokenRemoveAllData:
			return e.advance(s, StateWipeConfirm), nil
		}
	}
	return e.retry(s, unknownInputNotice), nil
}

func (e *Engine) handleUpdateTargetID(ctx context.Context, s *Session, ev Event) ([]Message, error) {
	id, err := e.lookupTargetID(ctx, ev)
	if err != nil {
		if retriable(err) {
			return e.retry(s, "Trade ID not found. Please enter a valid Trade ID:"), nil
		}
		return nil, err
	}
	s.Set(FieldTradeID, fmt.Sprintf("%d", id))
	return e.advance(s, StateUpdateField), nil
}

func (e *Engine) handleUpdateField(s *Session, ev Event) ([]Message, error) {
	if ev.Kind == EventChoice {
		switch ev.Data {
		case tokenUpdateTicker:
			s.Set(FieldEditTarget, tokenUpdateTicker)
			return e.advance(s, StateUpdateNewTicker), nil
		case tokenUpdateStatus:
			s.Set(FieldEditTarget, tokenUpdateStatus)
			return e.advance(s, StateUpdateNewOutcome), nil
		case tokenUpdateSide:
			s.Set(FieldEditTarget, tokenUpdateSide)
			return e.advance(s, StateUpdateNewSide), nil
		case tokenUpdateStrategy:
			s.Set(FieldEditTarget, tokenUpdateStrategy)
			return e.advance(s, StateUpdateNewStrategy), nil
		case tokenBack:
			// Keep the captured trade id; only the branch choice is dropped.
			s.Unset(FieldEditTarget)
			return e.advance(s, StateUpdateMenu), nil
		}
	}
	return e.retry(s, unknownInputNotice), nil
}

func (e *Engine) handleUpdateNewTicker(ctx context.Context, s *Session, ev Event) ([]Message, error) {
	if back := e.updateBack(s, ev); back != nil {
		return back, nil
	}
	ticker, err := parseTicker(ev.Data)
	if err != nil {
		return e.retry(s, "Ticker must not be empty."), nil
	}
	return e.applyUpdate(ctx, s, models.TradeUpdate{Ticker: &ticker},
		fmt.Sprintf("Ticker updated successfully to %s.", ticker))
}

func (e *Engine) handleUpdateNewOutcome(ctx context.Context, s *Session, ev Event) ([]Message, error) {
	if back := e.updateBack(s, ev); back != nil {
		return back, nil
	}
	outcome, err := models.ParseOutcome(ev.Data)
	if err != nil {
		return e.retry(s, unknownInputNotice), nil
	}
	return e.applyUpdate(ctx, s, models.TradeUpdate{Outcome: &outcome},
		fmt.Sprintf("Status updated successfully to %s.", outcome))
}

func (e *Engine) handleUpdateNewSide(ctx context.Context, s *Session, ev Event) ([]Message, error) {
	if back := e.updateBack(s, ev); back != nil {
		return back, nil
	}
	side, err := models.ParseSide(ev.Data)
	if err != nil {
		return e.retry(s, unknownInputNotice), nil
	}
	return e.applyUpdate(ctx, s, models.TradeUpdate{Side: &side},
		fmt.Sprintf("Side updated successfully to %s.", side))
}

func (e *Engine) handleUpdateNewStrategy(ctx context.Context, s *Session, ev Event) ([]Message, error) {
	if back := e.updateBack(s, ev); back != nil {
		return back, nil
	}
	strategy, err := models.ParseStrategy(ev.Data)
	if err != nil {
		return e.retry(s, unknownInputNotice), nil
	}
	return e.applyUpdate(ctx, s, models.TradeUpdate{Strategy: &strategy},
		fmt.Sprintf("Strategy updated successfully to %s.", strategy))
}

// updateBack handles the Back button on new-value steps: return to the field
// menu, keeping the trade id captured before the branch point.
func (e *Engine) updateBack(s *Session, ev Event) []Message {
	if ev.Kind == EventChoice && ev.Data == tokenBack {
		s.Unset(FieldEditTarget)
		return e.advance(s, StateUpdateField)
	}
	return nil
}

func (e *Engine) applyUpdate(ctx context.Context, s *Session, update models.TradeUpdate, confirmation string) ([]Message, error) {
	raw, ok := s.Get(FieldTradeID)
	if !ok {
		return nil, apperrors.NewIncompleteRecordError([]string{string(FieldTradeID)})
	}
	id, err := parseTradeID(raw)
	if err != nil {
		return nil, apperrors.NewIncompleteRecordError([]string{string(FieldTradeID)})
	}

	if err := e.store.UpdateTrade(ctx, id, update); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			s.Reset()
			return []Message{
				{Text: "Trade ID not found."},
				e.mainMenu(),
			}, nil
		}
		return nil, err
	}

	e.logger.Info().Str("chat_id", s.ChatID).Int64("trade_id", id).Msg("trade updated")

	s.Reset()
	return []Message{{Text: confirmation}, e.mainMenu()}, nil
}

func (e *Engine) handleRemoveTargetID(ctx context.Context, s *Session, ev Event) ([]Message, error) {
	id, err := e.lookupTargetID(ctx, ev)
	if err != nil {
		if retriable(err) {
			return e.retry(s, "Trade ID not found. Please enter a valid Trade ID:"), nil
		}
		return nil, err
	}
	s.Set(FieldTradeID, fmt.Sprintf("%d", id))
	return e.advance(s, StateRemoveConfirm), nil
}

func (e *Engine) handleRemoveConfirm(ctx context.Context, s *Session, ev Event) ([]Message, error) {
	if ev.Kind != EventChoice || ev.Data != tokenRemoveConfirm {
		return e.retry(s, unknownInputNotice), nil
	}

	raw, _ := s.Get(FieldTradeID)
	id, err := parseTradeID(raw)
	if err != nil {
		return nil, apperrors.NewIncompleteRecordError([]string{string(FieldTradeID)})
	}

	if err := e.store.DeleteTradeByID(ctx, id); err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	e.logger.Info().Str("chat_id", s.ChatID).Int64("trade_id", id).Msg("trade removed")

	s.Reset()
	return []Message{
		{Text: fmt.Sprintf("Trade with ID %d has been removed.", id)},
		e.mainMenu(),
	}, nil
}

func (e *Engine) handleWipeConfirm(ctx context.Context, s *Session, ev Event) ([]Message, error) {
	if ev.Kind == EventChoice {
		switch ev.Data {
		case tokenWipeConfirm:
			count, err := e.store.DeleteAllTrades(ctx)
			if err != nil {
				return nil, err
			}
			e.logger.Warn().Str("chat_id", s.ChatID).Int64("deleted", count).
				Msg("journal wiped")
			s.Reset()
			return []Message{
				{Text: fmt.Sprintf("The whole database has been removed. %d trades deleted.", count)},
				e.mainMenu(),
			}, nil
		case tokenWipeCancel:
			s.Reset()
			return []Message{e.mainMenu()}, nil
		}
	}
	return e.retry(s, unknownInputNotice), nil
}

// lookupTargetID parses an id from the event and verifies the trade exists.
func (e *Engine) lookupTargetID(ctx context.Context, ev Event) (int64, error) {
	id, err := parseTradeID(ev.Data)
	if err != nil {
		return 0, err
	}
	if _, err := e.store.GetTradeByID(ctx, id); err != nil {
		return 0, err
	}
	return id, nil
}

// retriable reports whether an error should re-prompt rather than abort:
// bad input or a missing id, never store I/O failures.
func retriable(err error) bool {
	var v *apperrors.ValidationError
	return apperrors.Is(err, apperrors.ErrNotFound) || apperrors.As(err, &v)
}
