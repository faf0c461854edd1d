package dialog

// State tags the position of a session inside the dialog graph.
type State string

const (
	// StateIdle is the shared initial and terminal state offering the
	// top-level menu.
	StateIdle State = "idle"

	// Create flow: one field per step, commit at the end.
	StateCreateTicker     State = "create/ticker"
	StateCreateOutcome    State = "create/outcome"
	StateCreateSide       State = "create/side"
	StateCreateStrategy   State = "create/strategy"
	StateCreateDate       State = "create/date"
	StateCreateTime       State = "create/time"
	StateCreateRR         State = "create/rr"
	StateCreatePnL        State = "create/pnl"
	StateCreateAttachment State = "create/attachment"

	// Lookup flow: choose a criterion, enter it, display, return to idle.
	StateLookupMenu      State = "lookup/menu"
	StateLookupDateRange State = "lookup/date_range"
	StateLookupID        State = "lookup/id"
	StateLookupTicker    State = "lookup/ticker"
	StateLookupSide      State = "lookup/side"
	StateLookupOutcome   State = "lookup/outcome"

	// Export flow: period, optional custom range, ticker scope, export.
	StateExportPeriod State = "export/period"
	StateExportRange  State = "export/range"
	StateExportScope  State = "export/scope"
	StateExportTicker State = "export/ticker"

	// Update flow: edit a field, remove one trade, or wipe the journal.
	StateUpdateMenu        State = "update/menu"
	StateUpdateTargetID    State = "update/target_id"
	StateUpdateField       State = "update/field"
	StateUpdateNewTicker   State = "update/new_ticker"
	StateUpdateNewOutcome  State = "update/new_outcome"
	StateUpdateNewSide     State = "update/new_side"
	StateUpdateNewStrategy State = "update/new_strategy"
	StateRemoveTargetID    State = "update/remove_id"
	StateRemoveConfirm     State = "update/remove_confirm"
	StateWipeConfirm       State = "update/wipe_confirm"
)

// AllStates lists every state in the graph, idle first.
func AllStates() []State {
	return []State{
		StateIdle,
		StateCreateTicker, StateCreateOutcome, StateCreateSide, StateCreateStrategy,
		StateCreateDate, StateCreateTime, StateCreateRR, StateCreatePnL, StateCreateAttachment,
		StateLookupMenu, StateLookupDateRange, StateLookupID, StateLookupTicker,
		StateLookupSide, StateLookupOutcome,
		StateExportPeriod, StateExportRange, StateExportScope, StateExportTicker,
		StateUpdateMenu, StateUpdateTargetID, StateUpdateField,
		StateUpdateNewTicker, StateUpdateNewOutcome, StateUpdateNewSide, StateUpdateNewStrategy,
		StateRemoveTargetID, StateRemoveConfirm, StateWipeConfirm,
	}
}

// Top-level menu tokens, mirroring the chat callback data.
const (
	tokenAddTrade    = "add_new_trade"
	tokenCheckTrades = "check_previous_trades"
	tokenExportCSV   = "export_csv"
	tokenUpdateMenu  = "update_trades"
)

// Lookup criterion tokens.
const (
	tokenByDateRange = "by_date_range"
	tokenByTradeID   = "by_trade_id"
	tokenByTicker    = "by_ticker_name"
	tokenBySide      = "by_side"
	tokenByStatus    = "by_status"
)

// Export scope tokens.
const (
	tokenAllTrades    = "all_trades"
	tokenChooseTicker = "choose_ticker"
)

// Update flow tokens.
const (
	tokenUpdateByID     = "update_trade_by_id"
	tokenRemoveTrade    = "remove_trade"
	tokenRemoveAllData  = "remove_all_data"
	tokenUpdateTicker   = "update_ticker"
	tokenUpdateStatus   = "update_status"
	tokenUpdateSide     = "update_side"
	tokenUpdateStrategy = "update_strategy"
	tokenRemoveConfirm  = "confirm_remove_trade"
	tokenWipeConfirm    = "confirm_remove_all_data"
	tokenWipeCancel     = "cancel_remove_all_data"
)
