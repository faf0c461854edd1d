package dialog

import "journal-bot/internal/models"

// mainMenu is the top-level menu shown in the idle state.
func (e *Engine) mainMenu() Message {
	return Message{
		Text: "Welcome to trading journal bot. Choose an option:",
		Buttons: []Button{
			{Label: "Add New Trade", Token: tokenAddTrade},
			{Label: "Check Previous Trades", Token: tokenCheckTrades},
			{Label: "Export Data (CSV)", Token: tokenExportCSV},
			{Label: "Update Trades", Token: tokenUpdateMenu},
		},
	}
}

// prompt returns the message that (re-)introduces a state. Handlers use it
// both to advance and to re-prompt after invalid input.
func (e *Engine) prompt(state State, s *Session) Message {
	switch state {
	case StateIdle:
		return e.mainMenu()

	case StateCreateTicker:
		buttons := make([]Button, 0, len(models.SuggestedTickers))
		for _, t := range models.SuggestedTickers {
			buttons = append(buttons, Button{Label: t, Token: t})
		}
		return Message{Text: "Please Choose Ticker's Name.", Buttons: buttons}
	case StateCreateOutcome:
		return Message{Text: "Trade Status? (WIN/LOSS).", Buttons: outcomeButtons()}
	case StateCreateSide:
		return Message{Text: "Position Side? (Long/Short)", Buttons: sideButtons()}
	case StateCreateStrategy:
		return Message{Text: "Trading Setup?", Buttons: strategyButtons()}
	case StateCreateDate:
		return Message{Text: "Please enter the date of the trade (YYYY-MM-DD):"}
	case StateCreateTime:
		return Message{Text: "Time Of Trade? (HH:MM)"}
	case StateCreateRR:
		return Message{Text: "What is Risk:Reward Ratio?"}
	case StateCreatePnL:
		return Message{Text: "What was PnL?"}
	case StateCreateAttachment:
		msg := Message{Text: "Please Send a Picture of Your Trade."}
		if !e.policy.RequireAttachment {
			msg.Buttons = []Button{{Label: "Skip", Token: tokenSkip}}
		}
		return msg

	case StateLookupMenu:
		return Message{
			Text: "How Would You Like To Check The Trades?",
			Buttons: []Button{
				{Label: "By Date Range", Token: tokenByDateRange},
				{Label: "By Trade ID", Token: tokenByTradeID},
				{Label: "By Ticker Name", Token: tokenByTicker},
				{Label: "By Side(Long/Short)", Token: tokenBySide},
				{Label: "By Status(Win/Loss)", Token: tokenByStatus},
			},
		}
	case StateLookupDateRange:
		return Message{Text: "Please enter the date range (YYYY-MM-DD to YYYY-MM-DD):"}
	case StateLookupID:
		return Message{Text: "Please enter the trade ID:"}
	case StateLookupTicker:
		return Message{Text: "Please enter the ticker name (e.g., XAUUSD):"}
	case StateLookupSide:
		return Message{Text: "Select the side (Long/Short):", Buttons: sideButtons()}
	case StateLookupOutcome:
		return Message{Text: "Select the status (Win/Loss):", Buttons: outcomeButtons()}

	case StateExportPeriod:
		buttons := make([]Button, 0, len(models.Periods))
		for _, p := range models.Periods {
			buttons = append(buttons, Button{Label: p.Label(), Token: string(p)})
		}
		return Message{Text: "Please choose the date period for export:", Buttons: buttons}
	case StateExportRange:
		return Message{Text: "Please enter the custom date range (YYYY-MM-DD to YYYY-MM-DD):"}
	case StateExportScope:
		return Message{
			Text: "Do you want to export trades for a specific ticker or all trades?",
			Buttons: []Button{
				{Label: "All Trades", Token: tokenAllTrades},
				{Label: "Choose Ticker", Token: tokenChooseTicker},
			},
		}
	case StateExportTicker:
		return Message{Text: "Please enter the ticker name (e.g., XAUUSD):"}

	case StateUpdateMenu:
		return Message{
			Text: "What Would You Like To Do?",
			Buttons: []Button{
				{Label: "Update a Trade", Token: tokenUpdateByID},
				{Label: "Remove a Trade", Token: tokenRemoveTrade},
				{Label: "Remove Whole Database", Token: tokenRemoveAllData},
			},
		}
	case StateUpdateTargetID:
		return Message{Text: "Please enter the Trade ID you want to update:"}
	case StateUpdateField:
		return Message{
			Text: "Trade found, What would you like to update?",
			Buttons: []Button{
				{Label: "Ticker", Token: tokenUpdateTicker},
				{Label: "Status", Token: tokenUpdateStatus},
				{Label: "Side", Token: tokenUpdateSide},
				{Label: "Strategy", Token: tokenUpdateStrategy},
				{Label: "Back", Token: tokenBack},
			},
		}
	case StateUpdateNewTicker:
		return Message{Text: "Please enter the new ticker:"}
	case StateUpdateNewOutcome:
		return Message{Text: "Select the new status:", Buttons: withBack(outcomeButtons())}
	case StateUpdateNewSide:
		return Message{Text: "Select the new side:", Buttons: withBack(sideButtons())}
	case StateUpdateNewStrategy:
		return Message{Text: "Select the new strategy:", Buttons: withBack(strategyButtons())}
	case StateRemoveTargetID:
		return Message{Text: "Please enter the Trade ID you want to remove:"}
	case StateRemoveConfirm:
		return Message{
			Text: "Are you sure you want to remove this trade?",
			Buttons: []Button{
				{Label: "Confirm", Token: tokenRemoveConfirm},
				{Label: "Cancel", Token: tokenCancel},
			},
		}
	case StateWipeConfirm:
		return Message{
			Text: "Are you sure you want to remove the whole database?",
			Buttons: []Button{
				{Label: "Confirm", Token: tokenWipeConfirm},
				{Label: "Cancel", Token: tokenWipeCancel},
			},
		}
	}
	return e.mainMenu()
}

func outcomeButtons() []Button {
	return []Button{
		{Label: "Win", Token: string(models.OutcomeWin)},
		{Label: "Loss", Token: string(models.OutcomeLoss)},
	}
}

func sideButtons() []Button {
	return []Button{
		{Label: "Long", Token: string(models.SideLong)},
		{Label: "Short", Token: string(models.SideShort)},
	}
}

func strategyButtons() []Button {
	buttons := make([]Button, 0, len(models.Strategies))
	for _, st := range models.Strategies {
		buttons = append(buttons, Button{Label: string(st), Token: string(st)})
	}
	return buttons
}

func withBack(buttons []Button) []Button {
	return append(buttons, Button{Label: "Back", Token: tokenBack})
}
