package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"journal-bot/internal/dialog"
	"journal-bot/internal/logging"
)

// addChatCommand adds the interactive chat session command.
func addChatCommand(rootCmd *cobra.Command, app *App) {
	var userID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive journal conversation",
		Long: `Start an interactive chat session with the journal bot.

Replies with numbered options can be answered by number or by label.
Type /photo <reference> to attach a trade picture, /cancel to abort the
current operation and /quit to leave the session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Engine == nil {
				return fmt.Errorf("journal store is not available")
			}
			if err := app.Access.Authorize(userID); err != nil {
				return fmt.Errorf("user %q is not allowed to use this journal", userID)
			}
			return runChat(cmd, app, userID)
		},
	}

	cmd.Flags().StringVar(&userID, "as", "local", "chat identity to converse as")
	rootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, app *App, userID string) error {
	output := NewOutput(cmd)
	ctx := cmd.Context()

	output.Dim("Journal chat session. Type /quit to leave.")

	// The opening turn behaves like any unknown idle input and yields the menu.
	buttons := deliver(cmd, app, output, userID, dialog.Text("/start"))

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		output.Printf("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		ev, ok := parseChatInput(line, buttons)
		if !ok {
			output.Warning("Unrecognized option. Answer by number or label.")
			continue
		}

		if ctx != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		buttons = deliver(cmd, app, output, userID, ev)
	}

	return scanner.Err()
}

// deliver runs one engine turn and renders the replies. It returns the
// buttons of the last reply so the next input line can be matched against
// them.
func deliver(cmd *cobra.Command, app *App, output *Output, chatID string, ev dialog.Event) []dialog.Button {
	msgs, _, err := app.Engine.HandleEvent(cmd.Context(), chatID, ev)
	if err != nil {
		chatLogger := logging.WithChat(app.Logger, chatID)
		chatLogger.Error().Err(err).Msg("chat turn failed")
	}

	var buttons []dialog.Button
	for _, msg := range msgs {
		output.Bot(msg.Text)
		if msg.Document != "" {
			output.Dim("Saved: %s", msg.Document)
		}
		if len(msg.Buttons) > 0 {
			for i, b := range msg.Buttons {
				output.Printf("  [%d] %s\n", i+1, b.Label)
			}
			buttons = msg.Buttons
		}
	}
	return buttons
}

// parseChatInput maps a console line onto an engine event. Numbered input
// and button labels select the matching choice token; everything else is
// free text.
func parseChatInput(line string, buttons []dialog.Button) (dialog.Event, bool) {
	if ref, ok := strings.CutPrefix(line, "/photo "); ok {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			return dialog.Event{}, false
		}
		return dialog.Text(ref).WithAttachment(ref), true
	}
	if line == "/cancel" {
		return dialog.Text("/cancel"), true
	}

	if n, err := strconv.Atoi(line); err == nil && len(buttons) > 0 {
		if n < 1 || n > len(buttons) {
			return dialog.Event{}, false
		}
		return dialog.Choice(buttons[n-1].Token), true
	}

	for _, b := range buttons {
		if strings.EqualFold(line, b.Label) {
			return dialog.Choice(b.Token), true
		}
	}

	return dialog.Text(line), true
}
