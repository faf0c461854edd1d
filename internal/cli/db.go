package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// addDBCommands adds database maintenance commands.
func addDBCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Journal database maintenance",
	}

	cmd.AddCommand(newDBPathCmd(app))
	cmd.AddCommand(newDBTickersCmd(app))
	cmd.AddCommand(newDBWipeCmd(app))

	rootCmd.AddCommand(cmd)
}

func newDBPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the journal database path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": app.Config.Database.Path})
			} else {
				output.Println(app.Config.Database.Path)
			}
		},
	}
}

func newDBTickersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tickers",
		Short: "List tickers present in the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("journal store is not available")
			}
			output := NewOutput(cmd)

			tickers, err := app.Store.DistinctTickers(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list tickers: %w", err)
			}
			if output.IsJSON() {
				return output.JSON(tickers)
			}
			if len(tickers) == 0 {
				output.Dim("No trades recorded yet.")
				return nil
			}
			for _, t := range tickers {
				output.Println(t)
			}
			return nil
		},
	}
}

func newDBWipeCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete every trade in the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("journal store is not available")
			}
			output := NewOutput(cmd)

			if !yes {
				output.Warning("This deletes every trade in the journal. Re-run with --yes to confirm.")
				return nil
			}

			count, err := app.Store.DeleteAllTrades(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to wipe journal: %w", err)
			}
			app.Logger.Info().Int64("deleted", count).Msg("journal wiped")

			if output.IsJSON() {
				return output.JSON(map[string]int64{"deleted": count})
			}
			output.Success("Deleted %d trades.", count)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the wipe")
	return cmd
}
