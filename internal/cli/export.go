package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"journal-bot/internal/export"
	"journal-bot/internal/models"
)

// addExportCommand adds the direct CSV export command.
func addExportCommand(rootCmd *cobra.Command, app *App) {
	var (
		ticker string
		period string
		from   string
		to     string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export trades to a CSV file",
		Long: `Export journal trades to a CSV file without the chat flow.

The window is either a named period (1D, 2D, 3D, 1W, 2W, 1M, 2M, 3M, 6M)
or an explicit --from/--to date range. Pass --ticker to restrict the
export to one instrument.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("journal store is not available")
			}
			output := NewOutput(cmd)

			p := models.Period(period)
			var r models.DateRange
			switch {
			case from != "" || to != "":
				if from == "" || to == "" {
					return fmt.Errorf("--from and --to must be given together")
				}
				if _, err := time.Parse(models.DateLayout, from); err != nil {
					return fmt.Errorf("invalid --from date: %s", from)
				}
				if _, err := time.Parse(models.DateLayout, to); err != nil {
					return fmt.Errorf("invalid --to date: %s", to)
				}
				r = models.DateRange{Start: from, End: to}
				p = models.PeriodCustom
			default:
				var err error
				r, err = models.ResolvePeriod(p, time.Now())
				if err != nil {
					return err
				}
			}

			trades, err := app.Store.GetTradesForExport(cmd.Context(), ticker, r)
			if err != nil {
				return fmt.Errorf("failed to load trades: %w", err)
			}
			if len(trades) == 0 {
				output.Warning("No trades found for the given criteria.")
				return nil
			}

			scope := ticker
			if scope == "" {
				scope = "all_trades"
			}

			dir := outDir
			if dir == "" {
				dir = app.Config.Export.Dir
			}
			exporter := export.NewFileExporter(dir, app.Logger)
			path, err := exporter.Export(cmd.Context(), trades, scope, p)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"path":   path,
					"trades": len(trades),
				})
			}
			output.Success("Exported %d trades to %s", len(trades), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&ticker, "ticker", "", "restrict export to one ticker")
	cmd.Flags().StringVar(&period, "period", "1M", "named period window")
	cmd.Flags().StringVar(&from, "from", "", "custom range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "custom range end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default: configured export dir)")

	rootCmd.AddCommand(cmd)
}
