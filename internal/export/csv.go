// Package export renders journal result sets as CSV documents.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"

	"journal-bot/internal/models"
)

// csvRow mirrors the column layout of the exported spreadsheet.
type csvRow struct {
	ID       int64  `csv:"ID"`
	Date     string `csv:"Date"`
	Time     string `csv:"Time"`
	Ticker   string `csv:"Ticker"`
	Status   string `csv:"Status"`
	Side     string `csv:"Side"`
	RR       string `csv:"R:R Ratio"`
	PnL      string `csv:"PnL"`
	Strategy string `csv:"Strategy"`
	Photo    string `csv:"Photo"`
}

// Write encodes the trades as CSV, header included.
func Write(w io.Writer, trades []models.Trade) error {
	rows := make([]csvRow, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, csvRow{
			ID:       t.ID,
			Date:     t.Date,
			Time:     t.Time,
			Ticker:   t.Ticker,
			Status:   string(t.Outcome),
			Side:     string(t.Side),
			RR:       t.RR,
			PnL:      t.PnL,
			Strategy: string(t.Strategy),
			Photo:    t.Picture,
		})
	}
	return gocsv.Marshal(&rows, w)
}

// Filename builds the export file name from the ticker scope and period.
func Filename(scope string, period models.Period) string {
	return fmt.Sprintf("%s_%s.csv", scope, period)
}

// FileExporter writes CSV exports into a directory. It implements the dialog
// engine's Exporter interface; the returned reference is the file path.
type FileExporter struct {
	dir    string
	logger zerolog.Logger
}

// NewFileExporter creates a FileExporter rooted at dir.
func NewFileExporter(dir string, logger zerolog.Logger) *FileExporter {
	return &FileExporter{dir: dir, logger: logger}
}

// Export writes the trades to <dir>/<scope>_<period>.csv.
func (f *FileExporter) Export(ctx context.Context, trades []models.Trade, scope string, period models.Period) (string, error) {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(f.dir, Filename(scope, period))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if err := Write(file, trades); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}

	f.logger.Info().Str("path", path).Int("trades", len(trades)).Msg("export written")
	return path, nil
}
