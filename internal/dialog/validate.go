package dialog

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "journal-bot/internal/errors"
	"journal-bot/internal/models"
)

// parseDate validates a calendar date and returns its canonical form.
func parseDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	t, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return "", apperrors.NewValidationError("date", raw, "expected YYYY-MM-DD")
	}
	return t.Format(models.DateLayout), nil
}

// parseTimeOfDay validates a time of day and returns its canonical form.
func parseTimeOfDay(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	t, err := time.Parse(models.TimeLayout, raw)
	if err != nil {
		return "", apperrors.NewValidationError("time", raw, "expected HH:MM")
	}
	return t.Format(models.TimeLayout), nil
}

// parseDateRange splits "YYYY-MM-DD to YYYY-MM-DD" into an inclusive window.
func parseDateRange(raw string) (models.DateRange, error) {
	parts := strings.Split(strings.TrimSpace(raw), " to ")
	if len(parts) != 2 {
		return models.DateRange{}, apperrors.NewValidationError("date_range", raw, "expected YYYY-MM-DD to YYYY-MM-DD")
	}
	start, err := parseDate(parts[0])
	if err != nil {
		return models.DateRange{}, apperrors.NewValidationError("date_range", raw, "invalid start date")
	}
	end, err := parseDate(parts[1])
	if err != nil {
		return models.DateRange{}, apperrors.NewValidationError("date_range", raw, "invalid end date")
	}
	return models.DateRange{Start: start, End: end}, nil
}

// parseTradeID validates a positive integer trade id.
func parseTradeID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("trade_id", raw, "expected a positive integer")
	}
	return id, nil
}

// parseTicker accepts any non-empty ticker; the suggested set is not a
// closed enum.
func parseTicker(raw string) (string, error) {
	ticker := strings.ToUpper(strings.TrimSpace(raw))
	if ticker == "" {
		return "", apperrors.NewValidationError("ticker", raw, "ticker must not be empty")
	}
	return ticker, nil
}

// parseNumeric validates rr/pnl input. With strict off any non-empty text
// passes through unchanged (the journal's historical behavior); with strict
// on the value must parse as a decimal and is stored canonically.
func parseNumeric(field Field, raw string, strict bool) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", apperrors.NewValidationError(string(field), raw, "value must not be empty")
	}
	if !strict {
		return value, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return "", apperrors.NewValidationError(string(field), raw, "expected a decimal number")
	}
	return d.String(), nil
}
