package models

import (
	"fmt"
	"time"
)

// Period is a named relative time window used by the export flow.
type Period string

const (
	Period1D     Period = "1D"
	Period2D     Period = "2D"
	Period3D     Period = "3D"
	Period1W     Period = "1W"
	Period2W     Period = "2W"
	Period1M     Period = "1M"
	Period2M     Period = "2M"
	Period3M     Period = "3M"
	Period6M     Period = "6M"
	PeriodCustom Period = "custom"
)

// Periods lists the named periods in menu order, custom last.
var Periods = []Period{
	Period1D, Period2D, Period3D,
	Period1W, Period2W,
	Period1M, Period2M, Period3M, Period6M,
	PeriodCustom,
}

// periodDays maps each named period to its day count.
var periodDays = map[Period]int{
	Period1D: 1, Period2D: 2, Period3D: 3,
	Period1W: 7, Period2W: 14,
	Period1M: 30, Period2M: 60, Period3M: 90, Period6M: 180,
}

// Label returns the human-readable menu label for the period.
func (p Period) Label() string {
	switch p {
	case Period1D:
		return "1 Day"
	case Period2D:
		return "2 Days"
	case Period3D:
		return "3 Days"
	case Period1W:
		return "1 Week"
	case Period2W:
		return "2 Weeks"
	case Period1M:
		return "1 Month"
	case Period2M:
		return "2 Months"
	case Period3M:
		return "3 Months"
	case Period6M:
		return "6 Months"
	case PeriodCustom:
		return "Custom Date Range"
	}
	return string(p)
}

// DateRange is an inclusive calendar-date window.
type DateRange struct {
	Start string // YYYY-MM-DD
	End   string // YYYY-MM-DD
}

// DateLayout is the calendar-date format used throughout the journal.
const DateLayout = "2006-01-02"

// TimeLayout is the time-of-day format used throughout the journal.
const TimeLayout = "15:04"

// ResolvePeriod converts a named period into an absolute window ending at now.
// PeriodCustom has no fixed window and is rejected.
func ResolvePeriod(p Period, now time.Time) (DateRange, error) {
	days, ok := periodDays[p]
	if !ok {
		return DateRange{}, fmt.Errorf("invalid period: %q", p)
	}
	return DateRange{
		Start: now.AddDate(0, 0, -days).Format(DateLayout),
		End:   now.Format(DateLayout),
	}, nil
}
