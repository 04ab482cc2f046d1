package dates

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSelection marks date-selection parameters that can never produce
// a candidate list. It aborts the run before any query is sent.
var ErrInvalidSelection = errors.New("invalid date selection")

// Selection describes which calendar dates to check. An explicit Dates list
// always wins; otherwise every day in Year/Month whose weekday matches
// DayOfWeek is selected.
type Selection struct {
	Dates     []string
	Year      int
	Month     int
	DayOfWeek string
}

var weekdayOrdinals = map[string]time.Weekday{
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
	"Sunday":    time.Sunday,
}

// Resolve produces the ordered list of ISO dates (YYYY-MM-DD) to query.
// Explicit dates pass through in caller order with no calendar validation;
// the upstream API rejects nonsense dates on its own.
func Resolve(sel Selection) ([]string, error) {
	if len(sel.Dates) > 0 {
		return sel.Dates, nil
	}

	if sel.Month < 1 || sel.Month > 12 {
		return nil, fmt.Errorf("%w: month %d outside 1-12", ErrInvalidSelection, sel.Month)
	}
	target, ok := weekdayOrdinals[sel.DayOfWeek]
	if !ok {
		return nil, fmt.Errorf("%w: unknown day of week %q", ErrInvalidSelection, sel.DayOfWeek)
	}

	// Day 0 of the next month normalizes to the last day of this one,
	// which handles 28-31 day months and leap years.
	lastDay := time.Date(sel.Year, time.Month(sel.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()

	var out []string
	for day := 1; day <= lastDay; day++ {
		d := time.Date(sel.Year, time.Month(sel.Month), day, 0, 0, 0, 0, time.UTC)
		if d.Weekday() == target {
			out = append(out, d.Format("2006-01-02"))
		}
	}
	return out, nil
}
