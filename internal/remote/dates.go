package remote

import (
	"fmt"
	"time"
)

// CalendarDateFormat is the platform's calendar format for query bounds and
// upload rows (dd-MM-yyyy).
const CalendarDateFormat = "02-01-2006"

// horizonYears bounds default listing queries: two years back, two forward.
const horizonYears = 2

// WalkDate formats a start timestamp to day granularity using the platform's
// exact date-string convention, e.g. "Tuesday, 1st April 2025". This string
// is the matching key between local and remote records.
func WalkDate(t time.Time) string {
	return fmt.Sprintf("%s, %d%s %s %d",
		t.Weekday().String(),
		t.Day(),
		ordinalSuffix(t.Day()),
		t.Month().String(),
		t.Year(),
	)
}

// CalendarDate formats a timestamp in the platform's calendar format.
func CalendarDate(t time.Time) string {
	return t.Format(CalendarDateFormat)
}

// DefaultDateRange returns the policy horizon applied when a listing query
// carries neither explicit ids nor date bounds.
func DefaultDateRange(now time.Time) (from, to time.Time) {
	return now.AddDate(-horizonYears, 0, 0), now.AddDate(horizonYears, 0, 0)
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
