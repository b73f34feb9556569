package timeutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/xolan/tock/internal/entry"
)

// Period names a summary window.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod validates a period name. An empty name means today.
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case "", PeriodToday:
		return PeriodToday, nil
	case PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	}
	return "", fmt.Errorf("%w: unknown period %q (use today, week or month)", entry.ErrInvalidArgument, s)
}

// Window returns the inclusive [start, end] range for a period as of now.
// Week and month windows are to-date: they start at Monday or the 1st
// and end at the end of the current day, not the end of the period.
func Window(p Period, now time.Time) (start, end time.Time) {
	end = EndOfDay(now)
	switch p {
	case PeriodWeek:
		return StartOfWeek(now), end
	case PeriodMonth:
		return StartOfMonth(now), end
	default:
		return StartOfDay(now), end
	}
}

// Label returns a human-readable period description
func (p Period) Label() string {
	switch p {
	case PeriodWeek:
		return "this week"
	case PeriodMonth:
		return "this month"
	default:
		return "today"
	}
}

// ParseDay parses a YYYY-MM-DD date and returns midnight of that day in loc.
func ParseDay(input string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(input), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q (use format YYYY-MM-DD, e.g., 2024-01-15)", entry.ErrInvalidArgument, input)
	}
	return t, nil
}
