package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/tj/go-naturaldate"

	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/timeutil"
)

// ParseDate accepts YYYY-MM-DD or a natural-language date such as
// "yesterday" or "last monday", resolved backwards from now.
// The result is midnight of that day in now's location.
func ParseDate(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("%w: date cannot be empty", entry.ErrInvalidArgument)
	}

	if day, err := timeutil.ParseDay(input, now.Location()); err == nil {
		return day, nil
	}

	if isToday(input) {
		return timeutil.StartOfDay(now), nil
	}

	// Unrecognized text comes back as the reference time itself.
	t, err := naturaldate.Parse(input, now, naturaldate.WithDirection(naturaldate.Past))
	if err != nil || t.Equal(now) {
		return time.Time{}, fmt.Errorf("%w: invalid date %q (use YYYY-MM-DD or words like 'yesterday')", entry.ErrInvalidArgument, input)
	}
	return timeutil.StartOfDay(t.In(now.Location())), nil
}

// isToday reports whether input names the current day.
func isToday(input string) bool {
	switch strings.ToLower(input) {
	case "today", "now":
		return true
	}
	return false
}
