// Package cli provides the CLI presentation layer for tock.
// It handles command-line output formatting and user interaction.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/service"
)

// FormatTarget formats the project and optional task of an entry.
// Returns format like: "Website" or "Website / Landing page"
func FormatTarget(l service.Labels) string {
	if l.TaskName == "" {
		return l.ProjectName
	}
	return l.ProjectName + " / " + l.TaskName
}

// FormatElapsedTime formats a duration as human-readable elapsed time, rounding down.
// Examples: "5m", "1h 23m", "2h"
func FormatElapsedTime(d time.Duration) string {
	return entry.FormatDuration(int(d.Minutes()))
}

// FormatClock formats a running session as H:MM:SS
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// FormatTimerStartTime formats when a timer started, relative to now.
// Examples: "today at 2:30 PM", "Mon Jan 15 at 9:00 AM"
func FormatTimerStartTime(startedAt, now time.Time) string {
	startTime := startedAt.Format("3:04 PM")

	isToday := startedAt.Year() == now.Year() &&
		startedAt.Month() == now.Month() &&
		startedAt.Day() == now.Day()

	if isToday {
		return fmt.Sprintf("today at %s", startTime)
	}
	return fmt.Sprintf("%s at %s", startedAt.Format("Mon Jan 2"), startTime)
}

// FormatTimeRange formats the start and end of an entry.
// Examples: "09:00-10:30", "09:00-running"
func FormatTimeRange(e entry.Entry) string {
	if e.EndTime == nil {
		return e.StartTime.Format("15:04") + "-running"
	}
	return e.StartTime.Format("15:04") + "-" + e.EndTime.Format("15:04")
}

// FormatDateRangeForDisplay formats a date range for human-readable display.
func FormatDateRangeForDisplay(start, end time.Time) string {
	if start.Format("2006-01-02") == end.Format("2006-01-02") {
		return start.Format("Mon, Jan 2, 2006")
	}
	if start.Year() == end.Year() {
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
}

// FormatNotes indents multi-line notes under an entry line.
func FormatNotes(notes, indent string) string {
	if notes == "" {
		return ""
	}
	lines := strings.Split(notes, "\n")
	for i, l := range lines {
		lines[i] = indent + l
	}
	return strings.Join(lines, "\n")
}

// ShortID returns the first 8 characters of an ID for compact listings.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
