package cli

import (
	"testing"
	"time"

	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/service"
)

func TestFormatTarget(t *testing.T) {
	tests := []struct {
		labels   service.Labels
		expected string
	}{
		{service.Labels{ProjectName: "Website"}, "Website"},
		{service.Labels{ProjectName: "Website", TaskName: "Landing page"}, "Website / Landing page"},
	}
	for _, tt := range tests {
		if got := FormatTarget(tt.labels); got != tt.expected {
			t.Errorf("FormatTarget(%+v) = %q, expected %q", tt.labels, got, tt.expected)
		}
	}
}

func TestFormatElapsedTime(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"0 minutes", 0, "0m"},
		{"1 minute", 1 * time.Minute, "1m"},
		{"59 minutes", 59 * time.Minute, "59m"},
		{"exactly 1 hour", 60 * time.Minute, "1h"},
		{"1 hour 30 minutes", 90 * time.Minute, "1h 30m"},
		{"with seconds (rounds down)", 90*time.Minute + 45*time.Second, "1h 30m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatElapsedTime(tt.duration); got != tt.expected {
				t.Errorf("FormatElapsedTime(%v) = %q, expected %q", tt.duration, got, tt.expected)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "0:00:00"},
		{8 * time.Second, "0:00:08"},
		{61*time.Minute + 5*time.Second, "1:01:05"},
		{-time.Second, "0:00:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.duration); got != tt.expected {
			t.Errorf("FormatClock(%v) = %q, expected %q", tt.duration, got, tt.expected)
		}
	}
}

func TestFormatTimerStartTime(t *testing.T) {
	now := time.Date(2024, time.January, 15, 16, 0, 0, 0, time.UTC)

	if got := FormatTimerStartTime(time.Date(2024, time.January, 15, 14, 30, 0, 0, time.UTC), now); got != "today at 2:30 PM" {
		t.Errorf("got %q, expected %q", got, "today at 2:30 PM")
	}
	if got := FormatTimerStartTime(time.Date(2024, time.January, 14, 9, 0, 0, 0, time.UTC), now); got != "Sun Jan 14 at 9:00 AM" {
		t.Errorf("got %q, expected %q", got, "Sun Jan 14 at 9:00 AM")
	}
}

func TestFormatTimeRange(t *testing.T) {
	start := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	if got := FormatTimeRange(entry.Entry{StartTime: start, EndTime: &end}); got != "09:00-10:30" {
		t.Errorf("got %q, expected 09:00-10:30", got)
	}
	if got := FormatTimeRange(entry.Entry{StartTime: start}); got != "09:00-running" {
		t.Errorf("got %q, expected 09:00-running", got)
	}
}

func TestFormatDateRangeForDisplay(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected string
	}{
		{
			"same day",
			time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.January, 15, 23, 59, 59, 0, time.UTC),
			"Mon, Jan 15, 2024",
		},
		{
			"same year",
			time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.January, 21, 0, 0, 0, 0, time.UTC),
			"Jan 15 - Jan 21, 2024",
		},
		{
			"across years",
			time.Date(2023, time.December, 30, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
			"Dec 30, 2023 - Jan 2, 2024",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDateRangeForDisplay(tt.start, tt.end); got != tt.expected {
				t.Errorf("got %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestFormatNotesAndShortID(t *testing.T) {
	if got := FormatNotes("a\nb", "  "); got != "  a\n  b" {
		t.Errorf("FormatNotes = %q", got)
	}
	if got := FormatNotes("", "  "); got != "" {
		t.Errorf("FormatNotes(empty) = %q", got)
	}
	if got := ShortID("0123456789"); got != "01234567" {
		t.Errorf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID(short) = %q", got)
	}
}
