package timeutil

import (
	"errors"
	"testing"
	"time"

	"github.com/xolan/tock/internal/entry"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		input    string
		expected Period
	}{
		{"", PeriodToday},
		{"today", PeriodToday},
		{"WEEK", PeriodWeek},
		{" month ", PeriodMonth},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePeriod(tt.input)
			if err != nil {
				t.Fatalf("ParsePeriod(%q) returned unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParsePeriod(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}

	if _, err := ParsePeriod("year"); !errors.Is(err, entry.ErrInvalidArgument) {
		t.Errorf("ParsePeriod(year) error = %v, expected ErrInvalidArgument", err)
	}
}

func TestWindow(t *testing.T) {
	// Thursday
	now := time.Date(2024, time.January, 18, 15, 4, 5, 0, time.UTC)
	endOfToday := time.Date(2024, time.January, 18, 23, 59, 59, 999999999, time.UTC)

	tests := []struct {
		period        Period
		expectedStart time.Time
	}{
		{PeriodToday, time.Date(2024, time.January, 18, 0, 0, 0, 0, time.UTC)},
		{PeriodWeek, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{PeriodMonth, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			start, end := Window(tt.period, now)
			if !start.Equal(tt.expectedStart) {
				t.Errorf("Window(%s) start = %v, expected %v", tt.period, start, tt.expectedStart)
			}
			if !end.Equal(endOfToday) {
				t.Errorf("Window(%s) end = %v, expected %v (to-date window)", tt.period, end, endOfToday)
			}
		})
	}
}

func TestWindow_WeekOnSunday(t *testing.T) {
	sunday := time.Date(2024, time.January, 21, 9, 0, 0, 0, time.UTC)
	start, _ := Window(PeriodWeek, sunday)
	expected := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	if !start.Equal(expected) {
		t.Errorf("Window(week) on Sunday start = %v, expected %v", start, expected)
	}
}

func TestParseDay(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)

	got, err := ParseDay("2024-03-09", loc)
	if err != nil {
		t.Fatalf("ParseDay returned unexpected error: %v", err)
	}
	expected := time.Date(2024, time.March, 9, 0, 0, 0, 0, loc)
	if !got.Equal(expected) {
		t.Errorf("ParseDay = %v, expected %v", got, expected)
	}

	for _, bad := range []string{"", "2024-13-01", "09/03/2024", "yesterday"} {
		if _, err := ParseDay(bad, loc); !errors.Is(err, entry.ErrInvalidArgument) {
			t.Errorf("ParseDay(%q) error = %v, expected ErrInvalidArgument", bad, err)
		}
	}
}
