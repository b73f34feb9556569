package entry

import (
	"testing"
	"time"
)

func TestEntry_IsActive(t *testing.T) {
	end := time.Date(2024, time.January, 15, 11, 0, 0, 0, time.UTC)

	active := Entry{StartTime: end.Add(-time.Hour)}
	if !active.IsActive() {
		t.Error("expected entry without end time to be active")
	}

	stopped := Entry{StartTime: end.Add(-time.Hour), EndTime: &end}
	if stopped.IsActive() {
		t.Error("expected entry with end time to be stopped")
	}
}

func TestStoppedMinutes(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		expected int
	}{
		{"zero floors to one", 0, 1},
		{"seconds floor to one", 10 * time.Second, 1},
		{"rounds down", 2*time.Minute + 29*time.Second, 2},
		{"rounds up", 2*time.Minute + 30*time.Second, 3},
		{"hours", 90 * time.Minute, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StoppedMinutes(tt.elapsed); got != tt.expected {
				t.Errorf("StoppedMinutes(%v) = %d, expected %d", tt.elapsed, got, tt.expected)
			}
		})
	}
}

func TestElapsedMinutes_NoFloor(t *testing.T) {
	if got := ElapsedMinutes(10 * time.Second); got != 0 {
		t.Errorf("ElapsedMinutes(10s) = %d, expected 0", got)
	}
	if got := ElapsedMinutes(45 * time.Minute); got != 45 {
		t.Errorf("ElapsedMinutes(45m) = %d, expected 45", got)
	}
}
