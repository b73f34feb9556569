package storage

import (
	"testing"
	"time"

	"github.com/xolan/tock/internal/entry"
)

func TestEntryPatch_IsEmpty(t *testing.T) {
	if !(EntryPatch{}).IsEmpty() {
		t.Error("expected zero patch to be empty")
	}
	notes := ""
	if (EntryPatch{Notes: &notes}).IsEmpty() {
		t.Error("expected patch with empty notes to be non-empty")
	}
}

func TestEntryPatch_Apply(t *testing.T) {
	start := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	e := entry.Entry{ID: "e1", ProjectID: "p1", TaskID: "t1", StartTime: start, Notes: "keep"}

	end := start.Add(3 * time.Hour)
	duration := 180
	task := ""
	got := EntryPatch{EndTime: &end, Duration: &duration, TaskID: &task}.Apply(e)

	if got.EndTime == nil || !got.EndTime.Equal(end) {
		t.Errorf("EndTime = %v, expected %v", got.EndTime, end)
	}
	if got.Duration != 180 {
		t.Errorf("Duration = %d, expected 180", got.Duration)
	}
	if got.TaskID != "" {
		t.Errorf("TaskID = %q, expected cleared", got.TaskID)
	}
	if got.ProjectID != "p1" || got.Notes != "keep" {
		t.Errorf("unpatched fields changed: %+v", got)
	}
	if e.EndTime != nil {
		t.Error("Apply must not modify the original entry")
	}
}
