package filter

import (
	"testing"
	"time"

	"github.com/xolan/tock/internal/entry"
)

// Helper function to create test entries
func makeEntry(projectID, taskID, notes string) entry.Entry {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	return entry.Entry{
		ID:        projectID + "-" + taskID,
		ProjectID: projectID,
		TaskID:    taskID,
		StartTime: start,
		EndTime:   &end,
		Duration:  60,
		Notes:     notes,
	}
}

func TestNewFilter_TrimsWhitespace(t *testing.T) {
	f := NewFilter("  p1 ", "\tt1", " review  ")
	if f.ProjectID != "p1" || f.TaskID != "t1" || f.Keyword != "review" {
		t.Errorf("NewFilter() = %+v, want trimmed fields", *f)
	}
}

func TestFilter_IsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   bool
	}{
		{"nil filter", nil, true},
		{"zero filter", &Filter{}, true},
		{"whitespace only", NewFilter(" ", " ", " "), true},
		{"project only", NewFilter("p1", "", ""), false},
		{"task only", NewFilter("", "t1", ""), false},
		{"keyword only", NewFilter("", "", "review"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Matches(t *testing.T) {
	e := makeEntry("p1", "t1", "Hero section Review")

	tests := []struct {
		name   string
		filter *Filter
		want   bool
	}{
		{"empty filter matches", &Filter{}, true},
		{"project match", NewFilter("p1", "", ""), true},
		{"project mismatch", NewFilter("p2", "", ""), false},
		{"task match", NewFilter("", "t1", ""), true},
		{"task mismatch", NewFilter("", "t2", ""), false},
		{"keyword ignores case", NewFilter("", "", "review"), true},
		{"keyword substring", NewFilter("", "", "o sec"), true},
		{"keyword mismatch", NewFilter("", "", "backlog"), false},
		{"all criteria match", NewFilter("p1", "t1", "hero"), true},
		{"one criterion fails", NewFilter("p1", "t1", "backlog"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(e); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_KeywordNeverMatchesEmptyNotes(t *testing.T) {
	f := NewFilter("", "", "review")
	if f.Matches(makeEntry("p1", "", "")) {
		t.Error("expected keyword filter to skip entries without notes")
	}
}

func TestFilterEntries(t *testing.T) {
	entries := []entry.Entry{
		makeEntry("p1", "t1", "review"),
		makeEntry("p1", "", "planning"),
		makeEntry("p2", "t3", "review"),
	}

	t.Run("empty filter returns input", func(t *testing.T) {
		got := FilterEntries(entries, nil)
		if len(got) != len(entries) {
			t.Errorf("FilterEntries() returned %d entries, want %d", len(got), len(entries))
		}
	})

	t.Run("keyword across projects", func(t *testing.T) {
		got := FilterEntries(entries, NewFilter("", "", "review"))
		if len(got) != 2 {
			t.Fatalf("FilterEntries() returned %d entries, want 2", len(got))
		}
		if got[0].ProjectID != "p1" || got[1].ProjectID != "p2" {
			t.Errorf("FilterEntries() changed the order: %+v", got)
		}
	})

	t.Run("no match returns empty slice", func(t *testing.T) {
		got := FilterEntries(entries, NewFilter("p9", "", ""))
		if got == nil || len(got) != 0 {
			t.Errorf("FilterEntries() = %v, want empty non-nil slice", got)
		}
	})
}

func TestFilter_Describe(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   string
	}{
		{"empty", nil, ""},
		{"task", NewFilter("", "t1", ""), "task t1"},
		{"all", NewFilter("p1", "t1", "review"), `project p1, task t1, notes matching "review"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Describe(); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}
