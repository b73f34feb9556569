// Package service provides the business logic layer for tock.
// It owns the single-active-timer state machine and wraps storage, stats
// and config behind one API shared by the CLI, the TUI and the tool server.
package service

import (
	"time"

	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/timeutil"
)

// Labels are the display names resolved for an entry's references.
// A name falls back to the raw ID when the record cannot be found.
type Labels struct {
	ProjectName string
	TaskName    string
}

// StartInput identifies what a new timer tracks.
type StartInput struct {
	ProjectID string
	TaskID    string
	SubtaskID string
	Notes     string
}

// StartResult describes a started timer and, when one was running,
// the timer that was closed to make room for it.
type StartResult struct {
	Entry entry.Entry
	Labels
	AutoStopped *StopResult
}

// StopResult describes a stopped timer. Stopped is false when nothing was running.
type StopResult struct {
	Stopped bool
	Entry   entry.Entry
	Labels
}

// TimerStatus describes the running timer, if any.
type TimerStatus struct {
	Running        bool
	Entry          entry.Entry
	ElapsedMinutes int
	Labels
}

// LogInput describes a manual entry. Duration is free-form (see entry.ParseDuration);
// Date is YYYY-MM-DD and backdates the entry when set.
type LogInput struct {
	ProjectID string
	TaskID    string
	SubtaskID string
	Duration  string
	Notes     string
	Date      string
}

// LogResult describes a logged entry.
type LogResult struct {
	Entry entry.Entry
	Labels
}

// UpdateInput holds the fields to change. Nil fields are left untouched;
// an empty TaskID clears the task.
type UpdateInput struct {
	EntryID   string
	Duration  *string
	Notes     *string
	ProjectID *string
	TaskID    *string
}

// IsEmpty reports whether no field was supplied.
func (in UpdateInput) IsEmpty() bool {
	return in.Duration == nil && in.Notes == nil && in.ProjectID == nil && in.TaskID == nil
}

// UpdateResult describes an edited entry and which fields changed.
type UpdateResult struct {
	Entry entry.Entry
	Labels
	Changed []string
}

// ProjectSummary is one project's share of a summary.
type ProjectSummary struct {
	ProjectID    string
	ProjectName  string
	TotalMinutes int
	EntryCount   int
}

// SummaryResult contains per-project totals for a period.
type SummaryResult struct {
	Period       timeutil.Period
	Start        time.Time
	End          time.Time
	ProjectID    string
	TotalMinutes int
	EntryCount   int
	Days         int // distinct days with entries, in the configured zone
	Projects     []ProjectSummary
}

// ListResult contains the entries of a window, newest first.
type ListResult struct {
	Period  string // Human-readable period description
	Start   time.Time
	End     time.Time
	Entries []LabeledEntry
	Total   int // Total duration in minutes, live for a running timer
}

// LabeledEntry is an entry with its display names.
type LabeledEntry struct {
	Entry entry.Entry
	Labels
}
