// Package filter narrows entry listings by project, task and notes keyword.
package filter

import (
	"strings"

	"github.com/xolan/tock/internal/entry"
)

// Filter represents filtering criteria for time entries.
// All filter fields are optional - empty values match all entries.
type Filter struct {
	ProjectID string // Exact project ID match
	TaskID    string // Exact task ID match
	Keyword   string // Case-insensitive substring search in entry notes
}

// NewFilter creates a new Filter with the given criteria.
func NewFilter(projectID, taskID, keyword string) *Filter {
	return &Filter{
		ProjectID: strings.TrimSpace(projectID),
		TaskID:    strings.TrimSpace(taskID),
		Keyword:   strings.TrimSpace(keyword),
	}
}

// IsEmpty returns true if all filter fields are empty (matches all entries)
func (f *Filter) IsEmpty() bool {
	return f == nil || f.ProjectID == "" && f.TaskID == "" && f.Keyword == ""
}

// FilterEntries returns a new slice containing only entries that match the filter criteria.
// If the filter is empty, returns all entries.
func FilterEntries(entries []entry.Entry, f *Filter) []entry.Entry {
	if f.IsEmpty() {
		return entries
	}

	filtered := make([]entry.Entry, 0)
	for _, e := range entries {
		if f.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// MatchesKeyword returns true if the keyword is found in the entry's notes (case-insensitive).
func (f *Filter) MatchesKeyword(e entry.Entry) bool {
	if f.Keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Notes), strings.ToLower(f.Keyword))
}

// MatchesProject returns true if the entry belongs to the filter project.
func (f *Filter) MatchesProject(e entry.Entry) bool {
	return f.ProjectID == "" || e.ProjectID == f.ProjectID
}

// MatchesTask returns true if the entry is booked on the filter task.
func (f *Filter) MatchesTask(e entry.Entry) bool {
	return f.TaskID == "" || e.TaskID == f.TaskID
}

// Matches returns true if the entry satisfies every criterion.
func (f *Filter) Matches(e entry.Entry) bool {
	if f.IsEmpty() {
		return true
	}
	return f.MatchesProject(e) && f.MatchesTask(e) && f.MatchesKeyword(e)
}

// Describe renders the active criteria for display, e.g. "task t1, notes matching "review"".
func (f *Filter) Describe() string {
	if f.IsEmpty() {
		return ""
	}
	var parts []string
	if f.ProjectID != "" {
		parts = append(parts, "project "+f.ProjectID)
	}
	if f.TaskID != "" {
		parts = append(parts, "task "+f.TaskID)
	}
	if f.Keyword != "" {
		parts = append(parts, "notes matching \""+f.Keyword+"\"")
	}
	return strings.Join(parts, ", ")
}
