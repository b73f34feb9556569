// Package stats aggregates time entries into per-project totals.
package stats

import (
	"sort"
	"time"

	"github.com/xolan/tock/internal/entry"
)

// ProjectTotal contains totals for a single project
type ProjectTotal struct {
	ProjectID    string
	TotalMinutes int
	EntryCount   int
}

// Summary contains aggregated totals for a set of entries
type Summary struct {
	TotalMinutes    int
	EntryCount      int
	DaysWithEntries int
	Projects        []ProjectTotal // sorted by TotalMinutes descending
}

// LiveMinutes returns the minutes an entry counts for at now.
// Active entries count their elapsed time so far, with a minimum of 1.
func LiveMinutes(e entry.Entry, now time.Time) int {
	if e.IsActive() {
		return entry.StoppedMinutes(now.Sub(e.StartTime))
	}
	return e.Duration
}

// Summarize groups entries by project.
// Projects with equal totals keep the order in which they were first seen.
func Summarize(entries []entry.Entry, now time.Time) Summary {
	summary := Summary{Projects: []ProjectTotal{}}
	if len(entries) == 0 {
		return summary
	}

	index := make(map[string]int)
	days := make(map[string]bool)

	for _, e := range entries {
		minutes := LiveMinutes(e, now)

		i, ok := index[e.ProjectID]
		if !ok {
			i = len(summary.Projects)
			index[e.ProjectID] = i
			summary.Projects = append(summary.Projects, ProjectTotal{ProjectID: e.ProjectID})
		}
		summary.Projects[i].TotalMinutes += minutes
		summary.Projects[i].EntryCount++

		summary.TotalMinutes += minutes
		summary.EntryCount++
		days[e.StartTime.Format("2006-01-02")] = true
	}

	summary.DaysWithEntries = len(days)

	sort.SliceStable(summary.Projects, func(i, j int) bool {
		return summary.Projects[i].TotalMinutes > summary.Projects[j].TotalMinutes
	})

	return summary
}
