package service

import (
	"context"
	"time"

	"github.com/xolan/tock/internal/stats"
	"github.com/xolan/tock/internal/storage"
	"github.com/xolan/tock/internal/timeutil"
)

// Summary totals the entries that started within the period, optionally for
// one project. A running timer counts its elapsed time as of now.
func (s *TimerService) Summary(ctx context.Context, period timeutil.Period, projectID string) (*SummaryResult, error) {
	now := s.now()
	start, end := timeutil.Window(period, now)

	entries, err := s.store.EntriesInRange(ctx, storage.RangeQuery{Start: start, End: end, ProjectID: projectID})
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i] = s.localize(entries[i])
	}
	sum := stats.Summarize(entries, now)
	result := &SummaryResult{
		Period:       period,
		Start:        start,
		End:          end,
		ProjectID:    projectID,
		TotalMinutes: sum.TotalMinutes,
		EntryCount:   sum.EntryCount,
		Days:         sum.DaysWithEntries,
		Projects:     make([]ProjectSummary, 0, len(sum.Projects)),
	}

	names := s.projectNames(ctx)
	for _, p := range sum.Projects {
		name, ok := names[p.ProjectID]
		if !ok {
			name = p.ProjectID
		}
		result.Projects = append(result.Projects, ProjectSummary{
			ProjectID:    p.ProjectID,
			ProjectName:  name,
			TotalMinutes: p.TotalMinutes,
			EntryCount:   p.EntryCount,
		})
	}
	return result, nil
}

// Entries lists the entries of a period, newest first.
func (s *TimerService) Entries(ctx context.Context, period timeutil.Period, projectID string) (*ListResult, error) {
	start, end := timeutil.Window(period, s.now())
	return s.list(ctx, period.Label(), start, end, projectID)
}

// EntriesSince lists entries from the start of since's day through today.
func (s *TimerService) EntriesSince(ctx context.Context, since time.Time, projectID string) (*ListResult, error) {
	now := s.now()
	start := timeutil.StartOfDay(since.In(s.location))
	label := "since " + start.Format("Mon, Jan 2, 2006")
	return s.list(ctx, label, start, timeutil.EndOfDay(now), projectID)
}

func (s *TimerService) list(ctx context.Context, label string, start, end time.Time, projectID string) (*ListResult, error) {
	entries, err := s.store.EntriesInRange(ctx, storage.RangeQuery{Start: start, End: end, ProjectID: projectID})
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := &ListResult{
		Period:  label,
		Start:   start,
		End:     end,
		Entries: make([]LabeledEntry, 0, len(entries)),
	}
	for _, e := range entries {
		e = s.localize(e)
		result.Entries = append(result.Entries, LabeledEntry{Entry: e, Labels: s.labels(ctx, e)})
		result.Total += stats.LiveMinutes(e, now)
	}
	return result, nil
}

// projectNames maps project IDs to names; lookup failures only cost display names.
func (s *TimerService) projectNames(ctx context.Context) map[string]string {
	names := make(map[string]string)
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		s.logger.Warn("listing projects failed", "error", err)
		return names
	}
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names
}
