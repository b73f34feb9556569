// Package storagetest holds the behavioural contract every storage.Store
// backend must satisfy. Backends call Run from their own tests.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/storage"
)

// Factory returns a fresh, empty store. The test owns closing it.
type Factory func(t *testing.T) storage.Store

var base = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

// Run executes the contract suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("CreateAndGetEntry", func(t *testing.T) { testCreateAndGetEntry(t, newStore(t)) })
	t.Run("GetEntryNotFound", func(t *testing.T) { testGetEntryNotFound(t, newStore(t)) })
	t.Run("UpdateEntry", func(t *testing.T) { testUpdateEntry(t, newStore(t)) })
	t.Run("UpdateEntryNotFound", func(t *testing.T) { testUpdateEntryNotFound(t, newStore(t)) })
	t.Run("DeleteEntry", func(t *testing.T) { testDeleteEntry(t, newStore(t)) })
	t.Run("ActiveEntry", func(t *testing.T) { testActiveEntry(t, newStore(t)) })
	t.Run("EntriesInRange", func(t *testing.T) { testEntriesInRange(t, newStore(t)) })
	t.Run("RunInTxCommits", func(t *testing.T) { testRunInTxCommits(t, newStore(t)) })
	t.Run("RunInTxRollsBack", func(t *testing.T) { testRunInTxRollsBack(t, newStore(t)) })
	t.Run("Catalog", func(t *testing.T) { testCatalog(t, newStore(t)) })
}

func closed(projectID string, start time.Time, minutes int) entry.Entry {
	end := start.Add(time.Duration(minutes) * time.Minute)
	return entry.Entry{
		ProjectID: projectID,
		StartTime: start,
		EndTime:   &end,
		Duration:  minutes,
		CreatedAt: start,
	}
}

func testCreateAndGetEntry(t *testing.T, s storage.Store) {
	ctx := context.Background()

	e := closed("p1", base, 30)
	e.TaskID = "t1"
	e.Notes = "first line"
	e.IsManual = true

	created, err := s.CreateEntry(ctx, e)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := s.GetEntry(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ProjectID)
	assert.Equal(t, "t1", got.TaskID)
	assert.Equal(t, "", got.SubtaskID)
	assert.True(t, got.StartTime.Equal(base))
	require.NotNil(t, got.EndTime)
	assert.True(t, got.EndTime.Equal(base.Add(30*time.Minute)))
	assert.Equal(t, 30, got.Duration)
	assert.Equal(t, "first line", got.Notes)
	assert.True(t, got.IsManual)
	assert.True(t, got.CreatedAt.Equal(base))
}

func testGetEntryNotFound(t *testing.T, s storage.Store) {
	_, err := s.GetEntry(context.Background(), "missing")
	assert.True(t, errors.Is(err, entry.ErrNotFound), "expected ErrNotFound, got %v", err)
}

func testUpdateEntry(t *testing.T, s storage.Store) {
	ctx := context.Background()

	created, err := s.CreateEntry(ctx, entry.Entry{ProjectID: "p1", TaskID: "t1", StartTime: base, CreatedAt: base})
	require.NoError(t, err)

	end := base.Add(3 * time.Hour)
	duration := 180
	notes := "edited"
	updated, err := s.UpdateEntry(ctx, created.ID, storage.EntryPatch{EndTime: &end, Duration: &duration, Notes: &notes})
	require.NoError(t, err)

	require.NotNil(t, updated.EndTime)
	assert.True(t, updated.EndTime.Equal(end))
	assert.Equal(t, 180, updated.Duration)
	assert.Equal(t, "edited", updated.Notes)
	assert.Equal(t, "p1", updated.ProjectID)
	assert.Equal(t, "t1", updated.TaskID)

	got, err := s.GetEntry(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 180, got.Duration)

	cleared := ""
	updated, err = s.UpdateEntry(ctx, created.ID, storage.EntryPatch{TaskID: &cleared})
	require.NoError(t, err)
	assert.Equal(t, "", updated.TaskID)

	unchanged, err := s.UpdateEntry(ctx, created.ID, storage.EntryPatch{})
	require.NoError(t, err)
	assert.Equal(t, 180, unchanged.Duration)
	assert.Equal(t, "edited", unchanged.Notes)
}

func testUpdateEntryNotFound(t *testing.T, s storage.Store) {
	notes := "x"
	_, err := s.UpdateEntry(context.Background(), "missing", storage.EntryPatch{Notes: &notes})
	assert.True(t, errors.Is(err, entry.ErrNotFound), "expected ErrNotFound, got %v", err)

	_, err = s.UpdateEntry(context.Background(), "missing", storage.EntryPatch{})
	assert.True(t, errors.Is(err, entry.ErrNotFound), "expected ErrNotFound for an empty patch, got %v", err)
}

func testDeleteEntry(t *testing.T, s storage.Store) {
	ctx := context.Background()

	first, err := s.CreateEntry(ctx, closed("p1", base, 10))
	require.NoError(t, err)
	second, err := s.CreateEntry(ctx, closed("p1", base.Add(time.Hour), 10))
	require.NoError(t, err)

	require.NoError(t, s.DeleteEntry(ctx, first.ID))

	_, err = s.GetEntry(ctx, first.ID)
	assert.True(t, errors.Is(err, entry.ErrNotFound))

	_, err = s.GetEntry(ctx, second.ID)
	assert.NoError(t, err)

	err = s.DeleteEntry(ctx, first.ID)
	assert.True(t, errors.Is(err, entry.ErrNotFound), "expected ErrNotFound on second delete, got %v", err)
}

func testActiveEntry(t *testing.T, s storage.Store) {
	ctx := context.Background()

	active, err := s.ActiveEntry(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)

	_, err = s.CreateEntry(ctx, closed("p1", base, 10))
	require.NoError(t, err)

	running, err := s.CreateEntry(ctx, entry.Entry{ProjectID: "p2", StartTime: base.Add(time.Hour), CreatedAt: base})
	require.NoError(t, err)

	active, err = s.ActiveEntry(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, running.ID, active.ID)
	assert.Nil(t, active.EndTime)

	end := base.Add(2 * time.Hour)
	_, err = s.UpdateEntry(ctx, running.ID, storage.EntryPatch{EndTime: &end})
	require.NoError(t, err)

	active, err = s.ActiveEntry(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func testEntriesInRange(t *testing.T, s storage.Store) {
	ctx := context.Background()

	dayStart := base.Add(-9 * time.Hour)
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	early, err := s.CreateEntry(ctx, closed("p1", base, 10))
	require.NoError(t, err)
	late, err := s.CreateEntry(ctx, closed("p2", base.Add(4*time.Hour), 10))
	require.NoError(t, err)
	_, err = s.CreateEntry(ctx, closed("p1", dayStart.Add(-time.Minute), 10))
	require.NoError(t, err)
	_, err = s.CreateEntry(ctx, closed("p1", dayEnd.Add(time.Minute), 10))
	require.NoError(t, err)

	entries, err := s.EntriesInRange(ctx, storage.RangeQuery{Start: dayStart, End: dayEnd})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, late.ID, entries[0].ID, "expected newest entry first")
	assert.Equal(t, early.ID, entries[1].ID)

	entries, err = s.EntriesInRange(ctx, storage.RangeQuery{Start: dayStart, End: dayEnd, ProjectID: "p1"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, early.ID, entries[0].ID)

	entries, err = s.EntriesInRange(ctx, storage.RangeQuery{Start: dayStart, End: dayEnd, ProjectID: "nope"})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func testRunInTxCommits(t *testing.T, s storage.Store) {
	ctx := context.Background()

	var id string
	err := s.RunInTx(ctx, func(ctx context.Context) error {
		created, err := s.CreateEntry(ctx, closed("p1", base, 15))
		if err != nil {
			return err
		}
		id = created.ID
		_, err = s.GetEntry(ctx, created.ID)
		return err
	})
	require.NoError(t, err)

	_, err = s.GetEntry(ctx, id)
	assert.NoError(t, err)
}

func testRunInTxRollsBack(t *testing.T, s storage.Store) {
	ctx := context.Background()

	kept, err := s.CreateEntry(ctx, entry.Entry{ProjectID: "p1", StartTime: base, CreatedAt: base})
	require.NoError(t, err)

	boom := errors.New("boom")
	var discarded string
	err = s.RunInTx(ctx, func(ctx context.Context) error {
		end := base.Add(time.Hour)
		if _, err := s.UpdateEntry(ctx, kept.ID, storage.EntryPatch{EndTime: &end}); err != nil {
			return err
		}
		created, err := s.CreateEntry(ctx, closed("p1", base.Add(2*time.Hour), 5))
		if err != nil {
			return err
		}
		discarded = created.ID
		return boom
	})
	require.ErrorIs(t, err, boom)

	active, err := s.ActiveEntry(ctx)
	require.NoError(t, err)
	require.NotNil(t, active, "update inside failed transaction must be rolled back")
	assert.Equal(t, kept.ID, active.ID)

	_, err = s.GetEntry(ctx, discarded)
	assert.True(t, errors.Is(err, entry.ErrNotFound), "insert inside failed transaction must be rolled back")
}

func testCatalog(t *testing.T, s storage.Store) {
	ctx := context.Background()

	_, err := s.GetProject(ctx, "missing")
	assert.True(t, errors.Is(err, entry.ErrNotFound))
	_, err = s.GetTask(ctx, "missing")
	assert.True(t, errors.Is(err, entry.ErrNotFound))

	website, err := s.CreateProject(ctx, entry.Project{Name: "Website", CreatedAt: base})
	require.NoError(t, err)
	require.NotEmpty(t, website.ID)
	api, err := s.CreateProject(ctx, entry.Project{ID: "api", Name: "API", CreatedAt: base})
	require.NoError(t, err)
	assert.Equal(t, "api", api.ID)

	got, err := s.GetProject(ctx, website.ID)
	require.NoError(t, err)
	assert.Equal(t, "Website", got.Name)

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "API", projects[0].Name)
	assert.Equal(t, "Website", projects[1].Name)

	_, err = s.CreateTask(ctx, entry.Task{ProjectID: website.ID, Name: "Landing page", CreatedAt: base})
	require.NoError(t, err)
	docs, err := s.CreateTask(ctx, entry.Task{ProjectID: api.ID, Name: "Docs", CreatedAt: base})
	require.NoError(t, err)

	task, err := s.GetTask(ctx, docs.ID)
	require.NoError(t, err)
	assert.Equal(t, "Docs", task.Name)
	assert.Equal(t, api.ID, task.ProjectID)

	tasks, err := s.ListTasks(ctx, api.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, docs.ID, tasks[0].ID)

	all, err := s.ListTasks(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
