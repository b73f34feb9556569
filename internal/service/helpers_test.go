package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/xolan/tock/internal/config"
	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/storage"
	"github.com/xolan/tock/internal/storage/jsonl"
	"github.com/xolan/tock/internal/storage/sqlite"
)

// Monday, 10:00 UTC
var testNow = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store   storage.Store
	clock   *clockwork.FakeClock
	timer   *TimerService
	catalog *CatalogService

	website entry.Project
	api     entry.Project
	landing entry.Task
}

// backend opens a fresh store in dir.
type backend struct {
	name string
	open func(dir string) (storage.Store, error)
}

var backends = []backend{
	{"jsonl", func(dir string) (storage.Store, error) { return jsonl.Open(dir, nil) }},
	{"sqlite", func(dir string) (storage.Store, error) { return sqlite.Open(filepath.Join(dir, "tock.db"), nil) }},
}

// fixtureFunc builds a seeded fixture on one backend.
type fixtureFunc func(t *testing.T) *fixture

// forEachBackend runs fn once per storage backend, each in its own subtest.
func forEachBackend(t *testing.T, fn func(t *testing.T, newFixture fixtureFunc)) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			fn(t, func(t *testing.T) *fixture {
				t.Helper()
				return newFixtureIn(t, b, "UTC")
			})
		})
	}
}

func newFixtureIn(t *testing.T, b backend, timezone string) *fixture {
	t.Helper()

	store, err := b.open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open %s store: %v", b.name, err)
	}
	t.Cleanup(func() { _ = store.Close() })

	cfg := config.DefaultConfig()
	cfg.Timezone = timezone
	clock := clockwork.NewFakeClockAt(testNow)

	f := &fixture{
		store:   store,
		clock:   clock,
		timer:   NewTimerService(store, cfg, clock, nil),
		catalog: NewCatalogService(store, clock, nil),
	}

	ctx := context.Background()
	f.website, err = store.CreateProject(ctx, entry.Project{ID: "p1", Name: "Website", CreatedAt: testNow})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	f.api, err = store.CreateProject(ctx, entry.Project{ID: "p2", Name: "API", CreatedAt: testNow})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	f.landing, err = store.CreateTask(ctx, entry.Task{ID: "t1", ProjectID: "p1", Name: "Landing page", CreatedAt: testNow})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return f
}

// activeCount counts entries without an end time across all time.
func (f *fixture) activeCount(t *testing.T) int {
	t.Helper()
	entries, err := f.store.EntriesInRange(context.Background(), storage.RangeQuery{
		Start: time.Time{},
		End:   testNow.AddDate(10, 0, 0),
	})
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	n := 0
	for _, e := range entries {
		if e.IsActive() {
			n++
		}
	}
	return n
}

func (f *fixture) allEntries(t *testing.T) []entry.Entry {
	t.Helper()
	entries, err := f.store.EntriesInRange(context.Background(), storage.RangeQuery{
		Start: time.Time{},
		End:   testNow.AddDate(10, 0, 0),
	})
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	return entries
}

func strPtr(s string) *string { return &s }
