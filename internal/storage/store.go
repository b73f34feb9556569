// Package storage defines the persistence contract for time entries and the
// project/task catalog. Backends live in subpackages (sqlite, jsonl).
package storage

import (
	"context"
	"time"

	"github.com/xolan/tock/internal/entry"
)

// EntryPatch holds the fields of an entry to change. Nil fields are left as is.
type EntryPatch struct {
	ProjectID *string
	TaskID    *string
	EndTime   *time.Time
	Duration  *int
	Notes     *string
}

// IsEmpty reports whether the patch changes nothing.
func (p EntryPatch) IsEmpty() bool {
	return p.ProjectID == nil && p.TaskID == nil && p.EndTime == nil && p.Duration == nil && p.Notes == nil
}

// Apply returns e with the patch applied.
func (p EntryPatch) Apply(e entry.Entry) entry.Entry {
	if p.ProjectID != nil {
		e.ProjectID = *p.ProjectID
	}
	if p.TaskID != nil {
		e.TaskID = *p.TaskID
	}
	if p.EndTime != nil {
		end := *p.EndTime
		e.EndTime = &end
	}
	if p.Duration != nil {
		e.Duration = *p.Duration
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	return e
}

// RangeQuery selects entries whose start time falls in [Start, End].
// An empty ProjectID matches every project.
type RangeQuery struct {
	Start     time.Time
	End       time.Time
	ProjectID string
}

// EntryStore persists time entries.
// Lookups of missing records return errors wrapping entry.ErrNotFound.
type EntryStore interface {
	// CreateEntry stores e, assigning an ID when e.ID is empty.
	CreateEntry(ctx context.Context, e entry.Entry) (entry.Entry, error)
	GetEntry(ctx context.Context, id string) (entry.Entry, error)
	UpdateEntry(ctx context.Context, id string, patch EntryPatch) (entry.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
	// ActiveEntry returns the entry with no end time, or nil when none exists.
	ActiveEntry(ctx context.Context) (*entry.Entry, error)
	// EntriesInRange returns matching entries ordered by start time descending.
	EntriesInRange(ctx context.Context, q RangeQuery) ([]entry.Entry, error)
}

// Catalog resolves and manages projects and tasks.
type Catalog interface {
	GetProject(ctx context.Context, id string) (entry.Project, error)
	GetTask(ctx context.Context, id string) (entry.Task, error)
	ListProjects(ctx context.Context) ([]entry.Project, error)
	// ListTasks returns the tasks of a project, or all tasks when projectID is empty.
	ListTasks(ctx context.Context, projectID string) ([]entry.Task, error)
	CreateProject(ctx context.Context, p entry.Project) (entry.Project, error)
	CreateTask(ctx context.Context, t entry.Task) (entry.Task, error)
}

// Store is a complete backend.
type Store interface {
	EntryStore
	Catalog

	// RunInTx executes fn as a single atomic unit. Store calls made with the
	// ctx passed to fn join the transaction. Nested RunInTx calls are not supported.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	Close() error
}
