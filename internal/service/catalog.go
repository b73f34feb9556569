package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/storage"
)

// CatalogService manages the projects and tasks entries are booked against.
type CatalogService struct {
	store  storage.Catalog
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(store storage.Catalog, clock clockwork.Clock, logger *slog.Logger) *CatalogService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CatalogService{store: store, clock: clock, logger: logger.With("service", "catalog")}
}

// ListProjects returns all projects ordered by name.
func (s *CatalogService) ListProjects(ctx context.Context) ([]entry.Project, error) {
	return s.store.ListProjects(ctx)
}

// ListTasks returns the tasks of a project, or all tasks when projectID is empty.
// A named project must exist.
func (s *CatalogService) ListTasks(ctx context.Context, projectID string) ([]entry.Task, error) {
	if projectID != "" {
		if _, err := s.store.GetProject(ctx, projectID); err != nil {
			return nil, err
		}
	}
	return s.store.ListTasks(ctx, projectID)
}

// AddProject creates a project.
func (s *CatalogService) AddProject(ctx context.Context, name string) (*entry.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name cannot be empty", entry.ErrInvalidArgument)
	}
	p, err := s.store.CreateProject(ctx, entry.Project{Name: name, CreatedAt: s.clock.Now()})
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	s.logger.Info("project created", "project_id", p.ID)
	return &p, nil
}

// AddTask creates a task under an existing project.
func (s *CatalogService) AddTask(ctx context.Context, projectID, name string) (*entry.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: task name cannot be empty", entry.ErrInvalidArgument)
	}
	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	t, err := s.store.CreateTask(ctx, entry.Task{ProjectID: projectID, Name: name, CreatedAt: s.clock.Now()})
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	s.logger.Info("task created", "task_id", t.ID, "project_id", projectID)
	return &t, nil
}
