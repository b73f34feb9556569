package jsonl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"

	"github.com/xolan/tock/internal/entry"
)

// catalogDoc is the on-disk layout of catalog.json
type catalogDoc struct {
	Projects []entry.Project `json:"projects"`
	Tasks    []entry.Task    `json:"tasks"`
}

func (s *Store) readCatalog() (catalogDoc, error) {
	var doc catalogDoc
	data, err := os.ReadFile(s.catalogPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return doc, fmt.Errorf("reading catalog: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parsing catalog: %w", err)
	}
	return doc, nil
}

func (s *Store) writeCatalog(doc catalogDoc) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.catalogPath, data); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}

// GetProject returns the project with the given ID.
func (s *Store) GetProject(ctx context.Context, id string) (entry.Project, error) {
	defer s.lock(ctx)()

	doc, err := s.readCatalog()
	if err != nil {
		return entry.Project{}, err
	}
	for _, p := range doc.Projects {
		if p.ID == id {
			return p, nil
		}
	}
	return entry.Project{}, fmt.Errorf("project %q: %w", id, entry.ErrNotFound)
}

// GetTask returns the task with the given ID.
func (s *Store) GetTask(ctx context.Context, id string) (entry.Task, error) {
	defer s.lock(ctx)()

	doc, err := s.readCatalog()
	if err != nil {
		return entry.Task{}, err
	}
	for _, t := range doc.Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return entry.Task{}, fmt.Errorf("task %q: %w", id, entry.ErrNotFound)
}

// ListProjects returns all projects ordered by name.
func (s *Store) ListProjects(ctx context.Context) ([]entry.Project, error) {
	defer s.lock(ctx)()

	doc, err := s.readCatalog()
	if err != nil {
		return nil, err
	}
	projects := append([]entry.Project{}, doc.Projects...)
	sort.SliceStable(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

// ListTasks returns the tasks of a project ordered by name.
func (s *Store) ListTasks(ctx context.Context, projectID string) ([]entry.Task, error) {
	defer s.lock(ctx)()

	doc, err := s.readCatalog()
	if err != nil {
		return nil, err
	}
	tasks := []entry.Task{}
	for _, t := range doc.Tasks {
		if projectID == "" || t.ProjectID == projectID {
			tasks = append(tasks, t)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Name < tasks[j].Name })
	return tasks, nil
}

// CreateProject stores a project, assigning an ID when empty.
func (s *Store) CreateProject(ctx context.Context, p entry.Project) (entry.Project, error) {
	defer s.lock(ctx)()

	doc, err := s.readCatalog()
	if err != nil {
		return entry.Project{}, err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	doc.Projects = append(doc.Projects, p)
	if err := s.writeCatalog(doc); err != nil {
		return entry.Project{}, err
	}
	return p, nil
}

// CreateTask stores a task, assigning an ID when empty.
func (s *Store) CreateTask(ctx context.Context, t entry.Task) (entry.Task, error) {
	defer s.lock(ctx)()

	doc, err := s.readCatalog()
	if err != nil {
		return entry.Task{}, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	doc.Tasks = append(doc.Tasks, t)
	if err := s.writeCatalog(doc); err != nil {
		return entry.Task{}, err
	}
	return t, nil
}
