package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/xolan/tock/internal/entry"
)

// GetProject returns the project with the given ID.
func (s *Store) GetProject(ctx context.Context, id string) (entry.Project, error) {
	var p entry.Project
	var created int64
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, name, created_at FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return entry.Project{}, fmt.Errorf("project %q: %w", id, entry.ErrNotFound)
	}
	if err != nil {
		return entry.Project{}, fmt.Errorf("querying project: %w", err)
	}
	p.CreatedAt = fromMillis(created)
	return p, nil
}

// GetTask returns the task with the given ID.
func (s *Store) GetTask(ctx context.Context, id string) (entry.Task, error) {
	var t entry.Task
	var created int64
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, project_id, name, created_at FROM tasks WHERE id = ?`, id,
	).Scan(&t.ID, &t.ProjectID, &t.Name, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return entry.Task{}, fmt.Errorf("task %q: %w", id, entry.ErrNotFound)
	}
	if err != nil {
		return entry.Task{}, fmt.Errorf("querying task: %w", err)
	}
	t.CreatedAt = fromMillis(created)
	return t, nil
}

// ListProjects returns all projects ordered by name.
func (s *Store) ListProjects(ctx context.Context) ([]entry.Project, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT id, name, created_at FROM projects ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	projects := []entry.Project{}
	for rows.Next() {
		var p entry.Project
		var created int64
		if err := rows.Scan(&p.ID, &p.Name, &created); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		p.CreatedAt = fromMillis(created)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ListTasks returns the tasks of a project, or every task when projectID is empty.
func (s *Store) ListTasks(ctx context.Context, projectID string) ([]entry.Task, error) {
	query := `SELECT id, project_id, name, created_at FROM tasks`
	var args []any
	if projectID != "" {
		query += ` WHERE project_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY name ASC`

	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []entry.Task{}
	for rows.Next() {
		var t entry.Task
		var created int64
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Name, &created); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		t.CreatedAt = fromMillis(created)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CreateProject inserts a project, assigning an ID when empty.
func (s *Store) CreateProject(ctx context.Context, p entry.Project) (entry.Project, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO projects (id, name, created_at) VALUES (?, ?, ?)`,
		p.ID, p.Name, toMillis(p.CreatedAt))
	if err != nil {
		return entry.Project{}, fmt.Errorf("inserting project: %w", err)
	}
	return p, nil
}

// CreateTask inserts a task, assigning an ID when empty.
func (s *Store) CreateTask(ctx context.Context, t entry.Task) (entry.Task, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO tasks (id, project_id, name, created_at) VALUES (?, ?, ?, ?)`,
		t.ID, t.ProjectID, t.Name, toMillis(t.CreatedAt))
	if err != nil {
		return entry.Task{}, fmt.Errorf("inserting task: %w", err)
	}
	return t, nil
}
