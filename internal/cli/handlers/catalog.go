package handlers

import (
	"context"
	"fmt"

	"github.com/xolan/tock/internal/cli"
)

// AddProject creates a project
func AddProject(ctx context.Context, deps *cli.Deps, name string) {
	p, err := deps.Services.Catalog.AddProject(ctx, name)
	if err != nil {
		fail(deps, err, hints{invalid: "Usage: tock project add <name>"})
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Created project: %s (ID: %s)\n", p.Name, p.ID)
}

// ListProjects prints all projects
func ListProjects(ctx context.Context, deps *cli.Deps) {
	projects, err := deps.Services.Catalog.ListProjects(ctx)
	if err != nil {
		fail(deps, err, hints{})
		return
	}

	if len(projects) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No projects found")
		_, _ = fmt.Fprintln(deps.Stdout, "Create one with: tock project add <name>")
		return
	}
	for _, p := range projects {
		_, _ = fmt.Fprintf(deps.Stdout, "%s  %s\n", p.ID, p.Name)
	}
}

// AddTask creates a task under a project
func AddTask(ctx context.Context, deps *cli.Deps, projectID, name string) {
	task, err := deps.Services.Catalog.AddTask(ctx, projectID, name)
	if err != nil {
		fail(deps, err, hints{
			notFound: "List projects with 'tock project list'",
			invalid:  "Usage: tock task add <projectId> <name>",
		})
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Created task: %s (ID: %s)\n", task.Name, task.ID)
}

// ListTasks prints the tasks of one project, or of all projects when projectID is empty
func ListTasks(ctx context.Context, deps *cli.Deps, projectID string) {
	tasks, err := deps.Services.Catalog.ListTasks(ctx, projectID)
	if err != nil {
		fail(deps, err, hints{notFound: "List projects with 'tock project list'"})
		return
	}

	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No tasks found")
		return
	}
	for _, t := range tasks {
		_, _ = fmt.Fprintf(deps.Stdout, "%s  %s  (project: %s)\n", t.ID, t.Name, t.ProjectID)
	}
}
