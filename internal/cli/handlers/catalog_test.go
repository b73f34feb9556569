package handlers

import (
	"context"
	"testing"
)

func TestAddAndListProjects(t *testing.T) {
	env := setupTestDeps(t)
	ctx := context.Background()

	AddProject(ctx, env.deps, "  Mobile app ")
	env.expectSuccess(t)
	expectContains(t, env.stdout.String(), "Created project: Mobile app (ID: ")

	env.reset()
	ListProjects(ctx, env.deps)
	env.expectSuccess(t)
	expectContains(t, env.stdout.String(), "p2  API", "p1  Website", "Mobile app")
}

func TestAddProject_EmptyName(t *testing.T) {
	env := setupTestDeps(t)

	AddProject(context.Background(), env.deps, "   ")
	env.expectFailure(t, "Hint: Usage: tock project add <name>")
}

func TestAddAndListTasks(t *testing.T) {
	env := setupTestDeps(t)
	ctx := context.Background()

	AddTask(ctx, env.deps, "p2", "Auth endpoints")
	env.expectSuccess(t)
	expectContains(t, env.stdout.String(), "Created task: Auth endpoints (ID: ")

	env.reset()
	ListTasks(ctx, env.deps, "p2")
	env.expectSuccess(t)
	expectContains(t, env.stdout.String(), "Auth endpoints  (project: p2)")

	env.reset()
	ListTasks(ctx, env.deps, "")
	env.expectSuccess(t)
	expectContains(t, env.stdout.String(), "t1  Landing page  (project: p1)", "Auth endpoints")
}

func TestTasks_UnknownProject(t *testing.T) {
	env := setupTestDeps(t)
	ctx := context.Background()

	AddTask(ctx, env.deps, "nope", "Anything")
	env.expectFailure(t, "Hint: List projects")

	env.reset()
	ListTasks(ctx, env.deps, "nope")
	env.expectFailure(t, "Hint: List projects")
}
