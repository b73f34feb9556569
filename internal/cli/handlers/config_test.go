package handlers

import (
	"os"
	"testing"
)

func TestShowConfig(t *testing.T) {
	env := setupTestDeps(t)

	ShowConfig(env.deps)
	env.expectSuccess(t)
	expectContains(t, env.stdout.String(),
		"Status: Using defaults (no config file)",
		`timezone = "UTC"`,
		`backend = "jsonl"`,
		"Data: ",
	)
}

func TestInitConfig(t *testing.T) {
	env := setupTestDeps(t)

	InitConfig(env.deps)
	env.expectSuccess(t)
	expectContains(t, env.stdout.String(), "Created config file: ")

	path := env.deps.Services.Config.GetPath()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s: %v", path, err)
	}

	env.reset()
	ShowConfig(env.deps)
	expectContains(t, env.stdout.String(), "Status: File exists")

	env.reset()
	InitConfig(env.deps)
	env.expectFailure(t, "already exists")
}
