package handlers

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/xolan/tock/internal/cli"
	"github.com/xolan/tock/internal/config"
	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/service"
	"github.com/xolan/tock/internal/storage/jsonl"
)

// Monday, 10:00 UTC
var testNow = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	deps     *cli.Deps
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	exitCode *int
	clock    *clockwork.FakeClock
}

func setupTestDeps(t *testing.T) *testEnv {
	t.Helper()
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	store, err := jsonl.Open(dataDir, nil)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	cfg.Storage.Backend = config.BackendJSONL
	cfg.Storage.Path = dataDir

	clock := clockwork.NewFakeClockAt(testNow)
	services := service.NewServicesWithStore(store, filepath.Join(tmpDir, "config.toml"), cfg, clock, nil)
	t.Cleanup(func() { _ = services.Close() })

	ctx := context.Background()
	for _, p := range []entry.Project{{ID: "p1", Name: "Website"}, {ID: "p2", Name: "API"}} {
		p.CreatedAt = testNow
		if _, err := store.CreateProject(ctx, p); err != nil {
			t.Fatalf("failed to create project: %v", err)
		}
	}
	if _, err := store.CreateTask(ctx, entry.Task{ID: "t1", ProjectID: "p1", Name: "Landing page", CreatedAt: testNow}); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0

	deps := &cli.Deps{
		Stdout:   stdout,
		Stderr:   stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { exitCode = code },
		Clock:    clock,
		Services: services,
	}

	return &testEnv{deps: deps, stdout: stdout, stderr: stderr, exitCode: &exitCode, clock: clock}
}

// reset clears captured output between steps of one test.
func (e *testEnv) reset() {
	e.stdout.Reset()
	e.stderr.Reset()
	*e.exitCode = 0
}

func (e *testEnv) expectSuccess(t *testing.T) {
	t.Helper()
	if *e.exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %s)", *e.exitCode, e.stderr.String())
	}
}

func (e *testEnv) expectFailure(t *testing.T, fragment string) {
	t.Helper()
	if *e.exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", *e.exitCode)
	}
	if !strings.Contains(e.stderr.String(), fragment) {
		t.Errorf("expected stderr to contain %q, got: %s", fragment, e.stderr.String())
	}
}

func expectContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if !strings.Contains(output, f) {
			t.Errorf("expected output to contain %q, got: %s", f, output)
		}
	}
}

func strPtr(s string) *string { return &s }
