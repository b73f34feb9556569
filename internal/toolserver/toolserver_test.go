package toolserver

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xolan/tock/internal/config"
	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/service"
	"github.com/xolan/tock/internal/storage/jsonl"
	"github.com/xolan/tock/internal/storage/sqlite"
)

var testNow = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

type harness struct {
	clock *clockwork.FakeClock
	tools map[string]tool
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store, err := jsonl.Open(t.TempDir(), nil)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = store.CreateProject(ctx, entry.Project{ID: "p1", Name: "Website", CreatedAt: testNow})
	require.NoError(t, err)
	_, err = store.CreateTask(ctx, entry.Task{ID: "t1", ProjectID: "p1", Name: "Landing page", CreatedAt: testNow})
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	clock := clockwork.NewFakeClockAt(testNow)
	svc := service.NewServicesWithStore(store, "", cfg, clock, nil)

	h := &harness{clock: clock, tools: map[string]tool{}}
	for _, tl := range tools(svc, nil) {
		h.tools[tl.Definition().Name] = tl
	}
	return h
}

func (h *harness) call(t *testing.T, name string, args map[string]any) (string, bool) {
	t.Helper()

	tl, ok := h.tools[name]
	require.True(t, ok, "tool %q not registered", name)

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := tl.Handle(context.Background(), req)
	require.NoError(t, err, "handlers must not return protocol errors")
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text, res.IsError
}

func TestTools_Registered(t *testing.T) {
	h := newHarness(t)

	for _, name := range []string{
		"start_timer", "stop_timer", "get_timer_status", "log_time", "get_time_summary",
		"update_time_entry", "delete_time_entry", "list_projects", "list_tasks",
	} {
		assert.Contains(t, h.tools, name)
	}
}

func TestTimerFlow(t *testing.T) {
	h := newHarness(t)

	text, isErr := h.call(t, "get_timer_status", nil)
	assert.False(t, isErr)
	assert.Equal(t, "No timer is running.", text)

	text, isErr = h.call(t, "start_timer", map[string]any{"projectId": "p1", "taskId": "t1"})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Started timer for Website / Landing page")
	assert.Contains(t, text, "Entry ID: ")

	h.clock.Advance(90 * time.Minute)

	text, isErr = h.call(t, "get_timer_status", nil)
	require.False(t, isErr, text)
	assert.Contains(t, text, "Elapsed: 1h 30m")

	text, isErr = h.call(t, "start_timer", map[string]any{"projectId": "p1"})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Stopped previous timer for Website / Landing page after 1h 30m")

	h.clock.Advance(30 * time.Second)

	text, isErr = h.call(t, "stop_timer", map[string]any{"notes": "done"})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Duration: 1m")

	text, isErr = h.call(t, "stop_timer", nil)
	assert.False(t, isErr, "stopping with nothing running is not an error")
	assert.Equal(t, "No timer is running.", text)
}

func TestLogTime(t *testing.T) {
	h := newHarness(t)

	text, isErr := h.call(t, "log_time", map[string]any{
		"projectId": "p1",
		"duration":  "1:30",
		"date":      "2024-01-12",
	})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Logged 1h 30m for Website (2024-01-12 09:00 - 2024-01-12 10:30)")
}

func TestErrorsRenderedAsProse(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name   string
		tool   string
		args   map[string]any
		prefix string
	}{
		{"missing project argument", "start_timer", map[string]any{}, "Invalid argument: "},
		{"unknown project", "start_timer", map[string]any{"projectId": "nope"}, "Not found: "},
		{"bad duration", "log_time", map[string]any{"projectId": "p1", "duration": "later"}, "Invalid argument: "},
		{"bad date", "log_time", map[string]any{"projectId": "p1", "duration": "1h", "date": "yesterday"}, "Invalid argument: "},
		{"bad period", "get_time_summary", map[string]any{"period": "year"}, "Invalid argument: "},
		{"empty update", "update_time_entry", map[string]any{"entryId": "x"}, "Invalid argument: "},
		{"unknown entry", "delete_time_entry", map[string]any{"entryId": "x"}, "Not found: "},
		{"unknown project tasks", "list_tasks", map[string]any{"projectId": "nope"}, "Not found: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := h.call(t, tt.tool, tt.args)
			assert.True(t, isErr)
			assert.True(t, strings.HasPrefix(text, tt.prefix), "got %q", text)
		})
	}
}

func TestErrorResult_ConcurrentStartIsAConflict(t *testing.T) {
	store, err := sqlite.Open(filepath.Join(t.TempDir(), sqlite.DBFile), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	_, err = store.CreateEntry(ctx, entry.Entry{ProjectID: "p1", StartTime: testNow, CreatedAt: testNow})
	require.NoError(t, err)
	_, err = store.CreateEntry(ctx, entry.Entry{ProjectID: "p1", StartTime: testNow, CreatedAt: testNow})
	require.Error(t, err)

	res := errorResult(slog.New(slog.NewTextHandler(io.Discard, nil)), "start_timer", err)
	require.True(t, res.IsError)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(text.Text, "Conflict: "), "got %q", text.Text)
	assert.Contains(t, text.Text, "retry")
}

func TestUpdateAndDelete(t *testing.T) {
	h := newHarness(t)

	text, isErr := h.call(t, "log_time", map[string]any{"projectId": "p1", "taskId": "t1", "duration": "30m"})
	require.False(t, isErr, text)
	id := text[strings.LastIndex(text, "Entry ID: ")+len("Entry ID: "):]

	text, isErr = h.call(t, "update_time_entry", map[string]any{"entryId": id, "duration": "3h", "taskId": ""})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Updated duration, task of entry "+id)
	assert.Contains(t, text, "Website: 3h")

	text, isErr = h.call(t, "delete_time_entry", map[string]any{"entryId": id})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Deleted entry "+id)

	_, isErr = h.call(t, "delete_time_entry", map[string]any{"entryId": id})
	assert.True(t, isErr)
}

func TestSummary(t *testing.T) {
	h := newHarness(t)

	text, isErr := h.call(t, "get_time_summary", nil)
	require.False(t, isErr, text)
	assert.Contains(t, text, "Time summary for today (2024-01-15 to 2024-01-15)")
	assert.Contains(t, text, "No time tracked.")

	_, isErr = h.call(t, "log_time", map[string]any{"projectId": "p1", "duration": "30m"})
	require.False(t, isErr)
	_, isErr = h.call(t, "start_timer", map[string]any{"projectId": "p1"})
	require.False(t, isErr)
	h.clock.Advance(45 * time.Minute)

	text, isErr = h.call(t, "get_time_summary", map[string]any{"period": "week"})
	require.False(t, isErr, text)
	assert.Contains(t, text, "- Website: 1h 15m (2 entries)")
	assert.Contains(t, text, "Total: 1h 15m across 2 entries on 1 day")
}

func TestCatalogTools(t *testing.T) {
	h := newHarness(t)

	text, isErr := h.call(t, "list_projects", nil)
	require.False(t, isErr)
	assert.Contains(t, text, "- Website (ID: p1)")

	text, isErr = h.call(t, "list_tasks", map[string]any{"projectId": "p1"})
	require.False(t, isErr)
	assert.Contains(t, text, "- Landing page (ID: t1, project: p1)")
}

func TestNew(t *testing.T) {
	store, err := jsonl.Open(t.TempDir(), nil)
	require.NoError(t, err)
	svc := service.NewServicesWithStore(store, "", config.DefaultConfig(), clockwork.NewFakeClockAt(testNow), nil)

	s := New(svc, "test", nil)
	require.NotNil(t, s)
}
