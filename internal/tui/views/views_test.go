package views

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/xolan/tock/internal/config"
	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/service"
	"github.com/xolan/tock/internal/storage/jsonl"
	"github.com/xolan/tock/internal/timer"
	"github.com/xolan/tock/internal/timeutil"
	"github.com/xolan/tock/internal/tui/ui"
)

var testNow = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

func setupTestServices(t *testing.T) (*service.Services, *clockwork.FakeClock) {
	t.Helper()
	tmpDir := t.TempDir()

	store, err := jsonl.Open(tmpDir, nil)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	ctx := context.Background()
	if _, err := store.CreateProject(ctx, entry.Project{ID: "p1", Name: "Website", CreatedAt: testNow}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.CreateTask(ctx, entry.Task{ID: "t1", ProjectID: "p1", Name: "Landing page", CreatedAt: testNow}); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	clock := clockwork.NewFakeClockAt(testNow)
	return service.NewServicesWithStore(store, tmpDir+"/config.toml", cfg, clock, nil), clock
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newLoadedSessionModel(t *testing.T) (SessionModel, *service.Services, *clockwork.FakeClock) {
	t.Helper()
	services, clock := setupTestServices(t)
	session := timer.NewSession(clock, nil, nil)
	m := NewSessionModel(services, session, ui.DefaultStyles(), ui.DefaultKeyMap())
	m, _ = m.Update(m.loadTargets()())
	return m, services, clock
}

func TestSessionModel_LoadTargets(t *testing.T) {
	m, _, _ := newLoadedSessionModel(t)

	if len(m.targets) != 2 {
		t.Fatalf("expected project and task targets, got %d", len(m.targets))
	}
	if m.targets[0].label() != "Website" || m.targets[1].label() != "Website / Landing page" {
		t.Errorf("unexpected targets: %q, %q", m.targets[0].label(), m.targets[1].label())
	}
}

func TestSessionModel_StartPauseStop(t *testing.T) {
	m, services, clock := newLoadedSessionModel(t)

	// s opens the picker, j moves to the task, enter starts
	m, _ = m.Update(keyMsg('s'))
	if !m.IsInputMode() {
		t.Fatal("expected picker to be open")
	}
	m, _ = m.Update(keyMsg('j'))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.IsInputMode() {
		t.Fatal("expected picker to close after selection")
	}
	if m.session.Status() != timer.StatusRunning {
		t.Fatalf("expected running session, got %s", m.session.Status())
	}
	if got := m.session.Target().TaskID; got != "t1" {
		t.Errorf("expected task t1, got %q", got)
	}

	clock.Advance(20 * time.Minute)
	m, _ = m.Update(keyMsg('p'))
	if m.session.Status() != timer.StatusPaused {
		t.Fatalf("expected paused session, got %s", m.session.Status())
	}
	clock.Advance(time.Hour)
	if !strings.Contains(m.View(), "0:20:00") {
		t.Errorf("expected paused clock at 0:20:00, got: %s", m.View())
	}

	m, _ = m.Update(keyMsg('p'))
	clock.Advance(10 * time.Minute)

	m, cmd := m.Update(keyMsg('x'))
	if cmd == nil {
		t.Fatal("expected stop to return a record command")
	}
	m, next := m.Update(cmd())
	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}
	if !strings.Contains(m.View(), "Recorded 30m for Website / Landing page") {
		t.Errorf("unexpected view: %s", m.View())
	}
	if next == nil {
		t.Fatal("expected an entry recorded broadcast")
	}
	if _, ok := next().(ui.EntryRecordedMsg); !ok {
		t.Error("expected EntryRecordedMsg")
	}

	summary, err := services.Timer.Summary(context.Background(), timeutil.PeriodToday, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalMinutes != 30 {
		t.Errorf("expected 30 recorded minutes, got %d", summary.TotalMinutes)
	}
}

func TestSessionModel_ShortSessionNotRecorded(t *testing.T) {
	m, services, clock := newLoadedSessionModel(t)

	m, _ = m.Update(keyMsg('s'))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	clock.Advance(8 * time.Second)

	m, cmd := m.Update(keyMsg('x'))
	m, _ = m.Update(cmd())
	if !strings.Contains(m.View(), "Session under a minute") {
		t.Errorf("unexpected view: %s", m.View())
	}

	summary, _ := services.Timer.Summary(context.Background(), timeutil.PeriodToday, "")
	if summary.EntryCount != 0 {
		t.Errorf("expected nothing recorded, got %d entries", summary.EntryCount)
	}
}

func TestSessionModel_StopWhenIdle(t *testing.T) {
	m, _, _ := newLoadedSessionModel(t)

	_, cmd := m.Update(keyMsg('x'))
	if cmd != nil {
		t.Error("expected no command when stopping an idle session")
	}
	if !strings.Contains(m.View(), "No session running") {
		t.Errorf("unexpected view: %s", m.View())
	}
}

func TestSessionModel_PickerCancel(t *testing.T) {
	m, _, _ := newLoadedSessionModel(t)

	m, _ = m.Update(keyMsg('s'))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.IsInputMode() {
		t.Error("expected picker to close on escape")
	}
	if m.session.Status() != timer.StatusIdle {
		t.Error("expected session to stay idle")
	}
}

func TestSummaryModel(t *testing.T) {
	services, _ := setupTestServices(t)
	if _, err := services.Timer.Log(context.Background(), service.LogInput{ProjectID: "p1", Duration: "1h30m"}); err != nil {
		t.Fatal(err)
	}

	m := NewSummaryModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	if !strings.Contains(m.View(), "Loading...") {
		t.Errorf("expected loading view, got: %s", m.View())
	}

	m, _ = m.Update(m.loadSummary()())
	view := m.View()
	for _, want := range []string{"Summary for today", "Website", "1h 30m", "1 entry"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q, got: %s", want, view)
		}
	}

	m, cmd := m.Update(keyMsg('w'))
	if m.period != timeutil.PeriodWeek || cmd == nil {
		t.Errorf("expected week reload, got period %s", m.period)
	}

	if _, cmd := m.Update(ui.EntryRecordedMsg{}); cmd == nil {
		t.Error("expected a reload after an entry was recorded")
	}
}
