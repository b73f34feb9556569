package timer

import (
	"io"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// Target identifies what a session is timing.
type Target struct {
	SubtaskID   string
	TaskID      string
	ProjectID   string
	TaskName    string
	ProjectName string
}

// Handoff is the result of stopping a session.
// Minutes is the elapsed time floored to whole minutes; a zero value means
// the session was too short to record.
type Handoff struct {
	Target
	Minutes int
	Elapsed time.Duration
}

// Status names the three session states.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

// Session is a single-owner stopwatch. It is not safe for concurrent use.
type Session struct {
	clock  clockwork.Clock
	store  StateStore
	logger *slog.Logger
	state  State
}

// NewSession returns an idle session.
func NewSession(clock clockwork.Clock, store StateStore, logger *slog.Logger) *Session {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{clock: clock, store: store, logger: logger}
}

// LoadSession restores a session from store, or returns an idle one when
// nothing was saved.
func LoadSession(clock clockwork.Clock, store StateStore, logger *slog.Logger) (*Session, error) {
	s := NewSession(clock, store, logger)
	if store == nil {
		return s, nil
	}
	state, err := store.Load()
	if err != nil {
		return nil, err
	}
	if state != nil {
		s.state = *state
	}
	return s, nil
}

// State returns a copy of the current state.
func (s *Session) State() State {
	st := s.state
	if st.StartTime != nil {
		t := *st.StartTime
		st.StartTime = &t
	}
	return st
}

// Status reports the current state.
func (s *Session) Status() Status {
	switch {
	case !s.state.IsRunning:
		return StatusIdle
	case s.state.IsPaused:
		return StatusPaused
	default:
		return StatusRunning
	}
}

// Target returns what the session is timing.
func (s *Session) Target() Target {
	return Target{
		SubtaskID:   s.state.CurrentSubtaskID,
		TaskID:      s.state.CurrentTaskID,
		ProjectID:   s.state.CurrentProjectID,
		TaskName:    s.state.CurrentTaskName,
		ProjectName: s.state.CurrentProjectName,
	}
}

// Start begins timing t. A running or paused session is replaced and its
// time discarded.
func (s *Session) Start(t Target) {
	if s.state.IsRunning {
		s.logger.Info("discarding unfinished session",
			"project_id", s.state.CurrentProjectID, "elapsed", s.Elapsed())
	}

	now := s.clock.Now()
	s.state = State{
		IsRunning:          true,
		StartTime:          &now,
		CurrentSubtaskID:   t.SubtaskID,
		CurrentTaskID:      t.TaskID,
		CurrentProjectID:   t.ProjectID,
		CurrentTaskName:    t.TaskName,
		CurrentProjectName: t.ProjectName,
	}
	s.persist()
}

// Pause banks the running segment. No-op unless running.
func (s *Session) Pause() {
	if s.Status() != StatusRunning || s.state.StartTime == nil {
		return
	}
	s.state.PausedDurationMs += s.clock.Since(*s.state.StartTime).Milliseconds()
	s.state.StartTime = nil
	s.state.IsPaused = true
	s.persist()
}

// Resume starts a new running segment. No-op unless paused.
func (s *Session) Resume() {
	if s.Status() != StatusPaused {
		return
	}
	now := s.clock.Now()
	s.state.StartTime = &now
	s.state.IsPaused = false
	s.persist()
}

// Stop ends the session and returns what was timed. It reports false when
// the session was idle.
func (s *Session) Stop() (Handoff, bool) {
	if !s.state.IsRunning {
		return Handoff{}, false
	}

	elapsed := s.Elapsed()
	h := Handoff{
		Target:  s.Target(),
		Minutes: int(elapsed / time.Minute),
		Elapsed: elapsed,
	}

	s.state = State{}
	s.clear()
	return h, true
}

// Elapsed returns banked time plus the current running segment. Zero when idle.
func (s *Session) Elapsed() time.Duration {
	if !s.state.IsRunning {
		return 0
	}
	elapsed := s.state.PausedDuration()
	if !s.state.IsPaused && s.state.StartTime != nil {
		if live := s.clock.Since(*s.state.StartTime); live > 0 {
			elapsed += live
		}
	}
	return elapsed
}

// persist saves the state; failures are logged and otherwise ignored.
func (s *Session) persist() {
	if s.store == nil {
		return
	}
	if err := s.store.Save(s.state); err != nil {
		s.logger.Warn("failed to persist timer session", "error", err)
	}
}

// clear drops the saved state once nothing is left to resume.
func (s *Session) clear() {
	if s.store == nil {
		return
	}
	if err := s.store.Clear(); err != nil {
		s.logger.Warn("failed to clear timer session", "error", err)
	}
}
