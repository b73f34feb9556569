// Package timer implements the client-side timer session: a pausable stopwatch
// whose state survives process restarts. A stopped session is handed off to the
// caller, which decides whether to persist it as a time entry.
package timer

import (
	"encoding/json"
	"os"
	"time"

	"github.com/xolan/tock/internal/osutil"
)

// TimerFile is the name of the JSON session state file
const TimerFile = "timer.json"

// State is the persisted session. Elapsed time is always recomputed from
// StartTime and PausedDurationMs, never accumulated by ticks.
type State struct {
	IsRunning          bool       `json:"is_running"`
	IsPaused           bool       `json:"is_paused"`
	StartTime          *time.Time `json:"start_time"`
	PausedDurationMs   int64      `json:"paused_duration_ms"`
	CurrentSubtaskID   string     `json:"current_subtask_id,omitempty"`
	CurrentTaskID      string     `json:"current_task_id,omitempty"`
	CurrentProjectID   string     `json:"current_project_id,omitempty"`
	CurrentTaskName    string     `json:"current_task_name,omitempty"`
	CurrentProjectName string     `json:"current_project_name,omitempty"`
}

// PausedDuration returns the banked time.
func (s State) PausedDuration() time.Duration {
	return time.Duration(s.PausedDurationMs) * time.Millisecond
}

// StateStore persists session state.
type StateStore interface {
	Save(state State) error
	// Load returns nil when no state has been saved.
	Load() (*State, error)
	Clear() error
}

// FileStore keeps the state in a single JSON file.
type FileStore struct {
	Path string
}

// GetTimerPath returns the path to the session state file.
// Creates the application directory if it doesn't exist.
func GetTimerPath() (string, error) {
	return osutil.AppPath(TimerFile)
}

// Save writes the state to the file.
// Uses atomic write pattern (write to temp file, then rename) for safety.
func (f FileStore) Save(state State) error {
	// State contains only JSON-safe types, so Marshal cannot fail
	data, _ := json.MarshalIndent(state, "", "  ")

	tmpFile := f.Path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpFile, f.Path)
}

// Load reads the state from the file.
// Returns nil if the file doesn't exist.
func (f FileStore) Load() (*State, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Clear removes the state file. Idempotent.
func (f FileStore) Clear() error {
	err := os.Remove(f.Path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
