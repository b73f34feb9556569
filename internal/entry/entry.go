// Package entry defines the time-tracking records shared by every layer:
// time entries, the projects and tasks they reference, the error taxonomy,
// and the duration parser/formatter used for human input and output.
package entry

import (
	"math"
	"time"
)

// Entry represents a single time entry.
// An entry with a nil EndTime is the active timer; at most one may exist.
type Entry struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"project_id"`
	TaskID    string     `json:"task_id"`
	SubtaskID string     `json:"subtask_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Duration  int        `json:"duration"` // minutes; 0 while active
	Notes     string     `json:"notes,omitempty"`
	IsManual  bool       `json:"is_manual"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsActive reports whether the entry is the running timer.
func (e Entry) IsActive() bool {
	return e.EndTime == nil
}

// Project is a unit of work that time entries are booked against.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Task belongs to a project.
type Task struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ElapsedMinutes rounds d to the nearest minute without a floor.
func ElapsedMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}

// StoppedMinutes rounds d to the nearest minute with a minimum of 1 minute.
// This is the authoritative duration of a stopped entry.
func StoppedMinutes(d time.Duration) int {
	minutes := ElapsedMinutes(d)
	if minutes < 1 {
		return 1
	}
	return minutes
}
