package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/xolan/tock/internal/config"
	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/storage"
	"github.com/xolan/tock/internal/timer"
	"github.com/xolan/tock/internal/timeutil"
)

// TimerService runs the single-active-timer state machine over persisted entries.
// At most one entry without an end time exists at any moment.
type TimerService struct {
	store  storage.Store
	clock  clockwork.Clock
	logger *slog.Logger

	location        *time.Location
	manualEntryHour int
}

// NewTimerService creates a new TimerService
func NewTimerService(store storage.Store, cfg config.Config, clock clockwork.Clock, logger *slog.Logger) *TimerService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	loc, err := cfg.Location()
	if err != nil {
		logger.Warn("falling back to local timezone", "error", err)
		loc = time.Local
	}
	return &TimerService{
		store:           store,
		clock:           clock,
		logger:          logger.With("service", "timer"),
		location:        loc,
		manualEntryHour: cfg.ManualEntryHour,
	}
}

func (s *TimerService) now() time.Time {
	return s.clock.Now().In(s.location)
}

// localize moves e's timestamps into the configured zone; stores may hand
// them back in any zone.
func (s *TimerService) localize(e entry.Entry) entry.Entry {
	e.StartTime = e.StartTime.In(s.location)
	e.CreatedAt = e.CreatedAt.In(s.location)
	if e.EndTime != nil {
		end := e.EndTime.In(s.location)
		e.EndTime = &end
	}
	return e
}

// Start begins a timer for the project. A running timer is stopped first
// and reported in the result; both happen in one transaction.
func (s *TimerService) Start(ctx context.Context, in StartInput) (*StartResult, error) {
	project, err := s.store.GetProject(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	labels := Labels{ProjectName: project.Name}
	if in.TaskID != "" {
		task, err := s.store.GetTask(ctx, in.TaskID)
		if err != nil {
			return nil, err
		}
		labels.TaskName = task.Name
	}

	result := &StartResult{Labels: labels}
	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		now := s.now()

		active, err := s.store.ActiveEntry(ctx)
		if err != nil {
			return err
		}
		if active != nil {
			stopped, err := s.close(ctx, *active, now, "")
			if err != nil {
				return fmt.Errorf("stopping running timer: %w", err)
			}
			result.AutoStopped = &StopResult{Stopped: true, Entry: stopped}
		}

		created, err := s.store.CreateEntry(ctx, entry.Entry{
			ProjectID: in.ProjectID,
			TaskID:    in.TaskID,
			SubtaskID: in.SubtaskID,
			StartTime: now,
			Notes:     strings.TrimSpace(in.Notes),
			CreatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("creating entry: %w", err)
		}
		result.Entry = s.localize(created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.AutoStopped != nil {
		result.AutoStopped.Labels = s.labels(ctx, result.AutoStopped.Entry)
		s.logger.Info("auto-stopped timer", "entry_id", result.AutoStopped.Entry.ID,
			"duration", result.AutoStopped.Entry.Duration)
	}
	s.logger.Info("timer started", "entry_id", result.Entry.ID, "project_id", in.ProjectID)
	return result, nil
}

// Stop closes the running timer, appending notes to any existing ones.
// Stopping with nothing running is not an error.
func (s *TimerService) Stop(ctx context.Context, notes string) (*StopResult, error) {
	result := &StopResult{}
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		active, err := s.store.ActiveEntry(ctx)
		if err != nil {
			return err
		}
		if active == nil {
			return nil
		}
		stopped, err := s.close(ctx, *active, s.now(), notes)
		if err != nil {
			return err
		}
		result.Stopped = true
		result.Entry = stopped
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !result.Stopped {
		return result, nil
	}

	result.Labels = s.labels(ctx, result.Entry)
	s.logger.Info("timer stopped", "entry_id", result.Entry.ID, "duration", result.Entry.Duration)
	return result, nil
}

// close ends e at now with a duration of at least one minute.
func (s *TimerService) close(ctx context.Context, e entry.Entry, now time.Time, notes string) (entry.Entry, error) {
	duration := entry.StoppedMinutes(now.Sub(e.StartTime))
	patch := storage.EntryPatch{EndTime: &now, Duration: &duration}
	if merged, ok := appendNotes(e.Notes, notes); ok {
		patch.Notes = &merged
	}
	closed, err := s.store.UpdateEntry(ctx, e.ID, patch)
	if err != nil {
		return entry.Entry{}, err
	}
	return s.localize(closed), nil
}

func appendNotes(existing, added string) (string, bool) {
	added = strings.TrimSpace(added)
	if added == "" {
		return existing, false
	}
	if existing == "" {
		return added, true
	}
	return existing + "\n" + added, true
}

// Status reports the running timer without changing anything.
func (s *TimerService) Status(ctx context.Context) (*TimerStatus, error) {
	active, err := s.store.ActiveEntry(ctx)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return &TimerStatus{}, nil
	}
	e := s.localize(*active)
	return &TimerStatus{
		Running:        true,
		Entry:          e,
		ElapsedMinutes: entry.ElapsedMinutes(s.now().Sub(e.StartTime)),
		Labels:         s.labels(ctx, e),
	}, nil
}

// Log records a finished manual entry. It never touches the running timer.
// Without a date the entry ends now; with one it starts at the configured
// hour of that day.
func (s *TimerService) Log(ctx context.Context, in LogInput) (*LogResult, error) {
	minutes, err := entry.ParseDuration(in.Duration)
	if err != nil {
		return nil, err
	}
	d := time.Duration(minutes) * time.Minute

	now := s.now()
	start, end := now.Add(-d), now
	if strings.TrimSpace(in.Date) != "" {
		day, err := timeutil.ParseDay(in.Date, s.location)
		if err != nil {
			return nil, err
		}
		start = time.Date(day.Year(), day.Month(), day.Day(), s.manualEntryHour, 0, 0, 0, s.location)
		end = start.Add(d)
	}

	project, err := s.store.GetProject(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	labels := Labels{ProjectName: project.Name}
	if in.TaskID != "" {
		labels.TaskName = s.taskName(ctx, in.TaskID)
	}

	created, err := s.store.CreateEntry(ctx, entry.Entry{
		ProjectID: in.ProjectID,
		TaskID:    in.TaskID,
		SubtaskID: in.SubtaskID,
		StartTime: start,
		EndTime:   &end,
		Duration:  minutes,
		Notes:     strings.TrimSpace(in.Notes),
		IsManual:  true,
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("creating entry: %w", err)
	}

	s.logger.Info("time logged", "entry_id", created.ID, "duration", minutes)
	return &LogResult{Entry: s.localize(created), Labels: labels}, nil
}

// Update edits an entry. A new duration recomputes the end time from the
// start time, which also closes an entry that was still running.
func (s *TimerService) Update(ctx context.Context, in UpdateInput) (*UpdateResult, error) {
	if in.IsEmpty() {
		return nil, fmt.Errorf("%w: at least one field to update must be provided", entry.ErrInvalidArgument)
	}

	var patch storage.EntryPatch
	var changed []string

	var minutes int
	if in.Duration != nil {
		var err error
		if minutes, err = entry.ParseDuration(*in.Duration); err != nil {
			return nil, err
		}
	}
	if in.ProjectID != nil {
		if _, err := s.store.GetProject(ctx, *in.ProjectID); err != nil {
			return nil, err
		}
	}

	result := &UpdateResult{}
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		e, err := s.store.GetEntry(ctx, in.EntryID)
		if err != nil {
			return err
		}

		if in.Duration != nil {
			end := e.StartTime.Add(time.Duration(minutes) * time.Minute)
			patch.Duration = &minutes
			patch.EndTime = &end
			changed = append(changed, "duration")
		}
		if in.Notes != nil {
			notes := strings.TrimSpace(*in.Notes)
			patch.Notes = &notes
			changed = append(changed, "notes")
		}
		if in.ProjectID != nil {
			patch.ProjectID = in.ProjectID
			changed = append(changed, "project")
		}
		if in.TaskID != nil {
			patch.TaskID = in.TaskID
			changed = append(changed, "task")
		}

		updated, err := s.store.UpdateEntry(ctx, e.ID, patch)
		if err != nil {
			return err
		}
		result.Entry = s.localize(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Labels = s.labels(ctx, result.Entry)
	result.Changed = changed
	s.logger.Info("entry updated", "entry_id", result.Entry.ID, "changed", changed)
	return result, nil
}

// Get returns one entry with its display names.
func (s *TimerService) Get(ctx context.Context, entryID string) (*LabeledEntry, error) {
	e, err := s.store.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	e = s.localize(e)
	return &LabeledEntry{Entry: e, Labels: s.labels(ctx, e)}, nil
}

// Delete removes an entry permanently and returns it.
func (s *TimerService) Delete(ctx context.Context, entryID string) (*LabeledEntry, error) {
	var deleted entry.Entry
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		e, err := s.store.GetEntry(ctx, entryID)
		if err != nil {
			return err
		}
		if err := s.store.DeleteEntry(ctx, entryID); err != nil {
			return err
		}
		deleted = s.localize(e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("entry deleted", "entry_id", entryID)
	return &LabeledEntry{Entry: deleted, Labels: s.labels(ctx, deleted)}, nil
}

// RecordSession persists a stopped client session as a finished entry
// ending now. Sessions shorter than a minute are not recorded and return nil.
func (s *TimerService) RecordSession(ctx context.Context, h timer.Handoff) (*entry.Entry, error) {
	if h.Minutes <= 0 {
		s.logger.Debug("skipping session under one minute", "elapsed", h.Elapsed)
		return nil, nil
	}
	if _, err := s.store.GetProject(ctx, h.ProjectID); err != nil {
		return nil, err
	}

	now := s.now()
	end := now
	created, err := s.store.CreateEntry(ctx, entry.Entry{
		ProjectID: h.ProjectID,
		TaskID:    h.TaskID,
		SubtaskID: h.SubtaskID,
		StartTime: now.Add(-time.Duration(h.Minutes) * time.Minute),
		EndTime:   &end,
		Duration:  h.Minutes,
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("creating entry: %w", err)
	}

	s.logger.Info("session recorded", "entry_id", created.ID, "duration", h.Minutes)
	created = s.localize(created)
	return &created, nil
}

// labels resolves display names, falling back to the raw IDs.
func (s *TimerService) labels(ctx context.Context, e entry.Entry) Labels {
	l := Labels{ProjectName: e.ProjectID}
	if p, err := s.store.GetProject(ctx, e.ProjectID); err == nil {
		l.ProjectName = p.Name
	} else if !errors.Is(err, entry.ErrNotFound) {
		s.logger.Warn("project lookup failed", "project_id", e.ProjectID, "error", err)
	}
	if e.TaskID != "" {
		l.TaskName = s.taskName(ctx, e.TaskID)
	}
	return l
}

func (s *TimerService) taskName(ctx context.Context, taskID string) string {
	t, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		if !errors.Is(err, entry.ErrNotFound) {
			s.logger.Warn("task lookup failed", "task_id", taskID, "error", err)
		}
		return taskID
	}
	return t.Name
}
