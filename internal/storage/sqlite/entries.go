package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/storage"
)

const entryColumns = `id, project_id, task_id, subtask_id, start_time, end_time, duration, notes, is_manual, created_at`

// CreateEntry inserts e, assigning an ID when empty.
func (s *Store) CreateEntry(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO time_entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ProjectID, e.TaskID, e.SubtaskID,
		toMillis(e.StartTime), nullMillis(e.EndTime),
		e.Duration, e.Notes, e.IsManual, toMillis(e.CreatedAt),
	)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("inserting entry: %w", mapConstraint(err))
	}
	return e, nil
}

// GetEntry returns the entry with the given ID.
func (s *Store) GetEntry(ctx context.Context, id string) (entry.Entry, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM time_entries WHERE id = ?`, id)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entry.Entry{}, fmt.Errorf("time entry %q: %w", id, entry.ErrNotFound)
	}
	if err != nil {
		return entry.Entry{}, fmt.Errorf("querying entry: %w", err)
	}
	return e, nil
}

// UpdateEntry applies the non-nil patch fields.
func (s *Store) UpdateEntry(ctx context.Context, id string, patch storage.EntryPatch) (entry.Entry, error) {
	if patch.IsEmpty() {
		return s.GetEntry(ctx, id)
	}

	var sets []string
	var args []any

	if patch.ProjectID != nil {
		sets = append(sets, "project_id = ?")
		args = append(args, *patch.ProjectID)
	}
	if patch.TaskID != nil {
		sets = append(sets, "task_id = ?")
		args = append(args, *patch.TaskID)
	}
	if patch.EndTime != nil {
		sets = append(sets, "end_time = ?")
		args = append(args, toMillis(*patch.EndTime))
	}
	if patch.Duration != nil {
		sets = append(sets, "duration = ?")
		args = append(args, *patch.Duration)
	}
	if patch.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *patch.Notes)
	}

	args = append(args, id)
	res, err := s.q(ctx).ExecContext(ctx,
		`UPDATE time_entries SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("updating entry: %w", mapConstraint(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entry.Entry{}, fmt.Errorf("time entry %q: %w", id, entry.ErrNotFound)
	}

	return s.GetEntry(ctx, id)
}

// DeleteEntry removes the entry permanently.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	res, err := s.q(ctx).ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("time entry %q: %w", id, entry.ErrNotFound)
	}
	return nil
}

// ActiveEntry returns the entry with no end time, if any.
func (s *Store) ActiveEntry(ctx context.Context) (*entry.Entry, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM time_entries WHERE end_time IS NULL ORDER BY start_time DESC LIMIT 1`)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying active entry: %w", err)
	}
	return &e, nil
}

// EntriesInRange returns entries starting inside the window, newest first.
func (s *Store) EntriesInRange(ctx context.Context, q storage.RangeQuery) ([]entry.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE start_time >= ? AND start_time <= ?`
	args := []any{toMillis(q.Start), toMillis(q.End)}
	if q.ProjectID != "" {
		query += ` AND project_id = ?`
		args = append(args, q.ProjectID)
	}
	query += ` ORDER BY start_time DESC, rowid ASC`

	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []entry.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (entry.Entry, error) {
	var e entry.Entry
	var start, created int64
	var end sql.NullInt64

	if err := sc.Scan(
		&e.ID, &e.ProjectID, &e.TaskID, &e.SubtaskID,
		&start, &end, &e.Duration, &e.Notes, &e.IsManual, &created,
	); err != nil {
		return entry.Entry{}, err
	}

	e.StartTime = fromMillis(start)
	e.CreatedAt = fromMillis(created)
	if end.Valid {
		t := fromMillis(end.Int64)
		e.EndTime = &t
	}
	return e, nil
}

// Times are stored as Unix milliseconds so range filters compare numerically.
func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func nullMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

func mapConstraint(err error) error {
	if strings.Contains(err.Error(), "idx_time_entries_single_active") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed: index") {
		return fmt.Errorf("%w: %v", ErrActiveTimerExists, err)
	}
	return err
}
