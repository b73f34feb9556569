// Package jsonl is a file-backed store: time entries live in a JSON Lines file
// and the project/task catalog in a JSON document next to it.
package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/storage"
)

const (
	// EntriesFile is the name of the JSON Lines storage file
	EntriesFile = "entries.jsonl"
	// CatalogFile is the name of the project/task catalog file
	CatalogFile = "catalog.json"
)

// ParseWarning represents a warning about a corrupted or malformed entry
type ParseWarning struct {
	LineNumber int    // Line number in the file (1-indexed)
	Content    string // Raw content of the corrupted line
	Error      string // Description of the parsing error
}

// Store implements storage.Store on top of plain files.
// All access goes through one mutex, so a Store must be the only writer of its directory.
type Store struct {
	entriesPath string
	catalogPath string
	logger      *slog.Logger

	mu sync.Mutex
}

var _ storage.Store = (*Store)(nil)

type txKey struct{}

// Open prepares a store rooted at dir, creating the directory if needed.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{
		entriesPath: filepath.Join(dir, EntriesFile),
		catalogPath: filepath.Join(dir, CatalogFile),
		logger:      logger.With("store", "jsonl"),
	}, nil
}

// Close is a no-op; files are opened per operation.
func (s *Store) Close() error { return nil }

// lock acquires the store mutex unless ctx already belongs to a transaction.
func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// RunInTx snapshots both files, runs fn, and restores the snapshot when fn fails.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entriesSnap, err := snapshot(s.entriesPath)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	catalogSnap, err := snapshot(s.catalogPath)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	rollback := func() error {
		if err := restore(s.entriesPath, entriesSnap); err != nil {
			return err
		}
		return restore(s.catalogPath, catalogSnap)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = rollback()
			panic(r)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		if rbErr := rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}
	return nil
}

// CreateEntry appends a single entry to the JSON Lines storage file.
func (s *Store) CreateEntry(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	defer s.lock(ctx)()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := appendEntry(s.entriesPath, e); err != nil {
		return entry.Entry{}, fmt.Errorf("appending entry: %w", err)
	}
	return e, nil
}

// GetEntry returns the entry with the given ID.
func (s *Store) GetEntry(ctx context.Context, id string) (entry.Entry, error) {
	defer s.lock(ctx)()

	entries, err := s.readEntries()
	if err != nil {
		return entry.Entry{}, err
	}
	idx := indexOf(entries, id)
	if idx < 0 {
		return entry.Entry{}, fmt.Errorf("time entry %q: %w", id, entry.ErrNotFound)
	}
	return entries[idx], nil
}

// UpdateEntry applies patch to the entry and rewrites the storage file.
func (s *Store) UpdateEntry(ctx context.Context, id string, patch storage.EntryPatch) (entry.Entry, error) {
	defer s.lock(ctx)()

	entries, err := s.readEntries()
	if err != nil {
		return entry.Entry{}, err
	}
	idx := indexOf(entries, id)
	if idx < 0 {
		return entry.Entry{}, fmt.Errorf("time entry %q: %w", id, entry.ErrNotFound)
	}
	if patch.IsEmpty() {
		return entries[idx], nil
	}

	entries[idx] = patch.Apply(entries[idx])
	if err := writeEntries(s.entriesPath, entries); err != nil {
		return entry.Entry{}, fmt.Errorf("rewriting entries: %w", err)
	}
	return entries[idx], nil
}

// DeleteEntry removes the entry and rewrites the storage file.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	defer s.lock(ctx)()

	entries, err := s.readEntries()
	if err != nil {
		return err
	}
	idx := indexOf(entries, id)
	if idx < 0 {
		return fmt.Errorf("time entry %q: %w", id, entry.ErrNotFound)
	}

	remaining := append(entries[:idx:idx], entries[idx+1:]...)
	if err := writeEntries(s.entriesPath, remaining); err != nil {
		return fmt.Errorf("rewriting entries: %w", err)
	}
	return nil
}

// ActiveEntry returns the entry without an end time.
// If the file somehow holds several, the most recently started one wins.
func (s *Store) ActiveEntry(ctx context.Context) (*entry.Entry, error) {
	defer s.lock(ctx)()

	entries, err := s.readEntries()
	if err != nil {
		return nil, err
	}

	var active *entry.Entry
	for i := range entries {
		if !entries[i].IsActive() {
			continue
		}
		if active != nil {
			s.logger.Warn("multiple active entries in storage", "id", entries[i].ID, "other", active.ID)
			if !entries[i].StartTime.After(active.StartTime) {
				continue
			}
		}
		e := entries[i]
		active = &e
	}
	return active, nil
}

// EntriesInRange returns entries starting inside the query window, newest first.
func (s *Store) EntriesInRange(ctx context.Context, q storage.RangeQuery) ([]entry.Entry, error) {
	defer s.lock(ctx)()

	entries, err := s.readEntries()
	if err != nil {
		return nil, err
	}

	matched := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		if q.ProjectID != "" && e.ProjectID != q.ProjectID {
			continue
		}
		if e.StartTime.Before(q.Start) || e.StartTime.After(q.End) {
			continue
		}
		matched = append(matched, e)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].StartTime.After(matched[j].StartTime)
	})
	return matched, nil
}

// readEntries reads all entries and logs any corrupted lines.
func (s *Store) readEntries() ([]entry.Entry, error) {
	entries, warnings, err := readEntriesWithWarnings(s.entriesPath)
	if err != nil {
		return nil, fmt.Errorf("reading entries: %w", err)
	}
	for _, w := range warnings {
		s.logger.Warn("skipping corrupted entry line", "line", w.LineNumber, "error", w.Error)
	}
	return entries, nil
}

func indexOf(entries []entry.Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// appendEntry appends a single entry to the JSON Lines storage file.
// Creates the file if it doesn't exist.
// Uses O_APPEND for atomic append operations.
func appendEntry(path string, e entry.Entry) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	line, err := json.Marshal(e)
	if err != nil {
		return err
	}

	_, err = file.WriteString(string(line) + "\n")
	return err
}

// readEntriesWithWarnings reads all entries from the JSON Lines storage file
// and returns both successfully parsed entries and warnings about any corrupted lines.
// Returns no entries if the file doesn't exist.
func readEntriesWithWarnings(path string) ([]entry.Entry, []ParseWarning, error) {
	entries := []entry.Entry{}
	var warnings []ParseWarning

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, nil, nil
		}
		return nil, nil, err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		lineContent := scanner.Text()
		if lineContent == "" {
			continue
		}

		var e entry.Entry
		if err := json.Unmarshal([]byte(lineContent), &e); err != nil {
			warnings = append(warnings, ParseWarning{
				LineNumber: lineNumber,
				Content:    lineContent,
				Error:      err.Error(),
			})
			continue
		}
		entries = append(entries, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return entries, warnings, nil
}

// writeEntries rewrites the storage file.
// Uses atomic write pattern (write to temp file, then rename) for safety.
func writeEntries(path string, entries []entry.Entry) error {
	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	for _, e := range entries {
		line, err := json.Marshal(e)
		if err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return err
		}
		if _, err := file.WriteString(string(line) + "\n"); err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return err
		}
	}

	// Close temp file before rename
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}

// fileSnapshot is the content of a file at transaction start; nil data means absent.
type fileSnapshot struct {
	data []byte
}

func snapshot(path string) (fileSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSnapshot{}, nil
		}
		return fileSnapshot{}, err
	}
	return fileSnapshot{data: data}, nil
}

func restore(path string, snap fileSnapshot) error {
	if snap.data == nil {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}
	return writeFileAtomic(path, snap.data)
}

func writeFileAtomic(path string, data []byte) error {
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpFile, path)
}
