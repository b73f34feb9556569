package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/storage"
	"github.com/xolan/tock/internal/storage/storagetest"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), DBFile), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		return openTestStore(t)
	})
}

func TestStore_RejectsSecondActiveEntry(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

	_, err := s.CreateEntry(ctx, entry.Entry{ProjectID: "p1", StartTime: now, CreatedAt: now})
	require.NoError(t, err)

	_, err = s.CreateEntry(ctx, entry.Entry{ProjectID: "p2", StartTime: now.Add(time.Minute), CreatedAt: now})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrActiveTimerExists), "expected ErrActiveTimerExists, got %v", err)
	assert.True(t, errors.Is(err, entry.ErrConflict), "expected ErrConflict, got %v", err)

	// closed entries are unaffected by the index
	end := now.Add(time.Hour)
	_, err = s.CreateEntry(ctx, entry.Entry{ProjectID: "p2", StartTime: now, EndTime: &end, Duration: 60, CreatedAt: now})
	assert.NoError(t, err)
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFile)
	ctx := context.Background()

	s, err := Open(path, nil)
	require.NoError(t, err)
	p, err := s.CreateProject(ctx, entry.Project{Name: "Website", CreatedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	got, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Website", got.Name)
}
