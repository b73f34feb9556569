package app

import (
	"fmt"
	"log/slog"

	"github.com/xolan/tock/internal/config"
	"github.com/xolan/tock/internal/storage"
	"github.com/xolan/tock/internal/storage/jsonl"
	"github.com/xolan/tock/internal/storage/sqlite"
)

// OpenStore opens the backend selected by cfg.
func OpenStore(cfg config.Config, logger *slog.Logger) (storage.Store, error) {
	path, err := cfg.StoragePath()
	if err != nil {
		return nil, fmt.Errorf("resolving storage path: %w", err)
	}

	switch cfg.Storage.Backend {
	case config.BackendJSONL:
		s, err := jsonl.Open(path, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendSQLite, "":
		s, err := sqlite.Open(path, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
