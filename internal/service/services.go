package service

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jonboulle/clockwork"

	"github.com/xolan/tock/internal/app"
	"github.com/xolan/tock/internal/config"
	"github.com/xolan/tock/internal/storage"
)

// Services holds all service instances used by the application
type Services struct {
	Timer   *TimerService
	Catalog *CatalogService
	Config  *ConfigService
	Logger  *slog.Logger

	store storage.Store
}

// NewServices loads the configuration, builds the logger and opens the
// configured store.
func NewServices() (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}

	logger := app.NewLogger(cfg.Log)

	store, err := app.OpenStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Storage.Backend, err)
	}

	return NewServicesWithStore(store, configPath, cfg, clockwork.NewRealClock(), logger), nil
}

// NewServicesWithStore creates a Services instance around an open store (useful for testing)
func NewServicesWithStore(store storage.Store, configPath string, cfg config.Config, clock clockwork.Clock, logger *slog.Logger) *Services {
	return &Services{
		Timer:   NewTimerService(store, cfg, clock, logger),
		Catalog: NewCatalogService(store, clock, logger),
		Config:  NewConfigService(configPath, cfg),
		Logger:  logger,
		store:   store,
	}
}

// Close releases the store.
func (s *Services) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
