package backend

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/storage"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory.
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// Create implements Factory.Create.
func (f *DefaultFactory) Create(_ context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLite(config)
	case FileBackend:
		return f.createFile(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLite(config Config) (*Result, error) {
	store, err := storage.NewSQLiteStore(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite store: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &Result{
		Snapshots: store,
		Cleanup:   store.Close,
	}, nil
}

func (f *DefaultFactory) createFile(config Config) (*Result, error) {
	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "data"
	}

	store, err := storage.NewFileStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("initialize file store: %w", err)
	}

	f.logger.Info("Initialized file backend", "path", store.Path())

	return &Result{
		Snapshots: store,
		Cleanup:   nil, // nothing to release for the file backend
	}, nil
}
