package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-toggle-sync/internal/config"
	"github.com/MKhiriev/go-toggle-sync/internal/logger"
)

// NewLocalStorage opens the storage backend selected by cfg.Driver:
//   - "sqlite": file database at cfg.DSN, migrated with goose;
//   - "badger": badger directory at cfg.DSN;
//   - "memory": process-local map, lost on exit.
func NewLocalStorage(ctx context.Context, cfg config.Storage, logger *logger.Logger) (LocalStorage, error) {
	logger.Info().Str("driver", cfg.Driver).Msg("creating local storage...")

	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := NewConnectSQLite(ctx, cfg.DSN, logger)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		return NewSQLiteStorage(db, logger), nil

	case config.DriverBadger:
		return NewBadgerStorage(cfg.DSN, logger)

	case config.DriverMemory:
		return NewMemoryStorage(), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}
