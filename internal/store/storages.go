package store

import (
	"context"
	"fmt"

	"github.com/V7-Lippyy/nutripal/internal/config"
	"github.com/V7-Lippyy/nutripal/internal/logger"
)

// Storages groups all local (on-device) repositories into a single value
// that can be passed around the service layer.
type Storages struct {
	// Entries is the SQLite-backed food-entry repository used before
	// sign-in and in offline mode.
	Entries EntryRepository

	// Preferences is the local key-value preference store.
	Preferences PreferenceRepository

	// Sessions is the encrypted on-device session cache.
	Sessions SessionCache
}

// NewStorages initialises the local storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in
//     cfg.Storage.DB.DSN, creating the database file if it does not yet
//     exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [Storages] value wired to fresh
//     repositories.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewStorages(cfg *config.StructuredConfig, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating local storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.Storage.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Entries:     NewLocalEntryRepository(db, logger),
		Preferences: NewLocalPreferenceRepository(db, logger),
		Sessions:    NewSessionCache(db, cfg.App.SessionKey, logger),
	}, nil
}
