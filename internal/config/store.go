package config

import (
	"fmt"
	"os"

	"timeclock/internal/domain"
	"timeclock/internal/logging"
	"timeclock/internal/store"
	"timeclock/internal/store/jsonfile"
	"timeclock/internal/store/sqlite"
)

// Stores bundles the three durable collections behind one handle.
type Stores struct {
	Users   store.Collection[domain.User]
	Entries store.Collection[domain.TimeEntry]
	Notes   store.Collection[domain.Note]

	closer func() error
}

// Close releases any resources held by the backing store.
func (s *Stores) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// CreateStores creates the durable collections selected by the configuration
func CreateStores(config *Config, log logging.Logger) (*Stores, error) {
	if err := os.MkdirAll(config.Storage.Dir, os.FileMode(config.Storage.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	switch config.Storage.Backend {
	case StorageBackendJSONFile:
		return &Stores{
			Users:   jsonfile.NewCollection[domain.User](config.UsersFilePath(), log),
			Entries: jsonfile.NewCollection[domain.TimeEntry](config.TimeEntriesFilePath(), log),
			Notes:   jsonfile.NewCollection[domain.Note](config.NotesFilePath(), log),
		}, nil

	case StorageBackendSQLite:
		db, err := sqlite.Open(config.SQLitePath())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return &Stores{
			Users:   sqlite.NewUserCollection(db),
			Entries: sqlite.NewEntryCollection(db),
			Notes:   sqlite.NewNoteCollection(db),
			closer:  db.Close,
		}, nil

	default:
		return nil, &ConfigError{Field: "storage.backend", Message: "unknown storage backend: " + config.Storage.Backend}
	}
}

// CreateTestStores creates in-memory sqlite-backed collections for testing
func CreateTestStores() (*Stores, error) {
	db, err := sqlite.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return &Stores{
		Users:   sqlite.NewUserCollection(db),
		Entries: sqlite.NewEntryCollection(db),
		Notes:   sqlite.NewNoteCollection(db),
		closer:  db.Close,
	}, nil
}
