// Package sqlite persists collections in a sqlite database while keeping
// the replace-whole-collection semantics of the flat-file layout: Load
// selects every row, Save rewrites the whole table in one transaction.
package sqlite

import (
	"context"
	"database/sql"

	"timeclock/internal/domain"
	"timeclock/internal/errors"
	"timeclock/internal/store/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// DB wraps the shared database handle used by the collections.
type DB struct {
	db *sql.DB
}

// Open opens the database at path, creating it if needed, and runs migrations.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// UserCollection stores the users collection
type UserCollection struct {
	db *DB
}

// NewUserCollection creates a users collection over the shared handle
func NewUserCollection(db *DB) *UserCollection {
	return &UserCollection{db: db}
}

// Load reads all users in insertion order
func (c *UserCollection) Load(ctx context.Context) ([]domain.User, error) {
	query := `
	SELECT id, name, email, phone, role, pin, created_at, is_suspended, suspension_notes
	FROM users
	ORDER BY rowid`

	rows, err := QueryAll(ctx, c.db.db, query, ScanUserRows, "users")
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		user, err := row.toDomain()
		if err != nil {
			return nil, HandleStorageError("decode user row", err)
		}
		users = append(users, user)
	}
	return users, nil
}

// Save replaces the users table with the given collection
func (c *UserCollection) Save(ctx context.Context, items []domain.User) error {
	return WithTx(ctx, c.db.db, "save users", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM users"); err != nil {
			return err
		}

		query := `
		INSERT INTO users (id, name, email, phone, role, pin, created_at, is_suspended, suspension_notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

		for _, item := range items {
			row, err := userRowFromDomain(item)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, query,
				row.ID, row.Name, row.Email, row.Phone, row.Role,
				row.PIN, row.CreatedAt, row.IsSuspended, row.SuspensionNotes)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// EntryCollection stores the time entries collection
type EntryCollection struct {
	db *DB
}

// NewEntryCollection creates a time entries collection over the shared handle
func NewEntryCollection(db *DB) *EntryCollection {
	return &EntryCollection{db: db}
}

// Load reads all time entries in insertion order
func (c *EntryCollection) Load(ctx context.Context) ([]domain.TimeEntry, error) {
	query := `
	SELECT id, user_id, login_time, logout_time, total_hours, date, edited, last_modified, edit_notes
	FROM time_entries
	ORDER BY rowid`

	rows, err := QueryAll(ctx, c.db.db, query, ScanEntryRows, "time entries")
	if err != nil {
		return nil, err
	}

	entries := make([]domain.TimeEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := row.toDomain()
		if err != nil {
			return nil, HandleStorageError("decode time entry row", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Save replaces the time_entries table with the given collection
func (c *EntryCollection) Save(ctx context.Context, items []domain.TimeEntry) error {
	return WithTx(ctx, c.db.db, "save time entries", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM time_entries"); err != nil {
			return err
		}

		query := `
		INSERT INTO time_entries (id, user_id, login_time, logout_time, total_hours, date, edited, last_modified, edit_notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

		for _, item := range items {
			row, err := entryRowFromDomain(item)
			if err != nil {
				return err
			}
			var logout interface{}
			if row.LogoutTime != nil {
				logout = *row.LogoutTime
			}
			_, err = tx.ExecContext(ctx, query,
				row.ID, row.UserID, row.LoginTime, logout, row.TotalHours,
				row.Date, row.Edited, row.LastModified, row.EditNotes)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// NoteCollection stores the notes collection
type NoteCollection struct {
	db *DB
}

// NewNoteCollection creates a notes collection over the shared handle
func NewNoteCollection(db *DB) *NoteCollection {
	return &NoteCollection{db: db}
}

// Load reads all notes in insertion order
func (c *NoteCollection) Load(ctx context.Context) ([]domain.Note, error) {
	query := `
	SELECT id, entity_id, entity_type, timestamp, editor, note
	FROM notes
	ORDER BY rowid`

	rows, err := QueryAll(ctx, c.db.db, query, ScanNoteRows, "notes")
	if err != nil {
		return nil, err
	}

	notes := make([]domain.Note, 0, len(rows))
	for _, row := range rows {
		note, err := row.toDomain()
		if err != nil {
			return nil, HandleStorageError("decode note row", err)
		}
		notes = append(notes, note)
	}
	return notes, nil
}

// Save replaces the notes table with the given collection
func (c *NoteCollection) Save(ctx context.Context, items []domain.Note) error {
	return WithTx(ctx, c.db.db, "save notes", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM notes"); err != nil {
			return err
		}

		query := `
		INSERT INTO notes (id, entity_id, entity_type, timestamp, editor, note)
		VALUES (?, ?, ?, ?, ?, ?)`

		for _, item := range items {
			row := noteRowFromDomain(item)
			_, err := tx.ExecContext(ctx, query,
				row.ID, row.EntityID, row.EntityType, row.Timestamp, row.Editor, row.Note)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
