package repository

import (
	"context"

	"timeclock/internal/domain"
	"timeclock/internal/store"
)

// EntryRepository holds the time entries collection.
type EntryRepository struct {
	c *collection[domain.TimeEntry]
}

// NewEntryRepository creates a time entry repository over the given store.
func NewEntryRepository(s store.Collection[domain.TimeEntry]) *EntryRepository {
	return &EntryRepository{
		c: newCollection(s, "time entries", func(e domain.TimeEntry) string { return e.ID }),
	}
}

// Load hydrates the repository from the durable store.
func (r *EntryRepository) Load(ctx context.Context) error {
	return r.c.load(ctx)
}

// All returns a copy of every entry in collection order.
func (r *EntryRepository) All() []domain.TimeEntry {
	return r.c.snapshot()
}

// FindByID returns the entry with the given id.
func (r *EntryRepository) FindByID(id string) (domain.TimeEntry, bool) {
	return r.c.findByID(id)
}

// FindOpenByUser returns the user's open entry, if any. At most one open
// entry per user exists at a time.
func (r *EntryRepository) FindOpenByUser(userID string) (domain.TimeEntry, bool) {
	return r.c.find(func(e domain.TimeEntry) bool {
		return e.UserID == userID && e.IsOpen()
	})
}

// ListByUser returns all entries of the given user in collection order.
func (r *EntryRepository) ListByUser(userID string) []domain.TimeEntry {
	return r.c.filter(func(e domain.TimeEntry) bool { return e.UserID == userID })
}

// Insert adds an entry and persists the collection.
func (r *EntryRepository) Insert(ctx context.Context, entry domain.TimeEntry) error {
	return r.c.insert(ctx, entry)
}

// Update replaces the stored entry with the same id and persists the
// collection. It reports false when the entry does not exist.
func (r *EntryRepository) Update(ctx context.Context, entry domain.TimeEntry) (bool, error) {
	return r.c.update(ctx, entry)
}

// Remove deletes the entry with the given id and persists the collection.
// It reports false when the entry does not exist.
func (r *EntryRepository) Remove(ctx context.Context, id string) (bool, error) {
	return r.c.remove(ctx, id)
}

// RemoveByUser deletes all entries of the given user and persists the
// collection. It returns the number of deleted entries.
func (r *EntryRepository) RemoveByUser(ctx context.Context, userID string) (int, error) {
	return r.c.removeWhere(ctx, func(e domain.TimeEntry) bool { return e.UserID == userID })
}

// ReplaceAll swaps in a whole new entries collection and persists it.
func (r *EntryRepository) ReplaceAll(ctx context.Context, entries []domain.TimeEntry) error {
	return r.c.replaceAll(ctx, entries)
}
