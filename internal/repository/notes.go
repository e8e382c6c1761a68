package repository

import (
	"context"
	"sort"

	"timeclock/internal/domain"
	"timeclock/internal/store"
)

// NoteRepository holds the notes collection.
type NoteRepository struct {
	c *collection[domain.Note]
}

// NewNoteRepository creates a note repository over the given store.
func NewNoteRepository(s store.Collection[domain.Note]) *NoteRepository {
	return &NoteRepository{
		c: newCollection(s, "notes", func(n domain.Note) string { return n.ID }),
	}
}

// Load hydrates the repository from the durable store.
func (r *NoteRepository) Load(ctx context.Context) error {
	return r.c.load(ctx)
}

// All returns a copy of every note in collection order.
func (r *NoteRepository) All() []domain.Note {
	return r.c.snapshot()
}

// FindByID returns the note with the given id.
func (r *NoteRepository) FindByID(id string) (domain.Note, bool) {
	return r.c.findByID(id)
}

// ListByEntity returns all notes attached to the given entity, ordered by
// timestamp ascending with insertion order preserved on ties.
func (r *NoteRepository) ListByEntity(entityID string) []domain.Note {
	notes := r.c.filter(func(n domain.Note) bool { return n.EntityID == entityID })
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Timestamp.Before(notes[j].Timestamp)
	})
	return notes
}

// ListByIDs returns the notes whose ids are in the given set, in collection
// order. Unknown ids are skipped.
func (r *NoteRepository) ListByIDs(ids []string) []domain.Note {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return r.c.filter(func(n domain.Note) bool { return wanted[n.ID] })
}

// Insert adds a note and persists the collection.
func (r *NoteRepository) Insert(ctx context.Context, note domain.Note) error {
	return r.c.insert(ctx, note)
}

// RemoveByIDs deletes all notes whose ids are in the given set and persists
// the collection. It returns the number of deleted notes.
func (r *NoteRepository) RemoveByIDs(ctx context.Context, ids []string) (int, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return r.c.removeWhere(ctx, func(n domain.Note) bool { return wanted[n.ID] })
}

// ReplaceAll swaps in a whole new notes collection and persists it.
func (r *NoteRepository) ReplaceAll(ctx context.Context, notes []domain.Note) error {
	return r.c.replaceAll(ctx, notes)
}
