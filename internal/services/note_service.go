package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"timeclock/internal/domain"
	"timeclock/internal/errors"
	"timeclock/internal/logging"
	"timeclock/internal/repository"
)

// noteTimeLayout is how clock times appear inside rendered note text.
const noteTimeLayout = "2006-01-02 15:04"

// noteServiceImpl implements the NoteService interface. It takes no operation
// mutex of its own: AddNote and RemoveByIDs run only inside entry/user
// service operations that already hold the shared mutex.
type noteServiceImpl struct {
	repo  *repository.NoteRepository
	clock Clock
	log   logging.Logger
}

// NewNoteService creates a new NoteService instance.
func NewNoteService(repo *repository.NoteRepository, clock Clock, log logging.Logger) NoteService {
	return &noteServiceImpl{
		repo:  repo,
		clock: clock,
		log:   log,
	}
}

// AddNote appends an immutable note to the ledger and returns its id.
func (n *noteServiceImpl) AddNote(ctx context.Context, entityID string, entityType domain.EntityType, editorName, text string) (string, error) {
	if !entityType.IsValid() {
		return "", errors.NewInvalidInputError("entityType", string(entityType), "unknown entity type")
	}

	note := domain.NewNote(entityID, entityType, editorName, text, n.clock.Now())
	note.ID = uuid.NewString()

	if err := n.repo.Insert(ctx, note); err != nil {
		return "", err
	}

	n.log.Info(ctx, "note added", "note_id", note.ID, "entity_id", entityID, "entity_type", entityType, "editor", editorName)
	return note.ID, nil
}

// GetNote returns a single note by id.
func (n *noteServiceImpl) GetNote(ctx context.Context, id string) (domain.Note, error) {
	note, ok := n.repo.FindByID(id)
	if !ok {
		return domain.Note{}, errors.NewNotFoundError("note", id)
	}
	return note, nil
}

// NotesForEntity returns the notes attached to an entity in chronological
// order. No notes is an empty slice, not an error.
func (n *noteServiceImpl) NotesForEntity(ctx context.Context, entityID string) ([]domain.Note, error) {
	return n.repo.ListByEntity(entityID), nil
}

// NotesByIDs hydrates a list of note ids to full records, skipping unknowns.
func (n *noteServiceImpl) NotesByIDs(ids []string) []domain.Note {
	return n.repo.ListByIDs(ids)
}

// RemoveByIDs deletes the given notes as part of a cascading owner deletion.
func (n *noteServiceImpl) RemoveByIDs(ctx context.Context, ids []string) (int, error) {
	return n.repo.RemoveByIDs(ctx, ids)
}

// RenderEntryChange renders the before/after summary recorded when a time
// entry is edited or force-closed.
func (n *noteServiceImpl) RenderEntryChange(action, editor, reason string, before, after domain.EntrySnapshot) string {
	return fmt.Sprintf(
		"%s by %s. Reason: %s\n"+
			"Before:\n"+
			"  Clock In: %s\n"+
			"  Clock Out: %s\n"+
			"  Hours: %v\n"+
			"After:\n"+
			"  Clock In: %s\n"+
			"  Clock Out: %s\n"+
			"  Hours: %v",
		action, editor, reason,
		renderNoteTime(&before.LoginTime), renderNoteTime(before.LogoutTime), before.TotalHours,
		renderNoteTime(&after.LoginTime), renderNoteTime(after.LogoutTime), after.TotalHours,
	)
}

// RenderSuspensionChange renders the before/after summary recorded when a
// user is suspended or unsuspended.
func (n *noteServiceImpl) RenderSuspensionChange(suspend bool, editor, reason string, before, after domain.SuspensionSnapshot) string {
	action := "Unsuspended"
	if suspend {
		action = "Suspended"
	}
	return fmt.Sprintf(
		"%s by %s. Reason: %s\n"+
			"Before: Suspended: %t, Role: %s\n"+
			"After: Suspended: %t, Role: %s",
		action, editor, reason,
		before.Suspended, before.Role,
		after.Suspended, after.Role,
	)
}

// renderNoteTime formats a clock time for note text, with "N/A" for a
// missing logout.
func renderNoteTime(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format(noteTimeLayout)
}
