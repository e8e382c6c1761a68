package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"timeclock/internal/domain"
	"timeclock/internal/errors"
	"timeclock/internal/logging"
	"timeclock/internal/repository"
	"timeclock/internal/validation"
)

// defaultForceLogoutNote is recorded when a forced logout arrives without a
// reason.
const defaultForceLogoutNote = "Logged out by administrator/timekeeper."

// entryServiceImpl implements the EntryService interface
type entryServiceImpl struct {
	entries   *repository.EntryRepository
	users     *repository.UserRepository
	notes     NoteService
	clock     Clock
	editedTTL time.Duration
	log       logging.Logger
	validator *validation.TimeEntryValidator
	op        *sync.Mutex
}

// NewEntryService creates a new EntryService instance. op is shared with the
// user service and serializes every mutating operation across both.
func NewEntryService(
	entries *repository.EntryRepository,
	users *repository.UserRepository,
	notes NoteService,
	clock Clock,
	editedTTL time.Duration,
	log logging.Logger,
	op *sync.Mutex,
) EntryService {
	return &entryServiceImpl{
		entries:   entries,
		users:     users,
		notes:     notes,
		clock:     clock,
		editedTTL: editedTTL,
		log:       log,
		validator: validation.NewTimeEntryValidator(),
		op:        op,
	}
}

// ClockIn opens a new entry for the user at the current time.
func (e *entryServiceImpl) ClockIn(ctx context.Context, userID string) (*ClockResult, error) {
	e.op.Lock()
	defer e.op.Unlock()

	user, ok := e.users.FindByID(userID)
	if !ok {
		return nil, errors.NewNotFoundError("user", userID)
	}
	if user.Suspended {
		return nil, errors.NewPermissionError("clock in", "user is suspended")
	}
	if _, open := e.entries.FindOpenByUser(userID); open {
		return nil, errors.NewConflictError("time entry", "already clocked in")
	}

	entry := domain.NewTimeEntry(userID, e.clock.Now())
	entry.ID = uuid.NewString()

	if err := e.entries.Insert(ctx, entry); err != nil {
		return nil, err
	}

	e.log.Info(ctx, "user clocked in", "user_id", userID, "entry_id", entry.ID, "date", entry.Date)
	return &ClockResult{Entry: entry, UserName: user.Name}, nil
}

// ClockOut closes the user's active entry. When the user already has a closed
// entry for today, this session's hours are merged into it and the active
// entry is dropped, so one calendar day keeps one entry.
func (e *entryServiceImpl) ClockOut(ctx context.Context, userID string) (*ClockResult, error) {
	e.op.Lock()
	defer e.op.Unlock()

	user, ok := e.users.FindByID(userID)
	if !ok {
		return nil, errors.NewNotFoundError("user", userID)
	}
	active, ok := e.entries.FindOpenByUser(userID)
	if !ok {
		return nil, errors.NewInvalidStateError("clock out", "no active clock-in found for this user")
	}

	now := e.clock.Now()
	sessionHours := domain.SessionHours(active.LoginTime, now)

	target, found := e.findConsolidationTarget(userID, now)
	if !found {
		closed := active.Close(now)
		if err := e.updateEntry(ctx, closed); err != nil {
			return nil, err
		}
		e.log.Info(ctx, "user clocked out", "user_id", userID, "entry_id", closed.ID, "session_hours", sessionHours)
		return &ClockResult{Entry: closed, UserName: user.Name}, nil
	}

	logout := now
	target.TotalHours = domain.RoundHours(target.TotalHours + sessionHours)
	target.LogoutTime = &logout
	target.LastModified = now

	// Rewrite the collection once: the day's entry updated, the active one gone.
	entries := e.entries.All()
	next := make([]domain.TimeEntry, 0, len(entries))
	for _, entry := range entries {
		switch entry.ID {
		case active.ID:
		case target.ID:
			next = append(next, target)
		default:
			next = append(next, entry)
		}
	}
	if err := e.entries.ReplaceAll(ctx, next); err != nil {
		return nil, err
	}

	e.log.Info(ctx, "clock-out consolidated", "user_id", userID, "entry_id", target.ID, "date", target.Date, "session_hours", sessionHours, "day_hours", target.TotalHours)
	return &ClockResult{Entry: target, UserName: user.Name, Consolidated: true}, nil
}

// findConsolidationTarget returns the closed entry today's session merges
// into: same user, Date equal to today, and a login on today's calendar day.
// Entries whose Date and login day diverge (possible after edits) never match.
func (e *entryServiceImpl) findConsolidationTarget(userID string, now time.Time) (domain.TimeEntry, bool) {
	today := domain.DateKey(now)
	for _, entry := range e.entries.ListByUser(userID) {
		if entry.IsOpen() {
			continue
		}
		if entry.Date == today && domain.SameCalendarDay(entry.LoginTime, now) {
			return entry, true
		}
	}
	return domain.TimeEntry{}, false
}

// ForceLogout closes the target user's active entry on behalf of an admin or
// timekeeper and records a before/after note on the entry.
func (e *entryServiceImpl) ForceLogout(ctx context.Context, requesterID, userID, noteText string) (*ClockResult, error) {
	e.op.Lock()
	defer e.op.Unlock()

	requester, ok := e.users.FindByID(requesterID)
	if !ok || !requester.Role.IsPrivileged() {
		return nil, errors.NewPermissionError("force logout", "only admins and timekeepers can log out users")
	}
	target, ok := e.users.FindByID(userID)
	if !ok {
		return nil, errors.NewNotFoundError("user", userID)
	}
	active, ok := e.entries.FindOpenByUser(userID)
	if !ok {
		return nil, errors.NewInvalidStateError("force logout", "user is not currently clocked in")
	}

	reason := strings.TrimSpace(noteText)
	if reason == "" {
		reason = defaultForceLogoutNote
	}

	before := active.Snapshot()
	updated := active.Close(e.clock.Now())
	updated.Edited = true
	after := updated.Snapshot()

	noteID, err := e.notes.AddNote(ctx, active.ID, domain.EntityTimeEntry, requester.Name,
		e.notes.RenderEntryChange("Logged out", requester.Name, reason, before, after))
	if err != nil {
		return nil, err
	}
	updated.NoteIDs = appendNoteID(active.NoteIDs, noteID)

	if err := e.updateEntry(ctx, updated); err != nil {
		return nil, err
	}

	e.log.Info(ctx, "user force logged out", "user_id", userID, "entry_id", active.ID, "requester_id", requesterID, "note_id", noteID)
	return &ClockResult{Entry: updated, UserName: target.Name}, nil
}

// EditEntry overwrites an entry's login/logout times on behalf of an admin or
// timekeeper, recomputes its hours, and records a before/after note.
func (e *entryServiceImpl) EditEntry(ctx context.Context, editorID, entryID string, loginTime time.Time, logoutTime *time.Time, reason string) (domain.TimeEntry, error) {
	e.op.Lock()
	defer e.op.Unlock()

	reason = strings.TrimSpace(reason)
	if err := e.validator.ValidateEditReason(reason); err != nil {
		return domain.TimeEntry{}, invalidInput("edit note", reason, err)
	}
	if entryID == "" {
		return domain.TimeEntry{}, errors.NewInvalidInputError("entry id", entryID, "entry id is required")
	}

	entry, ok := e.entries.FindByID(entryID)
	if !ok {
		return domain.TimeEntry{}, errors.NewNotFoundError("time entry", entryID)
	}
	editor, ok := e.users.FindByID(editorID)
	if !ok || !editor.Role.IsPrivileged() {
		return domain.TimeEntry{}, errors.NewPermissionError("edit time entry", "only admins and timekeepers can edit time entries")
	}
	if err := e.validator.ValidateEditTimes(loginTime, logoutTime); err != nil {
		return domain.TimeEntry{}, invalidInput("time range", loginTime, err)
	}

	before := entry.Snapshot()

	updated := entry
	updated.LoginTime = loginTime
	if logoutTime != nil {
		logout := *logoutTime
		updated.LogoutTime = &logout
		updated.TotalHours = domain.SessionHours(loginTime, logout)
	} else {
		updated.LogoutTime = nil
		updated.TotalHours = 0
	}
	updated.Edited = true
	updated.LastModified = e.clock.Now()
	after := updated.Snapshot()

	noteID, err := e.notes.AddNote(ctx, entry.ID, domain.EntityTimeEntry, editor.Name,
		e.notes.RenderEntryChange("Edited", editor.Name, reason, before, after))
	if err != nil {
		return domain.TimeEntry{}, err
	}
	updated.NoteIDs = appendNoteID(entry.NoteIDs, noteID)

	if err := e.updateEntry(ctx, updated); err != nil {
		return domain.TimeEntry{}, err
	}

	e.log.Info(ctx, "time entry edited", "entry_id", entryID, "editor_id", editorID, "note_id", noteID)
	return updated, nil
}

// ExpireEditedFlags resets the edited flag on entries whose last modification
// is older than the configured TTL. It returns how many entries changed.
func (e *entryServiceImpl) ExpireEditedFlags(ctx context.Context) (int, error) {
	e.op.Lock()
	defer e.op.Unlock()
	return e.expireEditedFlags(ctx)
}

// expireEditedFlags persists once when any flag changed. Callers must hold
// the operation mutex.
func (e *entryServiceImpl) expireEditedFlags(ctx context.Context) (int, error) {
	now := e.clock.Now()
	entries := e.entries.All()

	expired := 0
	for i := range entries {
		if entries[i].Edited && now.Sub(entries[i].LastModified) > e.editedTTL {
			entries[i].Edited = false
			expired++
		}
	}
	if expired == 0 {
		return 0, nil
	}

	if err := e.entries.ReplaceAll(ctx, entries); err != nil {
		return 0, err
	}

	e.log.Info(ctx, "reset stale edited flags", "count", expired)
	return expired, nil
}

// GetWorkerSnapshot returns the user's clock state and full entry history,
// newest first, with notes hydrated.
func (e *entryServiceImpl) GetWorkerSnapshot(ctx context.Context, userID string) (*WorkerSnapshot, error) {
	user, ok := e.users.FindByID(userID)
	if !ok {
		return nil, errors.NewNotFoundError("user", userID)
	}

	entries := e.entries.ListByUser(userID)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].LoginTime.After(entries[j].LoginTime)
	})

	snapshot := &WorkerSnapshot{
		User:              UserSummary{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
		HistoricalEntries: make([]EntryView, 0, len(entries)),
	}

	for _, entry := range entries {
		if entry.IsOpen() {
			snapshot.IsClockedIn = true
			start := entry.LoginTime
			snapshot.CurrentSessionStart = &start
			break
		}
	}
	if !snapshot.IsClockedIn {
		for _, entry := range entries {
			if entry.IsOpen() {
				continue
			}
			hours := entry.TotalHours
			login := entry.LoginTime
			logout := *entry.LogoutTime
			snapshot.LastSessionTotalHours = &hours
			snapshot.LastSessionLoginTime = &login
			snapshot.LastSessionLogoutTime = &logout
			break
		}
	}

	for _, entry := range entries {
		snapshot.HistoricalEntries = append(snapshot.HistoricalEntries, EntryView{
			TimeEntry: entry,
			Notes:     e.notes.NotesByIDs(entry.NoteIDs),
		})
	}

	return snapshot, nil
}

// ListEntries returns every entry joined with its owner's name and hydrated
// notes, after running the lazy edited-flag expiry.
func (e *entryServiceImpl) ListEntries(ctx context.Context) ([]EntryView, error) {
	e.op.Lock()
	defer e.op.Unlock()

	if _, err := e.expireEditedFlags(ctx); err != nil {
		return nil, err
	}

	entries := e.entries.All()
	views := make([]EntryView, 0, len(entries))
	for _, entry := range entries {
		name := "Unknown User"
		if user, ok := e.users.FindByID(entry.UserID); ok {
			name = user.Name
		}
		views = append(views, EntryView{
			TimeEntry: entry,
			UserName:  name,
			Notes:     e.notes.NotesByIDs(entry.NoteIDs),
		})
	}
	return views, nil
}

// updateEntry persists a single-entry replacement, treating a vanished id as
// a lookup failure.
func (e *entryServiceImpl) updateEntry(ctx context.Context, entry domain.TimeEntry) error {
	ok, err := e.entries.Update(ctx, entry)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NewNotFoundError("time entry", entry.ID)
	}
	return nil
}

// appendNoteID copies before appending so stored entries never share note-id
// backing arrays with repository snapshots.
func appendNoteID(ids []string, id string) []string {
	out := make([]string, len(ids), len(ids)+1)
	copy(out, ids)
	return append(out, id)
}

// invalidInput converts a validator failure into the shared error taxonomy,
// keeping the field-level message the validator produced.
func invalidInput(field string, value interface{}, err error) error {
	if verr, ok := err.(*validation.ValidationError); ok {
		return errors.NewInvalidInputError(field, value, verr.GetUserFriendlyMessage())
	}
	return errors.NewInvalidInputError(field, value, err.Error())
}
