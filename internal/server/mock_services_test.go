package server

import (
	"context"
	"time"

	"timeclock/internal/domain"
	"timeclock/internal/services"
)

// Function-field mocks for the service interfaces. Tests set only the
// functions a handler is expected to reach; everything else returns zero
// values.

type mockEntryService struct {
	clockInFn           func(ctx context.Context, userID string) (*services.ClockResult, error)
	clockOutFn          func(ctx context.Context, userID string) (*services.ClockResult, error)
	forceLogoutFn       func(ctx context.Context, requesterID, userID, noteText string) (*services.ClockResult, error)
	editEntryFn         func(ctx context.Context, editorID, entryID string, loginTime time.Time, logoutTime *time.Time, reason string) (domain.TimeEntry, error)
	expireEditedFlagsFn func(ctx context.Context) (int, error)
	getWorkerSnapshotFn func(ctx context.Context, userID string) (*services.WorkerSnapshot, error)
	listEntriesFn       func(ctx context.Context) ([]services.EntryView, error)
}

func (m *mockEntryService) ClockIn(ctx context.Context, userID string) (*services.ClockResult, error) {
	if m.clockInFn == nil {
		return &services.ClockResult{}, nil
	}
	return m.clockInFn(ctx, userID)
}

func (m *mockEntryService) ClockOut(ctx context.Context, userID string) (*services.ClockResult, error) {
	if m.clockOutFn == nil {
		return &services.ClockResult{}, nil
	}
	return m.clockOutFn(ctx, userID)
}

func (m *mockEntryService) ForceLogout(ctx context.Context, requesterID, userID, noteText string) (*services.ClockResult, error) {
	if m.forceLogoutFn == nil {
		return &services.ClockResult{}, nil
	}
	return m.forceLogoutFn(ctx, requesterID, userID, noteText)
}

func (m *mockEntryService) EditEntry(ctx context.Context, editorID, entryID string, loginTime time.Time, logoutTime *time.Time, reason string) (domain.TimeEntry, error) {
	if m.editEntryFn == nil {
		return domain.TimeEntry{}, nil
	}
	return m.editEntryFn(ctx, editorID, entryID, loginTime, logoutTime, reason)
}

func (m *mockEntryService) ExpireEditedFlags(ctx context.Context) (int, error) {
	if m.expireEditedFlagsFn == nil {
		return 0, nil
	}
	return m.expireEditedFlagsFn(ctx)
}

func (m *mockEntryService) GetWorkerSnapshot(ctx context.Context, userID string) (*services.WorkerSnapshot, error) {
	if m.getWorkerSnapshotFn == nil {
		return &services.WorkerSnapshot{}, nil
	}
	return m.getWorkerSnapshotFn(ctx, userID)
}

func (m *mockEntryService) ListEntries(ctx context.Context) ([]services.EntryView, error) {
	if m.listEntriesFn == nil {
		return []services.EntryView{}, nil
	}
	return m.listEntriesFn(ctx)
}

type mockUserService struct {
	findByIDFn          func(id string) (domain.User, bool)
	findByPINFn         func(pin string) (domain.User, bool)
	authenticateByPINFn func(ctx context.Context, pin string) (domain.User, error)
	addUserFn           func(ctx context.Context, requesterID string, params services.NewUserParams) (domain.User, error)
	deleteUserFn        func(ctx context.Context, requesterID, userID string) error
	setSuspensionFn     func(ctx context.Context, requesterID, userID string, suspend bool, noteText string) (domain.User, error)
	listUsersFn         func(ctx context.Context) ([]services.UserView, error)
	ensureDefaultsFn    func(ctx context.Context) error
}

func (m *mockUserService) FindByID(id string) (domain.User, bool) {
	if m.findByIDFn == nil {
		return domain.User{}, false
	}
	return m.findByIDFn(id)
}

func (m *mockUserService) FindByPIN(pin string) (domain.User, bool) {
	if m.findByPINFn == nil {
		return domain.User{}, false
	}
	return m.findByPINFn(pin)
}

func (m *mockUserService) AuthenticateByPIN(ctx context.Context, pin string) (domain.User, error) {
	if m.authenticateByPINFn == nil {
		return domain.User{}, nil
	}
	return m.authenticateByPINFn(ctx, pin)
}

func (m *mockUserService) AddUser(ctx context.Context, requesterID string, params services.NewUserParams) (domain.User, error) {
	if m.addUserFn == nil {
		return domain.User{}, nil
	}
	return m.addUserFn(ctx, requesterID, params)
}

func (m *mockUserService) DeleteUser(ctx context.Context, requesterID, userID string) error {
	if m.deleteUserFn == nil {
		return nil
	}
	return m.deleteUserFn(ctx, requesterID, userID)
}

func (m *mockUserService) SetSuspension(ctx context.Context, requesterID, userID string, suspend bool, noteText string) (domain.User, error) {
	if m.setSuspensionFn == nil {
		return domain.User{}, nil
	}
	return m.setSuspensionFn(ctx, requesterID, userID, suspend, noteText)
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]services.UserView, error) {
	if m.listUsersFn == nil {
		return []services.UserView{}, nil
	}
	return m.listUsersFn(ctx)
}

func (m *mockUserService) EnsureDefaults(ctx context.Context) error {
	if m.ensureDefaultsFn == nil {
		return nil
	}
	return m.ensureDefaultsFn(ctx)
}

type mockNoteService struct {
	addNoteFn        func(ctx context.Context, entityID string, entityType domain.EntityType, editorName, text string) (string, error)
	getNoteFn        func(ctx context.Context, id string) (domain.Note, error)
	notesForEntityFn func(ctx context.Context, entityID string) ([]domain.Note, error)
	notesByIDsFn     func(ids []string) []domain.Note
	removeByIDsFn    func(ctx context.Context, ids []string) (int, error)
}

func (m *mockNoteService) AddNote(ctx context.Context, entityID string, entityType domain.EntityType, editorName, text string) (string, error) {
	if m.addNoteFn == nil {
		return "", nil
	}
	return m.addNoteFn(ctx, entityID, entityType, editorName, text)
}

func (m *mockNoteService) GetNote(ctx context.Context, id string) (domain.Note, error) {
	if m.getNoteFn == nil {
		return domain.Note{}, nil
	}
	return m.getNoteFn(ctx, id)
}

func (m *mockNoteService) NotesForEntity(ctx context.Context, entityID string) ([]domain.Note, error) {
	if m.notesForEntityFn == nil {
		return []domain.Note{}, nil
	}
	return m.notesForEntityFn(ctx, entityID)
}

func (m *mockNoteService) NotesByIDs(ids []string) []domain.Note {
	if m.notesByIDsFn == nil {
		return []domain.Note{}
	}
	return m.notesByIDsFn(ids)
}

func (m *mockNoteService) RemoveByIDs(ctx context.Context, ids []string) (int, error) {
	if m.removeByIDsFn == nil {
		return 0, nil
	}
	return m.removeByIDsFn(ctx, ids)
}

func (m *mockNoteService) RenderEntryChange(action, editor, reason string, before, after domain.EntrySnapshot) string {
	return ""
}

func (m *mockNoteService) RenderSuspensionChange(suspend bool, editor, reason string, before, after domain.SuspensionSnapshot) string {
	return ""
}

func newMockContainer() (*services.ServiceContainer, *mockUserService, *mockEntryService, *mockNoteService) {
	users := &mockUserService{}
	entries := &mockEntryService{}
	notes := &mockNoteService{}
	container := &services.ServiceContainer{
		Users:   users,
		Entries: entries,
		Notes:   notes,
	}
	return container, users, entries, notes
}
