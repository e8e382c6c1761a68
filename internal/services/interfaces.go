package services

import (
	"context"
	"time"

	"timeclock/internal/domain"
)

// Clock supplies the current time so operations can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// ClockResult reports the outcome of a clock-in, clock-out, or forced logout.
type ClockResult struct {
	Entry        domain.TimeEntry
	UserName     string
	Consolidated bool
}

// UserSummary is the trimmed user identity embedded in worker snapshots.
type UserSummary struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// EntryView is a time entry decorated for display: the owning user's name and
// the entry's notes hydrated from ids to full records.
type EntryView struct {
	domain.TimeEntry
	UserName string        `json:"userName,omitempty"`
	Notes    []domain.Note `json:"editNotesFull"`
}

// WorkerSnapshot is the worker-facing view of their own clock state: the
// active session if clocked in, otherwise the most recent closed session,
// plus the full entry history newest first.
type WorkerSnapshot struct {
	User                  UserSummary `json:"user"`
	IsClockedIn           bool        `json:"is_clocked_in"`
	CurrentSessionStart   *time.Time  `json:"current_session_start"`
	LastSessionTotalHours *float64    `json:"last_session_total_hours"`
	LastSessionLoginTime  *time.Time  `json:"last_session_login_time"`
	LastSessionLogoutTime *time.Time  `json:"last_session_logout_time"`
	HistoricalEntries     []EntryView `json:"historical_entries"`
}

// UserView is a user prepared for administrative listings: the PIN is
// redacted and suspension notes are hydrated to full records.
type UserView struct {
	domain.User
	// PIN shadows the embedded field so redacted views never serialize it.
	PIN             string        `json:"pin,omitempty"`
	SuspensionNotes []domain.Note `json:"suspension_notes_full"`
}

// NewUserParams carries the fields for creating a user account.
type NewUserParams struct {
	Name  string
	Email string
	Phone string
	Role  domain.Role
	PIN   string
}

// EntryService manages the time-entry lifecycle: clocking in and out,
// same-day consolidation, administrative edits and forced logouts, and the
// lazy reset of the edited flag.
type EntryService interface {
	// Clock actions
	ClockIn(ctx context.Context, userID string) (*ClockResult, error)
	ClockOut(ctx context.Context, userID string) (*ClockResult, error)

	// Administrative mutations
	ForceLogout(ctx context.Context, requesterID, userID, noteText string) (*ClockResult, error)
	EditEntry(ctx context.Context, editorID, entryID string, loginTime time.Time, logoutTime *time.Time, reason string) (domain.TimeEntry, error)
	ExpireEditedFlags(ctx context.Context) (int, error)

	// Views
	GetWorkerSnapshot(ctx context.Context, userID string) (*WorkerSnapshot, error)
	ListEntries(ctx context.Context) ([]EntryView, error)
}

// NoteService owns the append-only audit ledger. Notes are created here,
// read here, and removed only through cascading deletion of their owner.
type NoteService interface {
	AddNote(ctx context.Context, entityID string, entityType domain.EntityType, editorName, text string) (string, error)
	GetNote(ctx context.Context, id string) (domain.Note, error)
	NotesForEntity(ctx context.Context, entityID string) ([]domain.Note, error)
	NotesByIDs(ids []string) []domain.Note
	RemoveByIDs(ctx context.Context, ids []string) (int, error)

	// Rendering of before/after summaries embedded in note text
	RenderEntryChange(action, editor, reason string, before, after domain.EntrySnapshot) string
	RenderSuspensionChange(suspend bool, editor, reason string, before, after domain.SuspensionSnapshot) string
}

// UserService is the directory adapter plus the account workflows built on
// it: PIN authentication, account creation and deletion, and suspension.
type UserService interface {
	// Directory lookups
	FindByID(id string) (domain.User, bool)
	FindByPIN(pin string) (domain.User, bool)

	// Account workflows
	AuthenticateByPIN(ctx context.Context, pin string) (domain.User, error)
	AddUser(ctx context.Context, requesterID string, params NewUserParams) (domain.User, error)
	DeleteUser(ctx context.Context, requesterID, userID string) error
	SetSuspension(ctx context.Context, requesterID, userID string, suspend bool, noteText string) (domain.User, error)
	ListUsers(ctx context.Context) ([]UserView, error)
	EnsureDefaults(ctx context.Context) error
}

// ServiceContainer bundles the services built over one set of repositories.
type ServiceContainer struct {
	Users   UserService
	Entries EntryService
	Notes   NoteService
}
