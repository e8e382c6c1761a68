package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"timeclock/internal/domain"
	"timeclock/internal/errors"
	"timeclock/internal/logging"
	"timeclock/internal/repository"
	"timeclock/internal/validation"
)

// defaultAccounts are seeded at startup and kept consistent across restarts,
// keyed by PIN.
var defaultAccounts = []struct {
	name  string
	email string
	phone string
	role  domain.Role
	pin   string
}{
	{"System Admin", "admin@example.com", "555-111-2222", domain.RoleAdmin, "0000"},
	{"Lead Timekeeper", "timekeeper@example.com", "555-333-4444", domain.RoleTimekeeper, "1111"},
	{"John Doe", "john@example.com", "555-555-6666", domain.RoleWorker, "1234"},
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	users     *repository.UserRepository
	entries   *repository.EntryRepository
	notes     NoteService
	clock     Clock
	log       logging.Logger
	validator *validation.UserValidator
	op        *sync.Mutex
}

// NewUserService creates a new UserService instance. op is shared with the
// entry service and serializes every mutating operation across both.
func NewUserService(
	users *repository.UserRepository,
	entries *repository.EntryRepository,
	notes NoteService,
	clock Clock,
	log logging.Logger,
	op *sync.Mutex,
) UserService {
	return &userServiceImpl{
		users:     users,
		entries:   entries,
		notes:     notes,
		clock:     clock,
		log:       log,
		validator: validation.NewUserValidator(),
		op:        op,
	}
}

// FindByID is the directory lookup by user id.
func (u *userServiceImpl) FindByID(id string) (domain.User, bool) {
	return u.users.FindByID(id)
}

// FindByPIN is the directory lookup by PIN.
func (u *userServiceImpl) FindByPIN(pin string) (domain.User, bool) {
	return u.users.FindByPIN(pin)
}

// AuthenticateByPIN resolves a PIN to an account that is allowed to log in.
func (u *userServiceImpl) AuthenticateByPIN(ctx context.Context, pin string) (domain.User, error) {
	if err := u.validator.ValidatePIN(pin); err != nil {
		return domain.User{}, invalidInput("pin", pin, err)
	}

	user, ok := u.users.FindByPIN(pin)
	if !ok {
		return domain.User{}, errors.NewNotFoundError("user", pin)
	}
	if user.Suspended {
		return domain.User{}, errors.NewPermissionError("login", "account is suspended")
	}

	u.log.Info(ctx, "login successful", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// AddUser creates an account. Admins may create any role; timekeepers only
// workers. PINs are globally unique, emails too when provided.
func (u *userServiceImpl) AddUser(ctx context.Context, requesterID string, params NewUserParams) (domain.User, error) {
	u.op.Lock()
	defer u.op.Unlock()

	role := params.Role
	if role == "" {
		role = domain.RoleWorker
	}
	if err := u.validator.ValidateNewUser(params.Name, params.PIN, role); err != nil {
		return domain.User{}, invalidInput("user", params.Name, err)
	}
	if _, exists := u.users.FindByPIN(params.PIN); exists {
		return domain.User{}, errors.NewConflictError("user", "a user with this PIN already exists")
	}

	requester, ok := u.users.FindByID(requesterID)
	if !ok {
		return domain.User{}, errors.NewPermissionError("add user", "unauthorized to add users")
	}
	switch requester.Role {
	case domain.RoleAdmin:
	case domain.RoleTimekeeper:
		if role != domain.RoleWorker {
			return domain.User{}, errors.NewPermissionError("add user", "timekeepers can only add worker accounts")
		}
	default:
		return domain.User{}, errors.NewPermissionError("add user", "unauthorized to add users")
	}

	if params.Email != "" {
		if _, exists := u.users.FindByEmail(params.Email); exists {
			return domain.User{}, errors.NewConflictError("user", "a user with this email already exists")
		}
	}

	user := domain.NewUser(params.Name, params.Email, params.Phone, role, params.PIN, u.clock.Now())
	user.ID = uuid.NewString()

	if err := u.users.Insert(ctx, user); err != nil {
		return domain.User{}, err
	}

	u.log.Info(ctx, "user added", "user_id", user.ID, "name", user.Name, "role", user.Role, "requester_id", requesterID)
	return user, nil
}

// DeleteUser removes an account with everything it owns: its entries and the
// notes referenced by those entries or by the account's suspension history.
// Admin only; self-deletion and deleting the last admin are refused.
func (u *userServiceImpl) DeleteUser(ctx context.Context, requesterID, userID string) error {
	u.op.Lock()
	defer u.op.Unlock()

	target, ok := u.users.FindByID(userID)
	if !ok {
		return errors.NewNotFoundError("user", userID)
	}
	requester, ok := u.users.FindByID(requesterID)
	if !ok || requester.Role != domain.RoleAdmin {
		return errors.NewPermissionError("delete user", "only admins can delete users")
	}
	if target.ID == requester.ID {
		return errors.NewPermissionError("delete user", "admins cannot delete their own account")
	}
	if target.Role == domain.RoleAdmin && u.users.CountByRole(domain.RoleAdmin) <= 1 {
		return errors.NewPermissionError("delete user", "cannot delete the last admin account")
	}

	noteIDs := []string{}
	seen := map[string]bool{}
	for _, entry := range u.entries.ListByUser(userID) {
		for _, id := range entry.NoteIDs {
			if !seen[id] {
				seen[id] = true
				noteIDs = append(noteIDs, id)
			}
		}
	}
	for _, id := range target.SuspensionNoteIDs {
		if !seen[id] {
			seen[id] = true
			noteIDs = append(noteIDs, id)
		}
	}

	// Cascade writes run users, then entries, then notes; a crash between
	// rewrites can leave orphaned entries or notes.
	if ok, err := u.users.Remove(ctx, userID); err != nil {
		return err
	} else if !ok {
		return errors.NewNotFoundError("user", userID)
	}
	removedEntries, err := u.entries.RemoveByUser(ctx, userID)
	if err != nil {
		return err
	}
	removedNotes, err := u.notes.RemoveByIDs(ctx, noteIDs)
	if err != nil {
		return err
	}

	u.log.Info(ctx, "user deleted", "user_id", userID, "name", target.Name, "requester_id", requesterID, "entries_removed", removedEntries, "notes_removed", removedNotes)
	return nil
}

// SetSuspension suspends or unsuspends an account and records a before/after
// note in the account's suspension history. Requesters cannot target
// themselves, and timekeepers cannot target admins.
func (u *userServiceImpl) SetSuspension(ctx context.Context, requesterID, userID string, suspend bool, noteText string) (domain.User, error) {
	u.op.Lock()
	defer u.op.Unlock()

	target, ok := u.users.FindByID(userID)
	if !ok {
		return domain.User{}, errors.NewNotFoundError("user", userID)
	}
	requester, ok := u.users.FindByID(requesterID)
	if !ok || !requester.Role.IsPrivileged() {
		return domain.User{}, errors.NewPermissionError("suspend user", "only admins and timekeepers can change suspension")
	}
	if userID == requesterID {
		return domain.User{}, errors.NewPermissionError("suspend user", "cannot suspend or unsuspend your own account")
	}
	if requester.Role == domain.RoleTimekeeper && target.Role == domain.RoleAdmin {
		return domain.User{}, errors.NewPermissionError("suspend user", "timekeepers cannot suspend admin accounts")
	}
	if err := u.validator.ValidateSuspensionNote(noteText); err != nil {
		return domain.User{}, invalidInput("note", noteText, err)
	}

	before := target.SuspensionState()
	updated := target
	updated.Suspended = suspend
	after := updated.SuspensionState()

	noteID, err := u.notes.AddNote(ctx, userID, domain.EntityUserSuspension, requester.Name,
		u.notes.RenderSuspensionChange(suspend, requester.Name, noteText, before, after))
	if err != nil {
		return domain.User{}, err
	}
	updated.SuspensionNoteIDs = appendNoteID(target.SuspensionNoteIDs, noteID)

	if ok, err := u.users.Update(ctx, updated); err != nil {
		return domain.User{}, err
	} else if !ok {
		return domain.User{}, errors.NewNotFoundError("user", userID)
	}

	u.log.Info(ctx, "user suspension changed", "user_id", userID, "suspended", suspend, "requester_id", requesterID, "note_id", noteID)
	return updated, nil
}

// ListUsers returns every account with the PIN redacted and suspension notes
// hydrated.
func (u *userServiceImpl) ListUsers(ctx context.Context) ([]UserView, error) {
	users := u.users.All()
	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, UserView{
			User:            user,
			SuspensionNotes: u.notes.NotesByIDs(user.SuspensionNoteIDs),
		})
	}
	return views, nil
}

// EnsureDefaults seeds the default accounts and corrects drift on existing
// ones, persisting only when something changed.
func (u *userServiceImpl) EnsureDefaults(ctx context.Context) error {
	u.op.Lock()
	defer u.op.Unlock()

	users := u.users.All()
	changed := false

	for _, account := range defaultAccounts {
		idx := -1
		for i := range users {
			if users[i].PIN == account.pin {
				idx = i
				break
			}
		}

		if idx < 0 {
			user := domain.NewUser(account.name, account.email, account.phone, account.role, account.pin, u.clock.Now())
			user.ID = uuid.NewString()
			users = append(users, user)
			changed = true
			u.log.Info(ctx, "adding default user", "name", account.name, "role", account.role)
			continue
		}

		existing := &users[idx]
		if existing.Role != account.role {
			u.log.Info(ctx, "correcting role for default user", "name", existing.Name, "from", existing.Role, "to", account.role)
			existing.Role = account.role
			changed = true
		}
		if existing.Name != account.name {
			existing.Name = account.name
			changed = true
		}
		if existing.Email != account.email {
			existing.Email = account.email
			changed = true
		}
		if existing.Phone != account.phone {
			existing.Phone = account.phone
			changed = true
		}
		if existing.SuspensionNoteIDs == nil {
			existing.SuspensionNoteIDs = []string{}
			changed = true
		}
	}

	if !changed {
		u.log.Debug(ctx, "default users already configured")
		return nil
	}

	if err := u.users.ReplaceAll(ctx, users); err != nil {
		return err
	}

	u.log.Info(ctx, "default users configured", "total_users", len(users))
	return nil
}
