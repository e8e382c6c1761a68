package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeclock/internal/config"
	"timeclock/internal/domain"
	"timeclock/internal/errors"
	"timeclock/internal/logging"
	"timeclock/internal/repository"
)

// fixtureStart is the instant every fixture clock begins at: a Friday, 09:00.
var fixtureStart = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// fixedClock is a Clock pinned to a settable instant.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func (c *fixedClock) set(t time.Time) {
	c.now = t
}

type serviceFixture struct {
	container *ServiceContainer
	users     *repository.UserRepository
	entries   *repository.EntryRepository
	notes     *repository.NoteRepository
	clock     *fixedClock
}

func setupServices(t *testing.T) *serviceFixture {
	t.Helper()

	stores, err := config.CreateTestStores()
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })

	ctx := context.Background()
	users := repository.NewUserRepository(stores.Users)
	entries := repository.NewEntryRepository(stores.Entries)
	notes := repository.NewNoteRepository(stores.Notes)
	require.NoError(t, users.Load(ctx))
	require.NoError(t, entries.Load(ctx))
	require.NoError(t, notes.Load(ctx))

	clock := &fixedClock{now: fixtureStart}
	container := NewServiceContainer(users, entries, notes, clock, 72*time.Hour, logging.NewNopLogger())

	return &serviceFixture{
		container: container,
		users:     users,
		entries:   entries,
		notes:     notes,
		clock:     clock,
	}
}

func (f *serviceFixture) seedUser(t *testing.T, id, name, pin string, role domain.Role) domain.User {
	t.Helper()

	user := domain.NewUser(name, id+"@example.com", "555-000-0000", role, pin, f.clock.now)
	user.ID = id
	require.NoError(t, f.users.Insert(context.Background(), user))
	return user
}

func (f *serviceFixture) suspendUser(t *testing.T, id string) {
	t.Helper()

	user, ok := f.users.FindByID(id)
	require.True(t, ok)
	user.Suspended = true
	ok, err := f.users.Update(context.Background(), user)
	require.NoError(t, err)
	require.True(t, ok)
}

// assertErrorType checks that err is an AppError of the given category.
func assertErrorType(t *testing.T, err error, errorType errors.ErrorType) {
	t.Helper()

	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.True(t, appErr.IsType(errorType), "error type = %v, want %v", appErr.Type, errorType)
}
