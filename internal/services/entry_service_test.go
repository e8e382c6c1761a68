package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeclock/internal/domain"
	"timeclock/internal/errors"
)

func TestEntryService_ClockIn(t *testing.T) {
	t.Run("should open a new entry for the user", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)

		result, err := f.container.Entries.ClockIn(context.Background(), "w1")
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, "Wanda Worker", result.UserName)
		assert.True(t, result.Entry.IsOpen())
		assert.Equal(t, fixtureStart, result.Entry.LoginTime)
		assert.Equal(t, "2024-03-01", result.Entry.Date)
		assert.Zero(t, result.Entry.TotalHours)
		assert.Empty(t, result.Entry.NoteIDs)
		assert.NotEmpty(t, result.Entry.ID)

		stored, ok := f.entries.FindOpenByUser("w1")
		require.True(t, ok)
		assert.Equal(t, result.Entry.ID, stored.ID)
	})

	t.Run("should return not found for unknown user", func(t *testing.T) {
		f := setupServices(t)

		_, err := f.container.Entries.ClockIn(context.Background(), "missing")
		assertErrorType(t, err, errors.ErrorTypeNotFound)
	})

	t.Run("should refuse suspended users", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		f.suspendUser(t, "w1")

		_, err := f.container.Entries.ClockIn(context.Background(), "w1")
		assertErrorType(t, err, errors.ErrorTypePermission)
		assert.Empty(t, f.entries.All())
	})

	t.Run("should refuse a second open entry for the same user", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)

		_, err := f.container.Entries.ClockIn(context.Background(), "w1")
		require.NoError(t, err)

		_, err = f.container.Entries.ClockIn(context.Background(), "w1")
		assertErrorType(t, err, errors.ErrorTypeConflict)
		assert.Len(t, f.entries.All(), 1)
	})
}

func TestEntryService_ClockOut(t *testing.T) {
	t.Run("should close the active entry with rounded hours", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)

		_, err := f.container.Entries.ClockIn(context.Background(), "w1")
		require.NoError(t, err)

		f.clock.advance(7*time.Hour + 29*time.Minute)
		result, err := f.container.Entries.ClockOut(context.Background(), "w1")
		require.NoError(t, err)

		assert.False(t, result.Consolidated)
		assert.False(t, result.Entry.IsOpen())
		require.NotNil(t, result.Entry.LogoutTime)
		assert.Equal(t, f.clock.now, *result.Entry.LogoutTime)
		assert.InDelta(t, 7.48, result.Entry.TotalHours, 1e-9)
		assert.Equal(t, f.clock.now, result.Entry.LastModified)

		_, open := f.entries.FindOpenByUser("w1")
		assert.False(t, open)
	})

	t.Run("should consolidate a second same-day session into the first entry", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		ctx := context.Background()

		// 09:00 - 17:00
		first, err := f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)
		f.clock.advance(8 * time.Hour)
		_, err = f.container.Entries.ClockOut(ctx, "w1")
		require.NoError(t, err)

		// 18:00 - 19:30 the same day
		f.clock.advance(1 * time.Hour)
		_, err = f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)
		f.clock.advance(90 * time.Minute)
		result, err := f.container.Entries.ClockOut(ctx, "w1")
		require.NoError(t, err)

		assert.True(t, result.Consolidated)
		assert.Equal(t, first.Entry.ID, result.Entry.ID)
		assert.InDelta(t, 9.5, result.Entry.TotalHours, 1e-9)
		require.NotNil(t, result.Entry.LogoutTime)
		assert.Equal(t, f.clock.now, *result.Entry.LogoutTime)

		// The second session's entry is gone: one entry for the day remains
		all := f.entries.All()
		require.Len(t, all, 1)
		assert.Equal(t, first.Entry.ID, all[0].ID)
	})

	t.Run("should round each session before summing", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		ctx := context.Background()

		// Two 10-minute sessions: each rounds to 0.17, so the day holds 0.34,
		// not round(20m) = 0.33.
		_, err := f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)
		f.clock.advance(10 * time.Minute)
		_, err = f.container.Entries.ClockOut(ctx, "w1")
		require.NoError(t, err)

		f.clock.advance(30 * time.Minute)
		_, err = f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)
		f.clock.advance(10 * time.Minute)
		result, err := f.container.Entries.ClockOut(ctx, "w1")
		require.NoError(t, err)

		assert.InDelta(t, 0.34, result.Entry.TotalHours, 1e-9)
	})

	t.Run("should not consolidate across calendar days", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		ctx := context.Background()

		_, err := f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)
		f.clock.advance(8 * time.Hour)
		_, err = f.container.Entries.ClockOut(ctx, "w1")
		require.NoError(t, err)

		// Next day
		f.clock.set(time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC))
		_, err = f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)
		f.clock.advance(1 * time.Hour)
		result, err := f.container.Entries.ClockOut(ctx, "w1")
		require.NoError(t, err)

		assert.False(t, result.Consolidated)
		assert.Len(t, f.entries.All(), 2)
	})

	t.Run("should close an overnight session under its original date", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		ctx := context.Background()

		f.clock.set(time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC))
		_, err := f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)

		f.clock.set(time.Date(2024, 3, 2, 1, 0, 0, 0, time.UTC))
		result, err := f.container.Entries.ClockOut(ctx, "w1")
		require.NoError(t, err)

		assert.False(t, result.Consolidated)
		assert.Equal(t, "2024-03-01", result.Entry.Date)
		assert.InDelta(t, 2.0, result.Entry.TotalHours, 1e-9)

		// A later session on the new day stays separate: the overnight
		// entry's date belongs to the previous day.
		f.clock.set(time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC))
		_, err = f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)
		f.clock.advance(1 * time.Hour)
		result, err = f.container.Entries.ClockOut(ctx, "w1")
		require.NoError(t, err)

		assert.False(t, result.Consolidated)
		assert.Len(t, f.entries.All(), 2)
	})

	t.Run("should work for a user suspended mid-session", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		ctx := context.Background()

		_, err := f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)
		f.suspendUser(t, "w1")

		f.clock.advance(2 * time.Hour)
		result, err := f.container.Entries.ClockOut(ctx, "w1")
		require.NoError(t, err)
		assert.InDelta(t, 2.0, result.Entry.TotalHours, 1e-9)
	})

	t.Run("should fail without an active entry", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)

		_, err := f.container.Entries.ClockOut(context.Background(), "w1")
		assertErrorType(t, err, errors.ErrorTypeInvalidState)
	})

	t.Run("should return not found for unknown user", func(t *testing.T) {
		f := setupServices(t)

		_, err := f.container.Entries.ClockOut(context.Background(), "missing")
		assertErrorType(t, err, errors.ErrorTypeNotFound)
	})
}

func TestEntryService_ForceLogout(t *testing.T) {
	t.Run("should close the entry and record one before/after note", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "a1", "Ada Admin", "1000", domain.RoleAdmin)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		ctx := context.Background()

		_, err := f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)

		f.clock.advance(3 * time.Hour)
		result, err := f.container.Entries.ForceLogout(ctx, "a1", "w1", "Left site")
		require.NoError(t, err)

		assert.Equal(t, "Wanda Worker", result.UserName)
		assert.False(t, result.Entry.IsOpen())
		assert.True(t, result.Entry.Edited)
		assert.InDelta(t, 3.0, result.Entry.TotalHours, 1e-9)
		require.Len(t, result.Entry.NoteIDs, 1)

		require.Len(t, f.notes.All(), 1)
		note, err := f.container.Notes.GetNote(ctx, result.Entry.NoteIDs[0])
		require.NoError(t, err)
		assert.Equal(t, result.Entry.ID, note.EntityID)
		assert.Equal(t, domain.EntityTimeEntry, note.EntityType)
		assert.Equal(t, "Ada Admin", note.Editor)
		assert.Equal(t,
			"Logged out by Ada Admin. Reason: Left site\n"+
				"Before:\n"+
				"  Clock In: 2024-03-01 09:00\n"+
				"  Clock Out: N/A\n"+
				"  Hours: 0\n"+
				"After:\n"+
				"  Clock In: 2024-03-01 09:00\n"+
				"  Clock Out: 2024-03-01 12:00\n"+
				"  Hours: 3",
			note.Text)
	})

	t.Run("should fall back to the default reason when the note is blank", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "k1", "Tom Keeper", "1100", domain.RoleTimekeeper)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		ctx := context.Background()

		_, err := f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)

		result, err := f.container.Entries.ForceLogout(ctx, "k1", "w1", "   ")
		require.NoError(t, err)

		note, err := f.container.Notes.GetNote(ctx, result.Entry.NoteIDs[0])
		require.NoError(t, err)
		assert.Contains(t, note.Text, "Reason: Logged out by administrator/timekeeper.")
	})

	t.Run("should refuse non-privileged requesters", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		f.seedUser(t, "w2", "Other Worker", "2001", domain.RoleWorker)
		ctx := context.Background()

		_, err := f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)

		_, err = f.container.Entries.ForceLogout(ctx, "w2", "w1", "note")
		assertErrorType(t, err, errors.ErrorTypePermission)

		_, err = f.container.Entries.ForceLogout(ctx, "ghost", "w1", "note")
		assertErrorType(t, err, errors.ErrorTypePermission)

		assert.Empty(t, f.notes.All())
		_, open := f.entries.FindOpenByUser("w1")
		assert.True(t, open)
	})

	t.Run("should return not found for unknown target", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "a1", "Ada Admin", "1000", domain.RoleAdmin)

		_, err := f.container.Entries.ForceLogout(context.Background(), "a1", "missing", "note")
		assertErrorType(t, err, errors.ErrorTypeNotFound)
	})

	t.Run("should fail when the target is not clocked in", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "a1", "Ada Admin", "1000", domain.RoleAdmin)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)

		_, err := f.container.Entries.ForceLogout(context.Background(), "a1", "w1", "note")
		assertErrorType(t, err, errors.ErrorTypeInvalidState)
		assert.Empty(t, f.notes.All())
	})
}

func TestEntryService_EditEntry(t *testing.T) {
	closedEntry := func(t *testing.T, f *serviceFixture) domain.TimeEntry {
		t.Helper()
		ctx := context.Background()
		_, err := f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)
		f.clock.advance(8 * time.Hour)
		result, err := f.container.Entries.ClockOut(ctx, "w1")
		require.NoError(t, err)
		return result.Entry
	}

	t.Run("should overwrite times, recompute hours, and record one note", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "a1", "Ada Admin", "1000", domain.RoleAdmin)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		entry := closedEntry(t, f)
		ctx := context.Background()

		f.clock.advance(1 * time.Hour)
		newLogin := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		newLogout := time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC)

		updated, err := f.container.Entries.EditEntry(ctx, "a1", entry.ID, newLogin, &newLogout, "Forgot badge")
		require.NoError(t, err)

		assert.Equal(t, newLogin, updated.LoginTime)
		require.NotNil(t, updated.LogoutTime)
		assert.Equal(t, newLogout, *updated.LogoutTime)
		assert.InDelta(t, 8.5, updated.TotalHours, 1e-9)
		assert.True(t, updated.Edited)
		assert.Equal(t, f.clock.now, updated.LastModified)
		require.Len(t, updated.NoteIDs, 1)

		note, err := f.container.Notes.GetNote(ctx, updated.NoteIDs[0])
		require.NoError(t, err)
		assert.Contains(t, note.Text, "Edited by Ada Admin. Reason: Forgot badge")
		assert.Contains(t, note.Text, "Before:\n  Clock In: 2024-03-01 09:00")
		assert.Contains(t, note.Text, "After:\n  Clock In: 2024-03-01 10:00")
		require.Len(t, f.notes.All(), 1)
	})

	t.Run("should zero hours when editing an entry open", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "a1", "Ada Admin", "1000", domain.RoleAdmin)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		entry := closedEntry(t, f)

		newLogin := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		updated, err := f.container.Entries.EditEntry(context.Background(), "a1", entry.ID, newLogin, nil, "Still on shift")
		require.NoError(t, err)

		assert.True(t, updated.IsOpen())
		assert.Zero(t, updated.TotalHours)
	})

	t.Run("should reject logout before login and leave the entry untouched", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "a1", "Ada Admin", "1000", domain.RoleAdmin)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		entry := closedEntry(t, f)

		before := f.entries.All()
		newLogin := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		newLogout := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

		_, err := f.container.Entries.EditEntry(context.Background(), "a1", entry.ID, newLogin, &newLogout, "oops")
		assertErrorType(t, err, errors.ErrorTypeInvalidInput)

		assert.Equal(t, before, f.entries.All())
		assert.Empty(t, f.notes.All())
	})

	t.Run("should require an edit reason", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "a1", "Ada Admin", "1000", domain.RoleAdmin)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		entry := closedEntry(t, f)

		before := f.entries.All()
		_, err := f.container.Entries.EditEntry(context.Background(), "a1", entry.ID, entry.LoginTime, entry.LogoutTime, "   ")
		assertErrorType(t, err, errors.ErrorTypeInvalidInput)

		assert.Equal(t, before, f.entries.All())
		assert.Empty(t, f.notes.All())
	})

	t.Run("should refuse non-privileged editors", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		entry := closedEntry(t, f)

		_, err := f.container.Entries.EditEntry(context.Background(), "w1", entry.ID, entry.LoginTime, entry.LogoutTime, "note")
		assertErrorType(t, err, errors.ErrorTypePermission)
		assert.Empty(t, f.notes.All())
	})

	t.Run("should return not found for unknown entry", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "a1", "Ada Admin", "1000", domain.RoleAdmin)

		_, err := f.container.Entries.EditEntry(context.Background(), "a1", "missing", fixtureStart, nil, "note")
		assertErrorType(t, err, errors.ErrorTypeNotFound)
	})
}

func TestEntryService_ExpireEditedFlags(t *testing.T) {
	editedEntry := func(t *testing.T, f *serviceFixture) domain.TimeEntry {
		t.Helper()
		ctx := context.Background()
		_, err := f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)
		f.clock.advance(3 * time.Hour)
		result, err := f.container.Entries.ForceLogout(ctx, "a1", "w1", "note")
		require.NoError(t, err)
		return result.Entry
	}

	t.Run("should reset flags only after the ttl has fully elapsed", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "a1", "Ada Admin", "1000", domain.RoleAdmin)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		entry := editedEntry(t, f)
		ctx := context.Background()

		// Exactly at the ttl boundary nothing expires
		f.clock.advance(72 * time.Hour)
		expired, err := f.container.Entries.ExpireEditedFlags(ctx)
		require.NoError(t, err)
		assert.Zero(t, expired)

		stored, ok := f.entries.FindByID(entry.ID)
		require.True(t, ok)
		assert.True(t, stored.Edited)

		// One second past it the flag resets and persists
		f.clock.advance(1 * time.Second)
		expired, err = f.container.Entries.ExpireEditedFlags(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, expired)

		stored, ok = f.entries.FindByID(entry.ID)
		require.True(t, ok)
		assert.False(t, stored.Edited)
	})

	t.Run("should leave unedited entries alone", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "a1", "Ada Admin", "1000", domain.RoleAdmin)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		f.seedUser(t, "w2", "Other Worker", "2001", domain.RoleWorker)
		editedEntry(t, f)
		ctx := context.Background()

		// A plain clocked-out entry never carries the flag
		_, err := f.container.Entries.ClockIn(ctx, "w2")
		require.NoError(t, err)
		f.clock.advance(1 * time.Hour)
		_, err = f.container.Entries.ClockOut(ctx, "w2")
		require.NoError(t, err)

		f.clock.advance(80 * time.Hour)
		expired, err := f.container.Entries.ExpireEditedFlags(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, expired)
	})
}

func TestEntryService_ListEntries(t *testing.T) {
	t.Run("should join user names and hydrate notes", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "a1", "Ada Admin", "1000", domain.RoleAdmin)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		ctx := context.Background()

		_, err := f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)
		f.clock.advance(2 * time.Hour)
		forced, err := f.container.Entries.ForceLogout(ctx, "a1", "w1", "meeting")
		require.NoError(t, err)

		// An entry whose owner no longer exists
		orphan := domain.NewTimeEntry("ghost", f.clock.now)
		orphan.ID = "orphan-1"
		require.NoError(t, f.entries.Insert(ctx, orphan))

		views, err := f.container.Entries.ListEntries(ctx)
		require.NoError(t, err)
		require.Len(t, views, 2)

		assert.Equal(t, "Wanda Worker", views[0].UserName)
		require.Len(t, views[0].Notes, 1)
		assert.Equal(t, forced.Entry.NoteIDs[0], views[0].Notes[0].ID)

		assert.Equal(t, "Unknown User", views[1].UserName)
		assert.Empty(t, views[1].Notes)
		assert.NotNil(t, views[1].Notes)
	})

	t.Run("should run the lazy edited-flag expiry", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "a1", "Ada Admin", "1000", domain.RoleAdmin)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		ctx := context.Background()

		_, err := f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)
		f.clock.advance(1 * time.Hour)
		forced, err := f.container.Entries.ForceLogout(ctx, "a1", "w1", "note")
		require.NoError(t, err)

		f.clock.advance(73 * time.Hour)
		views, err := f.container.Entries.ListEntries(ctx)
		require.NoError(t, err)

		require.Len(t, views, 1)
		assert.False(t, views[0].Edited)

		stored, ok := f.entries.FindByID(forced.Entry.ID)
		require.True(t, ok)
		assert.False(t, stored.Edited)
	})
}

func TestEntryService_GetWorkerSnapshot(t *testing.T) {
	t.Run("should report an active session with history newest first", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		ctx := context.Background()

		// Yesterday's closed session
		_, err := f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)
		f.clock.advance(8 * time.Hour)
		_, err = f.container.Entries.ClockOut(ctx, "w1")
		require.NoError(t, err)

		// Open session today
		f.clock.set(time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC))
		open, err := f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)

		snapshot, err := f.container.Entries.GetWorkerSnapshot(ctx, "w1")
		require.NoError(t, err)

		assert.Equal(t, "w1", snapshot.User.ID)
		assert.Equal(t, "Wanda Worker", snapshot.User.Name)
		assert.Equal(t, domain.RoleWorker, snapshot.User.Role)

		assert.True(t, snapshot.IsClockedIn)
		require.NotNil(t, snapshot.CurrentSessionStart)
		assert.Equal(t, open.Entry.LoginTime, *snapshot.CurrentSessionStart)
		assert.Nil(t, snapshot.LastSessionTotalHours)

		require.Len(t, snapshot.HistoricalEntries, 2)
		assert.Equal(t, open.Entry.ID, snapshot.HistoricalEntries[0].ID)
		assert.Equal(t, "2024-03-01", snapshot.HistoricalEntries[1].Date)
	})

	t.Run("should report the last closed session when not clocked in", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		ctx := context.Background()

		_, err := f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)
		f.clock.advance(8 * time.Hour)
		closed, err := f.container.Entries.ClockOut(ctx, "w1")
		require.NoError(t, err)

		snapshot, err := f.container.Entries.GetWorkerSnapshot(ctx, "w1")
		require.NoError(t, err)

		assert.False(t, snapshot.IsClockedIn)
		assert.Nil(t, snapshot.CurrentSessionStart)
		require.NotNil(t, snapshot.LastSessionTotalHours)
		assert.InDelta(t, 8.0, *snapshot.LastSessionTotalHours, 1e-9)
		require.NotNil(t, snapshot.LastSessionLoginTime)
		assert.Equal(t, closed.Entry.LoginTime, *snapshot.LastSessionLoginTime)
		require.NotNil(t, snapshot.LastSessionLogoutTime)
		assert.Equal(t, *closed.Entry.LogoutTime, *snapshot.LastSessionLogoutTime)
	})

	t.Run("should hydrate notes on historical entries", func(t *testing.T) {
		f := setupServices(t)
		f.seedUser(t, "a1", "Ada Admin", "1000", domain.RoleAdmin)
		f.seedUser(t, "w1", "Wanda Worker", "2000", domain.RoleWorker)
		ctx := context.Background()

		_, err := f.container.Entries.ClockIn(ctx, "w1")
		require.NoError(t, err)
		f.clock.advance(2 * time.Hour)
		forced, err := f.container.Entries.ForceLogout(ctx, "a1", "w1", "sent home")
		require.NoError(t, err)

		snapshot, err := f.container.Entries.GetWorkerSnapshot(ctx, "w1")
		require.NoError(t, err)

		require.Len(t, snapshot.HistoricalEntries, 1)
		require.Len(t, snapshot.HistoricalEntries[0].Notes, 1)
		assert.Equal(t, forced.Entry.NoteIDs[0], snapshot.HistoricalEntries[0].Notes[0].ID)
	})

	t.Run("should return not found for unknown user", func(t *testing.T) {
		f := setupServices(t)

		_, err := f.container.Entries.GetWorkerSnapshot(context.Background(), "missing")
		assertErrorType(t, err, errors.ErrorTypeNotFound)
	})
}
