package domain

import (
	"math"
	"time"
)

// DateLayout is the calendar-day key format used by time entries.
const DateLayout = "2006-01-02"

// TimeEntry represents a clock-in/clock-out session in the domain model.
// This is a pure domain model without storage-specific concerns.
// JSON tags preserve the legacy data file keys.
type TimeEntry struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	LoginTime    time.Time  `json:"loginTime"`
	LogoutTime   *time.Time `json:"logoutTime"`
	TotalHours   float64    `json:"totalHours"`
	Date         string     `json:"date"`
	Edited       bool       `json:"edited"`
	LastModified time.Time  `json:"lastModified"`
	NoteIDs      []string   `json:"editNotes"`
}

// NewTimeEntry creates a new open TimeEntry for the given user.
// Date is fixed from the login time's calendar day and never changes,
// even if the entry is later edited onto another day.
// The caller assigns the ID.
func NewTimeEntry(userID string, loginTime time.Time) TimeEntry {
	return TimeEntry{
		UserID:       userID,
		LoginTime:    loginTime,
		LogoutTime:   nil,
		TotalHours:   0,
		Date:         DateKey(loginTime),
		Edited:       false,
		LastModified: loginTime,
		NoteIDs:      []string{},
	}
}

// IsOpen returns true if the entry has no logout time yet.
func (te TimeEntry) IsOpen() bool {
	return te.LogoutTime == nil
}

// Close sets the logout time and the session hours for the entry.
func (te TimeEntry) Close(logoutTime time.Time) TimeEntry {
	te.LogoutTime = &logoutTime
	te.TotalHours = SessionHours(te.LoginTime, logoutTime)
	te.LastModified = logoutTime
	return te
}

// IsValid checks if the time entry has valid data.
func (te TimeEntry) IsValid() bool {
	if te.UserID == "" {
		return false
	}
	if te.LoginTime.IsZero() {
		return false
	}
	if te.LogoutTime != nil && te.LogoutTime.Before(te.LoginTime) {
		return false
	}
	return true
}

// EntrySnapshot captures the time-relevant state of an entry at a point
// in time, for before/after audit notes.
type EntrySnapshot struct {
	LoginTime  time.Time
	LogoutTime *time.Time
	TotalHours float64
}

// Snapshot returns the current snapshot of the entry.
func (te TimeEntry) Snapshot() EntrySnapshot {
	var logout *time.Time
	if te.LogoutTime != nil {
		t := *te.LogoutTime
		logout = &t
	}
	return EntrySnapshot{
		LoginTime:  te.LoginTime,
		LogoutTime: logout,
		TotalHours: te.TotalHours,
	}
}

// RoundHours rounds an hour count to two decimal places.
func RoundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}

// SessionHours returns the rounded duration between login and logout in hours.
func SessionHours(login, logout time.Time) float64 {
	return RoundHours(logout.Sub(login).Hours())
}

// DateKey returns the calendar-day key for a time.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// SameCalendarDay reports whether two times fall on the same calendar day.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
