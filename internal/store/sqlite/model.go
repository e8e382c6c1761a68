package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"timeclock/internal/domain"
)

// userRow mirrors the users table
type userRow struct {
	ID              string
	Name            string
	Email           string
	Phone           string
	Role            string
	PIN             string
	CreatedAt       string
	IsSuspended     bool
	SuspensionNotes string
}

// entryRow mirrors the time_entries table
type entryRow struct {
	ID           string
	UserID       string
	LoginTime    string
	LogoutTime   *string
	TotalHours   float64
	Date         string
	Edited       bool
	LastModified string
	EditNotes    string
}

// noteRow mirrors the notes table
type noteRow struct {
	ID         string
	EntityID   string
	EntityType string
	Timestamp  string
	Editor     string
	Note       string
}

func userRowFromDomain(u domain.User) (userRow, error) {
	noteIDs, err := encodeNoteIDs(u.SuspensionNoteIDs)
	if err != nil {
		return userRow{}, fmt.Errorf("encoding suspension notes for user %s: %w", u.ID, err)
	}
	return userRow{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Phone:           u.Phone,
		Role:            string(u.Role),
		PIN:             u.PIN,
		CreatedAt:       FormatTimeForDB(u.CreatedAt),
		IsSuspended:     u.Suspended,
		SuspensionNotes: noteIDs,
	}, nil
}

func (r userRow) toDomain() (domain.User, error) {
	createdAt, err := ParseTimeFromDB(r.CreatedAt)
	if err != nil {
		return domain.User{}, fmt.Errorf("parsing created_at for user %s: %w", r.ID, err)
	}
	noteIDs, err := decodeNoteIDs(r.SuspensionNotes)
	if err != nil {
		return domain.User{}, fmt.Errorf("decoding suspension notes for user %s: %w", r.ID, err)
	}
	return domain.User{
		ID:                r.ID,
		Name:              r.Name,
		Email:             r.Email,
		Phone:             r.Phone,
		Role:              domain.Role(r.Role),
		PIN:               r.PIN,
		CreatedAt:         createdAt,
		Suspended:         r.IsSuspended,
		SuspensionNoteIDs: noteIDs,
	}, nil
}

func entryRowFromDomain(e domain.TimeEntry) (entryRow, error) {
	noteIDs, err := encodeNoteIDs(e.NoteIDs)
	if err != nil {
		return entryRow{}, fmt.Errorf("encoding edit notes for entry %s: %w", e.ID, err)
	}
	var logout *string
	if e.LogoutTime != nil {
		s := FormatTimeForDB(*e.LogoutTime)
		logout = &s
	}
	return entryRow{
		ID:           e.ID,
		UserID:       e.UserID,
		LoginTime:    FormatTimeForDB(e.LoginTime),
		LogoutTime:   logout,
		TotalHours:   e.TotalHours,
		Date:         e.Date,
		Edited:       e.Edited,
		LastModified: FormatTimeForDB(e.LastModified),
		EditNotes:    noteIDs,
	}, nil
}

func (r entryRow) toDomain() (domain.TimeEntry, error) {
	loginTime, err := ParseTimeFromDB(r.LoginTime)
	if err != nil {
		return domain.TimeEntry{}, fmt.Errorf("parsing login_time for entry %s: %w", r.ID, err)
	}
	var logoutTime *time.Time
	if r.LogoutTime != nil {
		t, err := ParseTimeFromDB(*r.LogoutTime)
		if err != nil {
			return domain.TimeEntry{}, fmt.Errorf("parsing logout_time for entry %s: %w", r.ID, err)
		}
		logoutTime = &t
	}
	lastModified, err := ParseTimeFromDB(r.LastModified)
	if err != nil {
		return domain.TimeEntry{}, fmt.Errorf("parsing last_modified for entry %s: %w", r.ID, err)
	}
	noteIDs, err := decodeNoteIDs(r.EditNotes)
	if err != nil {
		return domain.TimeEntry{}, fmt.Errorf("decoding edit notes for entry %s: %w", r.ID, err)
	}
	return domain.TimeEntry{
		ID:           r.ID,
		UserID:       r.UserID,
		LoginTime:    loginTime,
		LogoutTime:   logoutTime,
		TotalHours:   r.TotalHours,
		Date:         r.Date,
		Edited:       r.Edited,
		LastModified: lastModified,
		NoteIDs:      noteIDs,
	}, nil
}

func noteRowFromDomain(n domain.Note) noteRow {
	return noteRow{
		ID:         n.ID,
		EntityID:   n.EntityID,
		EntityType: string(n.EntityType),
		Timestamp:  FormatTimeForDB(n.Timestamp),
		Editor:     n.Editor,
		Note:       n.Text,
	}
}

func (r noteRow) toDomain() (domain.Note, error) {
	timestamp, err := ParseTimeFromDB(r.Timestamp)
	if err != nil {
		return domain.Note{}, fmt.Errorf("parsing timestamp for note %s: %w", r.ID, err)
	}
	return domain.Note{
		ID:         r.ID,
		EntityID:   r.EntityID,
		EntityType: domain.EntityType(r.EntityType),
		Timestamp:  timestamp,
		Editor:     r.Editor,
		Text:       r.Note,
	}, nil
}

// encodeNoteIDs serializes a note id list as a JSON array column value
func encodeNoteIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeNoteIDs deserializes a JSON array column value into a note id list
func decodeNoteIDs(s string) ([]string, error) {
	if s == "" {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(s), &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
