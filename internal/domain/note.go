package domain

import (
	"time"
)

// EntityType identifies what kind of record a note is attached to.
type EntityType string

const (
	EntityTimeEntry      EntityType = "time_entry"
	EntityUserSuspension EntityType = "user_suspension"
)

// IsValid checks if the entity type is one of the known types.
func (et EntityType) IsValid() bool {
	switch et {
	case EntityTimeEntry, EntityUserSuspension:
		return true
	}
	return false
}

// Note represents an immutable audit note attached to a time entry or a
// user suspension. Notes are append-only and removed only when the owning
// records are deleted. JSON tags preserve the legacy data file keys.
type Note struct {
	ID         string     `json:"id"`
	EntityID   string     `json:"entityId"`
	EntityType EntityType `json:"entityType"`
	Timestamp  time.Time  `json:"timestamp"`
	Editor     string     `json:"editor"`
	Text       string     `json:"note"`
}

// NewNote creates a new Note for the given entity.
// The caller assigns the ID.
func NewNote(entityID string, entityType EntityType, editor, text string, timestamp time.Time) Note {
	return Note{
		EntityID:   entityID,
		EntityType: entityType,
		Timestamp:  timestamp,
		Editor:     editor,
		Text:       text,
	}
}

// IsValid checks if the note has valid data.
func (n Note) IsValid() bool {
	return n.EntityID != "" && n.EntityType.IsValid() && n.Text != ""
}
