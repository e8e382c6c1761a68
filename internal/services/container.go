package services

import (
	"sync"
	"time"

	"timeclock/internal/logging"
	"timeclock/internal/repository"
)

// systemClock is the production Clock backed by the wall clock.
type systemClock struct{}

// NewSystemClock returns a Clock reading the system time.
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// NewServiceContainer wires the services over one set of repositories. All
// mutating operations share a single mutex, so every read-modify-persist
// sequence runs to completion without interleaving writers.
func NewServiceContainer(
	users *repository.UserRepository,
	entries *repository.EntryRepository,
	notes *repository.NoteRepository,
	clock Clock,
	editedFlagTTL time.Duration,
	log logging.Logger,
) *ServiceContainer {
	op := &sync.Mutex{}
	noteService := NewNoteService(notes, clock, log)
	return &ServiceContainer{
		Users:   NewUserService(users, entries, noteService, clock, log, op),
		Entries: NewEntryService(entries, users, noteService, clock, editedFlagTTL, log, op),
		Notes:   noteService,
	}
}
