package events

import "time"

// Note lifecycle event types published on the bus.
const (
	NoteCreated    = "NOTE_CREATED"
	NoteUpdated    = "NOTE_UPDATED"
	NoteArchived   = "NOTE_ARCHIVED"
	NoteUnarchived = "NOTE_UNARCHIVED"
	NoteTrashed    = "NOTE_TRASHED"
	NoteRestored   = "NOTE_RESTORED"
	NoteDeleted    = "NOTE_DELETED"
	TrashPurged    = "TRASH_PURGED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "NOTE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation used throughout the service layer.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
