package entity

import "time"

// NoteEvent is one recorded lifecycle event, persisted by the audit
// consumer from the event bus.
type NoteEvent struct {
	Id         int64
	Type       string
	Payload    map[string]interface{}
	OccurredAt time.Time
}
