package entity

import (
	"time"

	"github.com/google/uuid"
)

// Pin marks a note as user-emphasized. Stored independently of the note
// record; it exists only while the note is Active or Archived and is
// discarded when the note is trashed or hard-deleted.
type Pin struct {
	NoteId    uuid.UUID
	CreatedAt time.Time
}
