package dto

import (
	"time"

	"quicknotes-be/pkg/search"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Content string `json:"content" validate:"max=100000"`
}

type UpdateNoteRequest struct {
	Id      uuid.UUID `json:"-"`
	Content string    `json:"content" validate:"max=100000"`
}

// PinRequest uses a pointer so an absent field is distinguishable from an
// explicit false.
type PinRequest struct {
	Pinned *bool `json:"pinned" validate:"required"`
}

type NoteResponse struct {
	Id         uuid.UUID      `json:"id"`
	Content    string         `json:"content"`
	Snippet    string         `json:"snippet"`
	Highlights []search.Range `json:"highlights,omitempty"`
	Pinned     bool           `json:"pinned"`
	IsArchived bool           `json:"is_archived"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  *time.Time     `json:"deleted_at,omitempty"`
}

type UpdateNoteResponse struct {
	Outcome string        `json:"outcome"`
	Note    *NoteResponse `json:"note,omitempty"`
}

type PurgeResponse struct {
	Purged int `json:"purged"`
}

type NoteEventResponse struct {
	Id         int64                  `json:"id"`
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

type WidgetNoteResponse struct {
	Id      string `json:"id"`
	Content string `json:"content"`
}

type WidgetSelectedResponse struct {
	Id      string `json:"id,omitempty"`
	Content string `json:"content,omitempty"`
	Exists  bool   `json:"exists"`
}
