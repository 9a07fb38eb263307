package entity

import (
	"time"

	"github.com/google/uuid"
)

// Note is the core record. Exactly one of the three views holds a note at
// any time, determined solely by (IsArchived, DeletedAt):
//
//	Active:   IsArchived == false, DeletedAt == nil
//	Archived: IsArchived == true,  DeletedAt == nil
//	Trash:    DeletedAt != nil
type Note struct {
	Id         uuid.UUID
	Content    string
	IsArchived bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

func (n *Note) IsTrashed() bool {
	return n.DeletedAt != nil
}

func (n *Note) IsActive() bool {
	return !n.IsArchived && n.DeletedAt == nil
}
