package model

import (
	"time"

	"github.com/google/uuid"
)

// Note row. DeletedAt is a plain nullable timestamp, not gorm.DeletedAt:
// Trash is a first-class queryable view with its own retention policy,
// not a hidden soft-delete.
type Note struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Content    string     `gorm:"type:text;not null"`
	IsArchived bool       `gorm:"not null;default:false;index"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`
	DeletedAt  *time.Time `gorm:"index"`
}

func (Note) TableName() string {
	return "notes"
}
