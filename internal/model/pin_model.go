package model

import (
	"time"

	"github.com/google/uuid"
)

type Pin struct {
	NoteId    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Pin) TableName() string {
	return "pins"
}
