package model

import (
	"time"

	"gorm.io/datatypes"
)

type NoteEvent struct {
	Id         int64          `gorm:"primaryKey;autoIncrement"`
	Type       string         `gorm:"type:varchar(64);not null;index"`
	Payload    datatypes.JSON `gorm:"type:json"`
	OccurredAt time.Time      `gorm:"index"`
}

func (NoteEvent) TableName() string {
	return "note_events"
}
