package model

import "gorm.io/gorm"

// AutoMigrate creates or updates all tables. Called at boot and by tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Note{}, &Pin{}, &NoteEvent{})
}
