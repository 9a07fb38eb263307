package specification

import (
	"time"

	"gorm.io/gorm"
)

// Active selects notes that are neither archived nor trashed.
type Active struct{}

func (s Active) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_archived = ? AND deleted_at IS NULL", false)
}

// Archived selects archived notes that are not trashed.
type Archived struct{}

func (s Archived) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_archived = ? AND deleted_at IS NULL", true)
}

// Trashed selects all soft-deleted notes regardless of age.
type Trashed struct{}

func (s Trashed) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NOT NULL")
}

// TrashedSince selects trashed notes still inside the retention window,
// i.e. deleted at or after the cutoff. The Trash view must never show
// what the next purge run is about to remove.
type TrashedSince struct {
	Cutoff time.Time
}

func (s TrashedSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NOT NULL AND deleted_at >= ?", s.Cutoff)
}

// TrashedBefore selects trashed notes past the retention cutoff, the set
// eligible for physical purge.
type TrashedBefore struct {
	Cutoff time.Time
}

func (s TrashedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NOT NULL AND deleted_at < ?", s.Cutoff)
}
