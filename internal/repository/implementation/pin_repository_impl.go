package implementation

import (
	"context"
	"errors"

	"quicknotes-be/internal/model"
	"quicknotes-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PinRepositoryImpl struct {
	db *gorm.DB
}

func NewPinRepository(db *gorm.DB) contract.PinRepository {
	return &PinRepositoryImpl{db: db}
}

func (r *PinRepositoryImpl) IsPinned(ctx context.Context, noteId uuid.UUID) (bool, error) {
	var pin model.Pin
	err := r.db.WithContext(ctx).First(&pin, "note_id = ?", noteId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *PinRepositoryImpl) SetPinned(ctx context.Context, noteId uuid.UUID, pinned bool) error {
	if !pinned {
		return r.Remove(ctx, noteId)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Pin{NoteId: noteId}).Error
}

func (r *PinRepositoryImpl) Remove(ctx context.Context, noteId uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Pin{}, "note_id = ?", noteId).Error
}

func (r *PinRepositoryImpl) PinnedSet(ctx context.Context) (map[uuid.UUID]bool, error) {
	var pins []*model.Pin
	if err := r.db.WithContext(ctx).Find(&pins).Error; err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]bool, len(pins))
	for _, p := range pins {
		set[p.NoteId] = true
	}
	return set, nil
}
