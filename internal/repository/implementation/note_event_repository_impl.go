package implementation

import (
	"context"

	"quicknotes-be/internal/entity"
	"quicknotes-be/internal/mapper"
	"quicknotes-be/internal/model"
	"quicknotes-be/internal/repository/contract"

	"gorm.io/gorm"
)

type NoteEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteEventMapper
}

func NewNoteEventRepository(db *gorm.DB) contract.NoteEventRepository {
	return &NoteEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteEventMapper(),
	}
}

func (r *NoteEventRepositoryImpl) Create(ctx context.Context, event *entity.NoteEvent) error {
	m, err := r.mapper.ToModel(event)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	event.Id = m.Id
	return nil
}

func (r *NoteEventRepositoryImpl) FindRecent(ctx context.Context, limit int) ([]*entity.NoteEvent, error) {
	var rows []*model.NoteEvent
	err := r.db.WithContext(ctx).
		Order("occurred_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows), nil
}
