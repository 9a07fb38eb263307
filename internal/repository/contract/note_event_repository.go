package contract

import (
	"context"

	"quicknotes-be/internal/entity"
)

type NoteEventRepository interface {
	Create(ctx context.Context, event *entity.NoteEvent) error
	FindRecent(ctx context.Context, limit int) ([]*entity.NoteEvent, error)
}
