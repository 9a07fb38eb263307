package contract

import (
	"context"
	"time"

	"quicknotes-be/internal/entity"
	"quicknotes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error

	// HardDelete permanently removes the row.
	HardDelete(ctx context.Context, id uuid.UUID) error

	// HardDeleteTrashedBefore removes every trashed note whose deleted_at
	// is older than cutoff and returns the ids it removed.
	HardDeleteTrashedBefore(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
