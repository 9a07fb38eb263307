package contract

import (
	"context"

	"github.com/google/uuid"
)

type PinRepository interface {
	IsPinned(ctx context.Context, noteId uuid.UUID) (bool, error)

	// SetPinned is idempotent in both directions.
	SetPinned(ctx context.Context, noteId uuid.UUID, pinned bool) error

	// Remove unconditionally clears pin state; called on trash and
	// hard-delete.
	Remove(ctx context.Context, noteId uuid.UUID) error

	// PinnedSet returns the ids of all currently pinned notes.
	PinnedSet(ctx context.Context) (map[uuid.UUID]bool, error)
}
