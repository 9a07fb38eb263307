package mirror

import "context"

// Entry is one mirrored note: a stable identity and its current content.
type Entry struct {
	Id      string `json:"id"`
	Content string `json:"content"`
}

// Store is the denormalized key-value namespace consumed by the
// out-of-process widget. It holds a map of note id to content plus a
// single "selected for display" pointer. The selected pointer is
// independent of the in-app pin state and is allowed to dangle: readers
// treat a pointer to a missing entry as "no selection".
type Store interface {
	Upsert(ctx context.Context, id, content string) error
	Remove(ctx context.Context, id string) error

	// SetAll replaces the whole map with the given snapshot. The
	// selected pointer is left untouched.
	SetAll(ctx context.Context, entries []Entry) error

	Select(ctx context.Context, id string) error

	// Selected returns the selected note id. The second return is false
	// when nothing is selected or the selected entry no longer exists.
	Selected(ctx context.Context) (string, bool, error)

	ContentFor(ctx context.Context, id string) (string, bool, error)

	// List returns all entries ordered by id ascending.
	List(ctx context.Context) ([]Entry, error)
}
