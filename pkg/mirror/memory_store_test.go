package mirror

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreUpsertAndList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Upsert(ctx, "b", "second"))
	require.NoError(t, s.Upsert(ctx, "a", "first"))
	require.NoError(t, s.Upsert(ctx, "a", "first edited"))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Id: "a", Content: "first edited"}, {Id: "b", Content: "second"}}, entries)

	content, found, err := s.ContentFor(ctx, "b")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second", content)

	_, found, err = s.ContentFor(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreSetAllReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Upsert(ctx, "stale", "gone after sync"))
	require.NoError(t, s.SetAll(ctx, []Entry{{Id: "x", Content: "one"}, {Id: "y", Content: "two"}}))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Id: "x", Content: "one"}, {Id: "y", Content: "two"}}, entries)

	_, found, err := s.ContentFor(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreSelectedDegradesWhenEntryGone(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Upsert(ctx, "n1", "note one"))
	require.NoError(t, s.Select(ctx, "n1"))

	id, ok, err := s.Selected(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "n1", id)

	// Removing the entry leaves the pointer dangling; readers must see
	// "no selection" instead of an error.
	require.NoError(t, s.Remove(ctx, "n1"))
	_, ok, err = s.Selected(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// SetAll keeps the pointer, so re-adding the note revives it.
	require.NoError(t, s.SetAll(ctx, []Entry{{Id: "n1", Content: "restored"}}))
	id, ok, err = s.Selected(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "n1", id)
}

func TestMemoryStoreNoSelection(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Selected(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
