package integration

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"quicknotes-be/pkg/mirror"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*mirror.RedisStore, *redis.Client) {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set, skipping redis mirror integration test")
	}

	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)

	ctx := context.Background()
	require.NoError(t, rdb.Ping(ctx).Err())

	namespace := "widget-test-" + time.Now().Format("150405.000000000")
	store := mirror.NewRedisStore(rdb, namespace)

	t.Cleanup(func() {
		rdb.Del(ctx, namespace+":notes", namespace+":selected")
		rdb.Close()
	})

	return store, rdb
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "a", "first note"))
	require.NoError(t, store.Upsert(ctx, "b", "second note"))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []mirror.Entry{
		{Id: "a", Content: "first note"},
		{Id: "b", Content: "second note"},
	}, entries)

	content, ok, err := store.ContentFor(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "first note", content)

	require.NoError(t, store.Remove(ctx, "a"))
	_, ok, err = store.ContentFor(ctx, "a")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisStoreSelectedSurvivesSetAll(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "a", "alpha"))
	require.NoError(t, store.Select(ctx, "a"))

	// Full snapshot replacement keeps the selection alive.
	require.NoError(t, store.SetAll(ctx, []mirror.Entry{
		{Id: "a", Content: "alpha v2"},
		{Id: "b", Content: "beta"},
	}))

	id, ok, err := store.Selected(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a", id)
}

func TestRedisStoreDanglingSelection(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "a", "alpha"))
	require.NoError(t, store.Select(ctx, "a"))

	// Dropping the entry leaves the pointer dangling; readers see no
	// selection rather than an error.
	require.NoError(t, store.SetAll(ctx, []mirror.Entry{{Id: "b", Content: "beta"}}))

	_, ok, err := store.Selected(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	// Re-adding the entry revives the selection.
	require.NoError(t, store.Upsert(ctx, "a", "alpha again"))
	id, ok, err := store.Selected(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a", id)
}

func TestRedisStorePublishesChangeEvents(t *testing.T) {
	store, rdb := newRedisStore(t)
	ctx := context.Background()

	pubsub := rdb.Subscribe(ctx, store.Channel())
	t.Cleanup(func() { pubsub.Close() })

	// Wait for the subscription before writing.
	_, err := pubsub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Upsert(ctx, "a", "alpha"))

	select {
	case msg := <-pubsub.Channel():
		var event mirror.ChangeEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
		require.Equal(t, mirror.ChangeUpsert, event.Type)
		require.Equal(t, "a", event.Id)
	case <-time.After(2 * time.Second):
		t.Fatal("no change event received")
	}
}
