package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"quicknotes-be/internal/entity"
	"quicknotes-be/internal/model"
	"quicknotes-be/internal/pkg/logger"
	"quicknotes-be/internal/repository/specification"
	"quicknotes-be/internal/repository/unitofwork"
	"quicknotes-be/internal/service"
	"quicknotes-be/pkg/database"
	"quicknotes-be/pkg/mirror"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	noteService service.INoteService
	uowFactory  unitofwork.RepositoryFactory
	mirrorStore mirror.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))

	uowFactory := unitofwork.NewRepositoryFactory(db)
	log := logger.NewNopLogger()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	const topic = "MIRROR_SYNC_TEST"

	store := mirror.NewMemoryStore()
	consumer := service.NewMirrorConsumerService(pubSub, topic, store, log)
	require.NoError(t, consumer.Consume(context.Background()))

	publisher := service.NewPublisherService(topic, pubSub)
	mirrorSync := service.NewMirrorSyncService(uowFactory, publisher, log)

	noteService := service.NewNoteService(uowFactory, mirrorSync, nil, log, 30)

	return &testEnv{
		noteService: noteService,
		uowFactory:  uowFactory,
		mirrorStore: store,
	}
}

func TestCreateTrimsContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	note, err := env.noteService.Create(ctx, "  hello world \n")
	require.NoError(t, err)
	require.NotNil(t, note)
	require.Equal(t, "hello world", note.Content)
}

func TestCreateBlankContentIsDiscarded(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	note, err := env.noteService.Create(ctx, "   \n\t ")
	require.NoError(t, err)
	require.Nil(t, note)

	active, err := env.noteService.ListActive(ctx, "")
	require.NoError(t, err)
	require.Empty(t, active)
}

func TestViewsPartitionNotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	active, err := env.noteService.Create(ctx, "stays active")
	require.NoError(t, err)
	archived, err := env.noteService.Create(ctx, "gets archived")
	require.NoError(t, err)
	trashed, err := env.noteService.Create(ctx, "gets trashed")
	require.NoError(t, err)

	found, err := env.noteService.Archive(ctx, archived.Id)
	require.NoError(t, err)
	require.True(t, found)

	found, err = env.noteService.Trash(ctx, trashed.Id)
	require.NoError(t, err)
	require.True(t, found)

	activeList, err := env.noteService.ListActive(ctx, "")
	require.NoError(t, err)
	require.Len(t, activeList, 1)
	require.Equal(t, active.Id, activeList[0].Note.Id)

	archivedList, err := env.noteService.ListArchived(ctx)
	require.NoError(t, err)
	require.Len(t, archivedList, 1)
	require.Equal(t, archived.Id, archivedList[0].Id)

	trashList, err := env.noteService.ListTrash(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, trashList, 1)
	require.Equal(t, trashed.Id, trashList[0].Id)
}

func TestArchiveIsFrozenInTrash(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	note, err := env.noteService.Create(ctx, "trash me")
	require.NoError(t, err)

	_, err = env.noteService.Trash(ctx, note.Id)
	require.NoError(t, err)

	// Archiving a trashed note is acknowledged but does nothing.
	found, err := env.noteService.Archive(ctx, note.Id)
	require.NoError(t, err)
	require.True(t, found)

	got, err := env.noteService.Get(ctx, note.Id)
	require.NoError(t, err)
	require.False(t, got.IsArchived)
	require.True(t, got.IsTrashed())
}

func TestTrashClearsArchiveAndPin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	note, err := env.noteService.Create(ctx, "pinned and archived")
	require.NoError(t, err)

	_, err = env.noteService.SetPinned(ctx, note.Id, true)
	require.NoError(t, err)
	_, err = env.noteService.Archive(ctx, note.Id)
	require.NoError(t, err)

	// Pin survives archive; the note just leaves the Active view.
	pinned, err := env.noteService.IsPinned(ctx, note.Id)
	require.NoError(t, err)
	require.True(t, pinned)

	activeList, err := env.noteService.ListActive(ctx, "")
	require.NoError(t, err)
	require.Empty(t, activeList)

	archivedList, err := env.noteService.ListArchived(ctx)
	require.NoError(t, err)
	require.Len(t, archivedList, 1)
	require.Equal(t, note.Id, archivedList[0].Id)

	_, err = env.noteService.Trash(ctx, note.Id)
	require.NoError(t, err)

	got, err := env.noteService.Get(ctx, note.Id)
	require.NoError(t, err)
	require.False(t, got.IsArchived)

	pinned, err = env.noteService.IsPinned(ctx, note.Id)
	require.NoError(t, err)
	require.False(t, pinned)

	// Restore puts it back in Active, not Archived, and unpinned.
	_, err = env.noteService.Restore(ctx, note.Id)
	require.NoError(t, err)

	activeList, err = env.noteService.ListActive(ctx, "")
	require.NoError(t, err)
	require.Len(t, activeList, 1)
	require.False(t, activeList[0].Pinned)
}

func TestUpdateWithEmptyContentDeletes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	note, err := env.noteService.Create(ctx, "about to vanish")
	require.NoError(t, err)
	_, err = env.noteService.SetPinned(ctx, note.Id, true)
	require.NoError(t, err)

	outcome, err := env.noteService.Update(ctx, note.Id, "   ")
	require.NoError(t, err)
	require.Equal(t, service.UpdateOutcomeDeleted, outcome)

	got, err := env.noteService.Get(ctx, note.Id)
	require.NoError(t, err)
	require.Nil(t, got)

	pinned, err := env.noteService.IsPinned(ctx, note.Id)
	require.NoError(t, err)
	require.False(t, pinned)
}

func TestUpdateMissingNote(t *testing.T) {
	env := newTestEnv(t)

	outcome, err := env.noteService.Update(context.Background(), uuid.New(), "new content")
	require.NoError(t, err)
	require.Equal(t, service.UpdateOutcomeNotFound, outcome)
}

func TestPurgeExpiredTrash(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	old, err := env.noteService.Create(ctx, "expired")
	require.NoError(t, err)
	fresh, err := env.noteService.Create(ctx, "still within retention")
	require.NoError(t, err)

	_, err = env.noteService.Trash(ctx, old.Id)
	require.NoError(t, err)
	_, err = env.noteService.Trash(ctx, fresh.Id)
	require.NoError(t, err)

	// Backdate the first deletion past the retention window.
	backdate(t, env, old.Id, time.Now().AddDate(0, 0, -31))

	purged, err := env.noteService.PurgeExpiredTrash(ctx, time.Now())
	require.NoError(t, err)
	require.Equal(t, 1, purged)

	got, err := env.noteService.Get(ctx, old.Id)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = env.noteService.Get(ctx, fresh.Id)
	require.NoError(t, err)
	require.NotNil(t, got)

	// A second purge finds nothing new.
	purged, err = env.noteService.PurgeExpiredTrash(ctx, time.Now())
	require.NoError(t, err)
	require.Zero(t, purged)
}

func TestEmptyTrashIgnoresRetention(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.noteService.Create(ctx, "just trashed")
	require.NoError(t, err)
	second, err := env.noteService.Create(ctx, "long trashed")
	require.NoError(t, err)
	kept, err := env.noteService.Create(ctx, "never trashed")
	require.NoError(t, err)

	_, err = env.noteService.Trash(ctx, first.Id)
	require.NoError(t, err)
	_, err = env.noteService.Trash(ctx, second.Id)
	require.NoError(t, err)
	backdate(t, env, second.Id, time.Now().AddDate(0, 0, -5))

	// Emptying removes everything in Trash, however recent.
	purged, err := env.noteService.EmptyTrash(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, purged)

	got, err := env.noteService.Get(ctx, first.Id)
	require.NoError(t, err)
	require.Nil(t, got)
	got, err = env.noteService.Get(ctx, second.Id)
	require.NoError(t, err)
	require.Nil(t, got)
	got, err = env.noteService.Get(ctx, kept.Id)
	require.NoError(t, err)
	require.NotNil(t, got)

	purged, err = env.noteService.EmptyTrash(ctx)
	require.NoError(t, err)
	require.Zero(t, purged)
}

func TestListRecentEventsNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	uow := env.uowFactory.NewUnitOfWork(ctx)
	base := time.Now().Add(-time.Hour)
	for i, eventType := range []string{"NOTE_CREATED", "NOTE_ARCHIVED", "NOTE_TRASHED"} {
		err := uow.NoteEventRepository().Create(ctx, &entity.NoteEvent{
			Type:       eventType,
			Payload:    map[string]interface{}{"seq": float64(i)},
			OccurredAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	events, err := env.noteService.ListRecentEvents(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "NOTE_TRASHED", events[0].Type)
	require.Equal(t, "NOTE_ARCHIVED", events[1].Type)

	// Out-of-range limits fall back to the default window.
	events, err = env.noteService.ListRecentEvents(ctx, -1)
	require.NoError(t, err)
	require.Len(t, events, 3)
}

func TestListTrashHidesExpiredEntries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	note, err := env.noteService.Create(ctx, "lingering")
	require.NoError(t, err)
	_, err = env.noteService.Trash(ctx, note.Id)
	require.NoError(t, err)

	backdate(t, env, note.Id, time.Now().AddDate(0, 0, -31))

	// Expired but not yet purged entries never show in the Trash view.
	trashList, err := env.noteService.ListTrash(ctx, time.Now())
	require.NoError(t, err)
	require.Empty(t, trashList)
}

func TestListActivePinnedFirstThenNewest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	oldest, err := env.noteService.Create(ctx, "oldest")
	require.NoError(t, err)
	middle, err := env.noteService.Create(ctx, "middle")
	require.NoError(t, err)
	newest, err := env.noteService.Create(ctx, "newest")
	require.NoError(t, err)

	setCreatedAt(t, env, oldest.Id, time.Now().Add(-3*time.Hour))
	setCreatedAt(t, env, middle.Id, time.Now().Add(-2*time.Hour))
	setCreatedAt(t, env, newest.Id, time.Now().Add(-1*time.Hour))

	_, err = env.noteService.SetPinned(ctx, oldest.Id, true)
	require.NoError(t, err)

	list, err := env.noteService.ListActive(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, oldest.Id, list[0].Note.Id) // pinned wins over recency
	require.Equal(t, newest.Id, list[1].Note.Id)
	require.Equal(t, middle.Id, list[2].Note.Id)
}

func TestListActiveTieBreaksOnId(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.noteService.Create(ctx, "first")
	require.NoError(t, err)
	b, err := env.noteService.Create(ctx, "second")
	require.NoError(t, err)

	ts := time.Now().Truncate(time.Second)
	setCreatedAt(t, env, a.Id, ts)
	setCreatedAt(t, env, b.Id, ts)

	list, err := env.noteService.ListActive(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 2)

	wantFirst := a.Id
	wantSecond := b.Id
	if b.Id.String() < a.Id.String() {
		wantFirst, wantSecond = b.Id, a.Id
	}
	require.Equal(t, wantFirst, list[0].Note.Id)
	require.Equal(t, wantSecond, list[1].Note.Id)
}

func TestListActiveFiltersBySubstring(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	match, err := env.noteService.Create(ctx, "Grocery list: milk, 100% juice")
	require.NoError(t, err)
	_, err = env.noteService.Create(ctx, "meeting notes")
	require.NoError(t, err)

	list, err := env.noteService.ListActive(ctx, "100% JUICE")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, match.Id, list[0].Note.Id)

	// Archived and trashed notes never match.
	_, err = env.noteService.Archive(ctx, match.Id)
	require.NoError(t, err)

	list, err = env.noteService.ListActive(ctx, "100% JUICE")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestPinIgnoredForTrashedNote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	note, err := env.noteService.Create(ctx, "cannot pin me")
	require.NoError(t, err)
	_, err = env.noteService.Trash(ctx, note.Id)
	require.NoError(t, err)

	found, err := env.noteService.SetPinned(ctx, note.Id, true)
	require.NoError(t, err)
	require.True(t, found)

	pinned, err := env.noteService.IsPinned(ctx, note.Id)
	require.NoError(t, err)
	require.False(t, pinned)
}

func TestMirrorTracksActiveSet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	note, err := env.noteService.Create(ctx, "mirror me")
	require.NoError(t, err)
	hidden, err := env.noteService.Create(ctx, "archived away")
	require.NoError(t, err)
	_, err = env.noteService.Archive(ctx, hidden.Id)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		entries, err := env.mirrorStore.List(ctx)
		if err != nil || len(entries) != 1 {
			return false
		}
		return entries[0].Id == note.Id.String() && entries[0].Content == "mirror me"
	}, 2*time.Second, 10*time.Millisecond)

	_, err = env.noteService.Trash(ctx, note.Id)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		entries, err := env.mirrorStore.List(ctx)
		return err == nil && len(entries) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

// backdate rewrites a trashed note's deletion timestamp.
func backdate(t *testing.T, env *testEnv, id uuid.UUID, deletedAt time.Time) {
	t.Helper()
	ctx := context.Background()

	uow := env.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	require.NoError(t, err)
	require.NotNil(t, note)
	note.DeletedAt = &deletedAt
	require.NoError(t, uow.NoteRepository().Update(ctx, note))
}

func setCreatedAt(t *testing.T, env *testEnv, id uuid.UUID, createdAt time.Time) {
	t.Helper()
	ctx := context.Background()

	uow := env.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	require.NoError(t, err)
	require.NotNil(t, note)
	note.CreatedAt = createdAt
	require.NoError(t, uow.NoteRepository().Update(ctx, note))
}
