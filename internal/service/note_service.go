package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"quicknotes-be/internal/entity"
	"quicknotes-be/internal/pkg/logger"
	"quicknotes-be/internal/repository/specification"
	"quicknotes-be/internal/repository/unitofwork"
	"quicknotes-be/pkg/events"
	pktNats "quicknotes-be/pkg/nats"
	"quicknotes-be/pkg/search"

	"github.com/google/uuid"
)

// UpdateOutcome tells the caller what an Update turned into: saving new
// content, deleting the note because the trimmed content was empty, or
// nothing because the note does not exist.
type UpdateOutcome string

const (
	UpdateOutcomeNotFound UpdateOutcome = "not_found"
	UpdateOutcomeSaved    UpdateOutcome = "updated"
	UpdateOutcomeDeleted  UpdateOutcome = "deleted"
)

// ActiveNote pairs a note with its pin state for the Active view.
type ActiveNote struct {
	Note   *entity.Note
	Pinned bool
}

type INoteService interface {
	Create(ctx context.Context, content string) (*entity.Note, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Note, error)
	Update(ctx context.Context, id uuid.UUID, content string) (UpdateOutcome, error)
	Archive(ctx context.Context, id uuid.UUID) (bool, error)
	Unarchive(ctx context.Context, id uuid.UUID) (bool, error)
	Trash(ctx context.Context, id uuid.UUID) (bool, error)
	Restore(ctx context.Context, id uuid.UUID) (bool, error)
	HardDelete(ctx context.Context, id uuid.UUID) (bool, error)
	PurgeExpiredTrash(ctx context.Context, now time.Time) (int, error)
	EmptyTrash(ctx context.Context) (int, error)
	ListActive(ctx context.Context, query string) ([]ActiveNote, error)
	ListArchived(ctx context.Context) ([]*entity.Note, error)
	ListTrash(ctx context.Context, now time.Time) ([]*entity.Note, error)
	SetPinned(ctx context.Context, id uuid.UUID, pinned bool) (bool, error)
	IsPinned(ctx context.Context, id uuid.UUID) (bool, error)
	ListRecentEvents(ctx context.Context, limit int) ([]*entity.NoteEvent, error)
}

type noteService struct {
	uowFactory     unitofwork.RepositoryFactory
	mirrorSync     IMirrorSyncService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
	retentionDays  int
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	mirrorSync IMirrorSyncService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	retentionDays int,
) INoteService {
	return &noteService{
		uowFactory:     uowFactory,
		mirrorSync:     mirrorSync,
		eventPublisher: eventPublisher,
		logger:         log,
		retentionDays:  retentionDays,
	}
}

func (c *noteService) Create(ctx context.Context, content string) (*entity.Note, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		// Empty content never persists; a blank save is a no-op, not an error.
		return nil, nil
	}

	now := time.Now()
	note := &entity.Note{
		Id:        uuid.New(),
		Content:   trimmed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, err
	}

	c.publishEvent(ctx, events.NoteCreated, map[string]interface{}{"note_id": note.Id.String()})
	c.mirrorSync.Resync(ctx)
	return note, nil
}

func (c *noteService) Get(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	return uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
}

func (c *noteService) Update(ctx context.Context, id uuid.UUID, content string) (UpdateOutcome, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return UpdateOutcomeNotFound, err
	}
	if note == nil {
		return UpdateOutcomeNotFound, nil
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		// An edit that leaves the note empty deletes it.
		if err := uow.NoteRepository().HardDelete(ctx, id); err != nil {
			return UpdateOutcomeNotFound, err
		}
		if err := uow.PinRepository().Remove(ctx, id); err != nil {
			return UpdateOutcomeNotFound, err
		}
		c.publishEvent(ctx, events.NoteDeleted, map[string]interface{}{"note_id": id.String()})
		c.mirrorSync.Resync(ctx)
		return UpdateOutcomeDeleted, nil
	}

	note.Content = trimmed
	note.UpdatedAt = time.Now()
	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return UpdateOutcomeNotFound, err
	}

	c.publishEvent(ctx, events.NoteUpdated, map[string]interface{}{"note_id": id.String()})
	c.mirrorSync.Resync(ctx)
	return UpdateOutcomeSaved, nil
}

func (c *noteService) Archive(ctx context.Context, id uuid.UUID) (bool, error) {
	return c.setArchived(ctx, id, true, events.NoteArchived)
}

func (c *noteService) Unarchive(ctx context.Context, id uuid.UUID) (bool, error) {
	return c.setArchived(ctx, id, false, events.NoteUnarchived)
}

func (c *noteService) setArchived(ctx context.Context, id uuid.UUID, archived bool, eventType string) (bool, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return false, err
	}
	if note == nil {
		return false, nil
	}
	// Archive state is frozen while a note sits in Trash.
	if note.IsTrashed() || note.IsArchived == archived {
		return true, nil
	}

	note.IsArchived = archived
	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return false, err
	}

	c.publishEvent(ctx, eventType, map[string]interface{}{"note_id": id.String()})
	c.mirrorSync.Resync(ctx)
	return true, nil
}

func (c *noteService) Trash(ctx context.Context, id uuid.UUID) (bool, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return false, err
	}
	if note == nil {
		return false, nil
	}
	if note.IsTrashed() {
		return true, nil
	}

	now := time.Now()
	note.DeletedAt = &now
	note.IsArchived = false
	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return false, err
	}
	// Pin state does not survive trashing.
	if err := uow.PinRepository().Remove(ctx, id); err != nil {
		return false, err
	}

	c.publishEvent(ctx, events.NoteTrashed, map[string]interface{}{"note_id": id.String()})
	c.mirrorSync.Resync(ctx)
	return true, nil
}

func (c *noteService) Restore(ctx context.Context, id uuid.UUID) (bool, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return false, err
	}
	if note == nil {
		return false, nil
	}
	if !note.IsTrashed() {
		return true, nil
	}

	note.DeletedAt = nil
	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return false, err
	}

	c.publishEvent(ctx, events.NoteRestored, map[string]interface{}{"note_id": id.String()})
	c.mirrorSync.Resync(ctx)
	return true, nil
}

func (c *noteService) HardDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return false, err
	}
	if note == nil {
		return false, nil
	}

	if err := uow.NoteRepository().HardDelete(ctx, id); err != nil {
		return false, err
	}
	if err := uow.PinRepository().Remove(ctx, id); err != nil {
		return false, err
	}

	c.publishEvent(ctx, events.NoteDeleted, map[string]interface{}{"note_id": id.String()})
	c.mirrorSync.Resync(ctx)
	return true, nil
}

func (c *noteService) PurgeExpiredTrash(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.AddDate(0, 0, -c.retentionDays)

	uow := c.uowFactory.NewUnitOfWork(ctx)
	ids, err := uow.NoteRepository().HardDeleteTrashedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	// Pins were already cleared on trashing; clear again in case a pin
	// row survived a crash between the two writes.
	for _, id := range ids {
		if err := uow.PinRepository().Remove(ctx, id); err != nil {
			return len(ids), err
		}
	}

	if len(ids) > 0 {
		c.publishEvent(ctx, events.TrashPurged, map[string]interface{}{"count": len(ids)})
		c.mirrorSync.Resync(ctx)
	}
	return len(ids), nil
}

// EmptyTrash permanently removes every trashed note regardless of age,
// the user-initiated counterpart of the retention purge.
func (c *noteService) EmptyTrash(ctx context.Context) (int, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx, specification.Trashed{})
	if err != nil {
		return 0, err
	}

	for _, n := range notes {
		if err := uow.NoteRepository().HardDelete(ctx, n.Id); err != nil {
			return 0, err
		}
		if err := uow.PinRepository().Remove(ctx, n.Id); err != nil {
			return 0, err
		}
	}

	if len(notes) > 0 {
		c.publishEvent(ctx, events.TrashPurged, map[string]interface{}{"count": len(notes)})
	}
	return len(notes), nil
}

func (c *noteService) ListActive(ctx context.Context, query string) ([]ActiveNote, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx, specification.Active{})
	if err != nil {
		return nil, err
	}
	pinned, err := uow.PinRepository().PinnedSet(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ActiveNote, 0, len(notes))
	for _, n := range notes {
		if !search.Matches(n.Content, query) {
			continue
		}
		result = append(result, ActiveNote{Note: n, Pinned: pinned[n.Id]})
	}

	// Pinned first, newest first inside each partition, id as the
	// deterministic tie-break for equal creation times.
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		if !a.Note.CreatedAt.Equal(b.Note.CreatedAt) {
			return a.Note.CreatedAt.After(b.Note.CreatedAt)
		}
		return a.Note.Id.String() < b.Note.Id.String()
	})

	return result, nil
}

func (c *noteService) ListArchived(ctx context.Context) ([]*entity.Note, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	return uow.NoteRepository().FindAll(ctx,
		specification.Archived{},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.OrderBy{Field: "id"},
	)
}

func (c *noteService) ListTrash(ctx context.Context, now time.Time) ([]*entity.Note, error) {
	cutoff := now.AddDate(0, 0, -c.retentionDays)

	uow := c.uowFactory.NewUnitOfWork(ctx)
	return uow.NoteRepository().FindAll(ctx,
		specification.TrashedSince{Cutoff: cutoff},
		specification.OrderBy{Field: "deleted_at", Desc: true},
		specification.OrderBy{Field: "id"},
	)
}

func (c *noteService) SetPinned(ctx context.Context, id uuid.UUID, pinned bool) (bool, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return false, err
	}
	if note == nil {
		return false, nil
	}
	// Notes in Trash cannot hold a pin.
	if note.IsTrashed() {
		return true, nil
	}

	if err := uow.PinRepository().SetPinned(ctx, id, pinned); err != nil {
		return false, err
	}
	return true, nil
}

func (c *noteService) IsPinned(ctx context.Context, id uuid.UUID) (bool, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	return uow.PinRepository().IsPinned(ctx, id)
}

// ListRecentEvents reads the lifecycle audit trail, newest first.
func (c *noteService) ListRecentEvents(ctx context.Context, limit int) ([]*entity.NoteEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	uow := c.uowFactory.NewUnitOfWork(ctx)
	return uow.NoteEventRepository().FindRecent(ctx, limit)
}

// publishEvent sends a lifecycle event to the bus. Event delivery is
// auxiliary; failures are logged and never fail the mutation.
func (c *noteService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if c.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := c.eventPublisher.Publish(ctx, evt); err != nil {
		c.logger.Warn("NoteService", "Failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
