package service

import (
	"context"
	"encoding/json"

	"quicknotes-be/internal/pkg/logger"
	"quicknotes-be/internal/repository/specification"
	"quicknotes-be/internal/repository/unitofwork"
	"quicknotes-be/pkg/mirror"
)

// IMirrorSyncService pushes the widget mirror a fresh copy of the Active
// set. Resync is fire-and-forget: the snapshot is read synchronously so
// it is complete and consistent at dispatch time, the write happens on
// the consumer side, and failures are logged but never surfaced to the
// mutation that triggered the sync.
type IMirrorSyncService interface {
	Resync(ctx context.Context)
}

type mirrorSyncService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewMirrorSyncService(
	uowFactory unitofwork.RepositoryFactory,
	publisher IPublisherService,
	log logger.ILogger,
) IMirrorSyncService {
	return &mirrorSyncService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *mirrorSyncService) Resync(ctx context.Context) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.Active{},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		s.logger.Error("MirrorSync", "Failed to snapshot active notes", map[string]interface{}{"error": err.Error()})
		return
	}

	entries := make([]mirror.Entry, 0, len(notes))
	for _, n := range notes {
		entries = append(entries, mirror.Entry{Id: n.Id.String(), Content: n.Content})
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		s.logger.Error("MirrorSync", "Failed to marshal snapshot", map[string]interface{}{"error": err.Error()})
		return
	}

	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Error("MirrorSync", "Failed to publish snapshot", map[string]interface{}{"error": err.Error()})
	}
}
