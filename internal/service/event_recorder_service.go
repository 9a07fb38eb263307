package service

import (
	"context"

	"quicknotes-be/internal/entity"
	"quicknotes-be/internal/pkg/logger"
	"quicknotes-be/internal/repository/unitofwork"
	"quicknotes-be/pkg/events"
	pktNats "quicknotes-be/pkg/nats"
)

type IEventRecorderService interface {
	Start() error
}

// eventRecorderService tails the notes stream and writes every lifecycle
// event into the audit table.
type eventRecorderService struct {
	subscriber *pktNats.Subscriber
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewEventRecorderService(
	subscriber *pktNats.Subscriber,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IEventRecorderService {
	return &eventRecorderService{
		subscriber: subscriber,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *eventRecorderService) Start() error {
	return s.subscriber.Subscribe("notes.>", "note-event-recorder", s.record)
}

func (s *eventRecorderService) record(ctx context.Context, event events.Event) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	record := &entity.NoteEvent{
		Type:       event.EventType(),
		Payload:    event.Payload(),
		OccurredAt: event.Timestamp(),
	}
	if err := uow.NoteEventRepository().Create(ctx, record); err != nil {
		s.logger.Error("EventRecorder", "Failed to persist event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
		return err
	}
	return nil
}
