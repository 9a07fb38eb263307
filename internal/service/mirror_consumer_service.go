package service

import (
	"context"
	"encoding/json"

	"quicknotes-be/internal/pkg/logger"
	"quicknotes-be/pkg/mirror"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IMirrorConsumerService interface {
	Consume(ctx context.Context) error
}

// mirrorConsumerService applies mirror snapshots to the widget store off
// the interactive path. Every message is a full replacement snapshot, so
// a failed write is simply acked and healed by the next sync.
type mirrorConsumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	store     mirror.Store
	logger    logger.ILogger
}

func NewMirrorConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	store mirror.Store,
	log logger.ILogger,
) IMirrorConsumerService {
	return &mirrorConsumerService{
		pubSub:    pubSub,
		topicName: topicName,
		store:     store,
		logger:    log,
	}
}

func (cs *mirrorConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *mirrorConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var entries []mirror.Entry
	if err := json.Unmarshal(msg.Payload, &entries); err != nil {
		cs.logger.Error("MirrorConsumer", "Failed to unmarshal snapshot", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payloads are never retriable
		return
	}

	if err := cs.store.SetAll(ctx, entries); err != nil {
		// Best effort: the next mutation publishes a fresh snapshot, so
		// retrying a stale one buys nothing.
		cs.logger.Error("MirrorConsumer", "Failed to apply snapshot", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	cs.logger.Debug("MirrorConsumer", "Mirror synced", map[string]interface{}{"entries": len(entries)})
	msg.Ack()
}
