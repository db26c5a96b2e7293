package service

import (
	"context"

	"personal-notes-be/internal/pkg/logger"
	"personal-notes-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// IPublisherService fans domain events out to the in-process topic and the
// optional external mirror. Delivery failures are logged, never returned.
type IPublisherService interface {
	Publish(ctx context.Context, event events.Event)
}

// EventMirror is an external bus that receives a copy of every event.
type EventMirror interface {
	Publish(ctx context.Context, event events.Event) error
}

type publisherService struct {
	topicName string
	pubSub    message.Publisher
	mirror    EventMirror
	logger    logger.ILogger
}

func NewPublisherService(topicName string, pubSub message.Publisher, mirror EventMirror, log logger.ILogger) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
		mirror:    mirror,
		logger:    log,
	}
}

func (s *publisherService) Publish(ctx context.Context, event events.Event) {
	payload, err := events.Marshal(event)
	if err != nil {
		s.logger.Warn("EVENTS", "Failed to encode event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("type", event.EventType())
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		s.logger.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"topic": s.topicName,
			"error": err.Error(),
		})
	}

	if s.mirror == nil {
		return
	}
	if err := s.mirror.Publish(ctx, event); err != nil {
		s.logger.Warn("EVENTS", "Failed to mirror event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
