package service

import (
	"context"
	"time"

	"personal-notes-be/internal/pkg/logger"
	"personal-notes-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService writes every domain event to the isolated activity log.
type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	activityLog logger.ILogger
	logger      logger.ILogger
}

func NewConsumerService(subscriber message.Subscriber, topicName string, activityLog, log logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		activityLog: activityLog,
		logger:      log,
	}
}

// Consume subscribes and processes messages in the background until ctx ends.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	// Undecodable messages are acked so they are not redelivered forever
	defer msg.Ack()

	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.logger.Warn("ACTIVITY", "Dropping malformed event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	details := make(map[string]interface{}, len(event.Data)+1)
	for k, v := range event.Data {
		details[k] = v
	}
	details["occurred_at"] = event.OccurredAt.Format(time.RFC3339Nano)

	cs.activityLog.Info("ACTIVITY", event.Type, details)
}
