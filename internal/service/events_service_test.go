package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"personal-notes-be/internal/pkg/logger"
	"personal-notes-be/internal/pkg/testutil"
	"personal-notes-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingMirror struct{ calls int }

func (m *failingMirror) Publish(context.Context, events.Event) error {
	m.calls++
	return errors.New("nats unavailable")
}

func TestPublisherDeliversToActivityLog(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	activity := testutil.NewRecordingLogger()
	consumer := NewConsumerService(pubSub, "activity", activity, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	mirror := &failingMirror{}
	sysLog := testutil.NewRecordingLogger()
	publisher := NewPublisherService("activity", pubSub, mirror, sysLog)

	publisher.Publish(ctx, events.New(events.NoteDeleted, map[string]interface{}{"note_id": "n1"}))

	require.Eventually(t, func() bool { return len(activity.Entries()) == 1 }, time.Second, 10*time.Millisecond)
	entry := activity.Entries()[0]
	assert.Equal(t, "ACTIVITY", entry.Module)
	assert.Equal(t, events.NoteDeleted, entry.Message)
	assert.Equal(t, "n1", entry.Details["note_id"])
	assert.Contains(t, entry.Details, "occurred_at")

	assert.Equal(t, 1, mirror.calls)
	require.Len(t, sysLog.Entries(), 1)
	assert.Equal(t, "WARN", sysLog.Entries()[0].Level)
}

func TestConsumerAcksMalformedMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	activity := testutil.NewRecordingLogger()
	sysLog := testutil.NewRecordingLogger()
	require.NoError(t, NewConsumerService(pubSub, "activity", activity, sysLog).Consume(ctx))

	require.NoError(t, pubSub.Publish("activity", message.NewMessage(watermill.NewUUID(), []byte("garbage"))))
	NewPublisherService("activity", pubSub, nil, sysLog).Publish(ctx, events.New(events.UserLogin, nil))

	require.Eventually(t, func() bool { return len(activity.Entries()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, events.UserLogin, activity.Entries()[0].Message)
	require.Eventually(t, func() bool { return len(sysLog.Entries()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "Dropping malformed event", sysLog.Entries()[0].Message)
}
