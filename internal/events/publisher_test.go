package events

import (
	"context"
	"errors"
	"testing"

	"exam-prep-be/internal/pkg/logger"
	pkgEvents "exam-prep-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBus struct {
	events []pkgEvents.Event
	err    error
}

func (b *recordingBus) Publish(_ context.Context, e pkgEvents.Event) error {
	b.events = append(b.events, e)
	return b.err
}

func TestBusPublisherShapesPayload(t *testing.T) {
	bus := &recordingBus{}
	p := NewBusPublisher(bus, logger.NewNopLogger())

	userID, sessionID, subjectID := uuid.New(), uuid.New(), uuid.New()
	p.PublishSessionRecorded(context.Background(), userID, sessionID, subjectID, 25, "focus")

	require.Len(t, bus.events, 1)
	evt := bus.events[0]
	assert.Equal(t, SessionRecorded, evt.EventType())
	assert.Equal(t, userID.String(), evt.Payload()["user_id"])
	assert.Equal(t, 25, evt.Payload()["minutes"])
	assert.Equal(t, "focus", evt.Payload()["source"])
	assert.False(t, evt.Timestamp().IsZero())
}

func TestBusPublisherSwallowsErrors(t *testing.T) {
	bus := &recordingBus{err: errors.New("nats down")}
	p := NewBusPublisher(bus, logger.NewNopLogger())

	assert.NotPanics(t, func() {
		p.PublishTaskCompleted(context.Background(), uuid.New(), uuid.New(), "Read chapter 3")
	})
	assert.Len(t, bus.events, 1)
}

func TestBusPublisherWithoutBus(t *testing.T) {
	p := NewBusPublisher(nil, logger.NewNopLogger())
	assert.NotPanics(t, func() {
		p.PublishChapterCompleted(context.Background(), uuid.New(), uuid.New(), uuid.New(), "Optics")
	})
}
