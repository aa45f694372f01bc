package service

import (
	"context"
	"fmt"
	"time"

	"exam-prep-be/internal/pkg/logger"
	"exam-prep-be/pkg/events"
	pktNats "exam-prep-be/pkg/nats"

	"github.com/google/uuid"
)

const activityDurable = "activity-feed-worker"

type EventSubscriber interface {
	Subscribe(ctx context.Context, subject string, durableName string, handler pktNats.EventHandler) error
}

type ActivityMessage struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// ActivityService relays study events from the bus to the user's live connections.
type ActivityService struct {
	subscriber EventSubscriber
	notifier   Notifier
	logger     logger.ILogger
}

func NewActivityService(sub EventSubscriber, notifier Notifier, log logger.ILogger) *ActivityService {
	return &ActivityService{
		subscriber: sub,
		notifier:   notifier,
		logger:     log,
	}
}

func (s *ActivityService) Start(ctx context.Context) error {
	if err := s.subscriber.Subscribe(ctx, pktNats.SubjectPrefix+">", activityDurable, s.handleEvent); err != nil {
		return fmt.Errorf("start activity subscriber: %w", err)
	}
	s.logger.Info("ActivityService", "Listening to events.>", nil)
	return nil
}

func (s *ActivityService) handleEvent(ctx context.Context, event events.Event) error {
	raw, _ := event.Payload()["user_id"].(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		// Not addressed to a user; nothing to relay.
		s.logger.Debug("ActivityService", "Skipping event without user", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	s.notifier.Send(userID, MessageActivity, ActivityMessage{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	return nil
}
