package service

import (
	"context"
	"encoding/json"
	"errors"

	"exam-prep-be/internal/dto"
	"exam-prep-be/internal/pkg/logger"
	"exam-prep-be/pkg/stats"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService turns completed focus sessions into recorded study sessions.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	sessions   ISessionService
	notifier   Notifier
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	sessions ISessionService,
	notifier Notifier,
	log logger.ILogger,
) IConsumerService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		sessions:   sessions,
		notifier:   notifier,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
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

// processMessage always acks: a session that cannot be recorded is logged and dropped, not retried.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.FocusCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal message", map[string]interface{}{"error": err.Error(), "uuid": msg.UUID})
		return
	}

	day, err := stats.ParseDay(payload.Date)
	if err != nil {
		cs.logger.Error("CONSUMER", "Invalid session date", map[string]interface{}{"error": err.Error(), "date": payload.Date})
		return
	}

	res, err := cs.sessions.Record(ctx, payload.UserId, payload.SubjectId, payload.Minutes, day, SourceFocus)
	if err != nil {
		var notFound *dto.NotFoundError
		if errors.As(err, &notFound) {
			cs.logger.Warn("CONSUMER", "Subject gone before focus session was recorded", map[string]interface{}{"subject_id": payload.SubjectId})
			return
		}
		cs.logger.Error("CONSUMER", "Failed to record focus session", map[string]interface{}{"error": err.Error(), "user_id": payload.UserId})
		return
	}

	cs.logger.Info("CONSUMER", "Focus session recorded", map[string]interface{}{"user_id": payload.UserId, "session_id": res.Id, "minutes": res.Duration})
	cs.notifier.Send(payload.UserId, MessageSessionRecorded, res)
}
