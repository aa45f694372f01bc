package events

import (
	"context"
	"time"

	"exam-prep-be/internal/pkg/logger"
	pkgEvents "exam-prep-be/pkg/events"

	"github.com/google/uuid"
)

const (
	SessionRecorded  = "SESSION_RECORDED"
	TaskCompleted    = "TASK_COMPLETED"
	ChapterCompleted = "CHAPTER_COMPLETED"
	UserRegistered   = "USER_REGISTERED"
)

// Publisher emits study activity events. Publishing is best effort: failures are logged, never returned.
type Publisher interface {
	PublishSessionRecorded(ctx context.Context, userId, sessionId, subjectId uuid.UUID, minutes int, source string)
	PublishTaskCompleted(ctx context.Context, userId, taskId uuid.UUID, description string)
	PublishChapterCompleted(ctx context.Context, userId, chapterId, subjectId uuid.UUID, name string)
	PublishUserRegistered(ctx context.Context, userId uuid.UUID, email, fullName, source string)
}

type BusPublisher struct {
	publisher pkgEvents.Publisher
	logger    logger.ILogger
}

// NewBusPublisher wraps a bus publisher. A nil publisher disables publishing.
func NewBusPublisher(publisher pkgEvents.Publisher, logger logger.ILogger) *BusPublisher {
	return &BusPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *BusPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENTS", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

func (p *BusPublisher) PublishSessionRecorded(ctx context.Context, userId, sessionId, subjectId uuid.UUID, minutes int, source string) {
	p.publish(ctx, SessionRecorded, map[string]interface{}{
		"user_id":     userId.String(),
		"session_id":  sessionId.String(),
		"subject_id":  subjectId.String(),
		"minutes":     minutes,
		"source":      source,
		"entity_type": "study_session",
		"entity_id":   sessionId.String(),
	})
}

func (p *BusPublisher) PublishTaskCompleted(ctx context.Context, userId, taskId uuid.UUID, description string) {
	p.publish(ctx, TaskCompleted, map[string]interface{}{
		"user_id":     userId.String(),
		"task_id":     taskId.String(),
		"description": description,
		"entity_type": "task",
		"entity_id":   taskId.String(),
	})
}

func (p *BusPublisher) PublishChapterCompleted(ctx context.Context, userId, chapterId, subjectId uuid.UUID, name string) {
	p.publish(ctx, ChapterCompleted, map[string]interface{}{
		"user_id":     userId.String(),
		"chapter_id":  chapterId.String(),
		"subject_id":  subjectId.String(),
		"name":        name,
		"entity_type": "chapter",
		"entity_id":   chapterId.String(),
	})
}

func (p *BusPublisher) PublishUserRegistered(ctx context.Context, userId uuid.UUID, email, fullName, source string) {
	p.publish(ctx, UserRegistered, map[string]interface{}{
		"user_id":   userId.String(),
		"email":     email,
		"full_name": fullName,
		"source":    source,
	})
}
