package service

import (
	"context"

	"exam-prep-be/internal/dto"
	"exam-prep-be/internal/entity"
	"exam-prep-be/internal/events"
	"exam-prep-be/internal/repository/scope"
	"exam-prep-be/internal/repository/specification"
	"exam-prep-be/internal/repository/unitofwork"
	"exam-prep-be/pkg/stats"

	"github.com/google/uuid"
)

const (
	SourceManual = "manual"
	SourceFocus  = "focus"
)

type ISessionService interface {
	ListSessions(ctx context.Context, userId uuid.UUID) ([]dto.SessionResponse, error)
	RecordSession(ctx context.Context, userId uuid.UUID, req *dto.RecordSessionRequest) (*dto.SessionResponse, error)
	// Record stores a finished session for subjectId on day. source is "manual" or "focus".
	Record(ctx context.Context, userId, subjectId uuid.UUID, minutes int, day stats.Day, source string) (*dto.SessionResponse, error)
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher
	clock      Clock
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, publisher events.Publisher, clock Clock) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

func (s *sessionService) ListSessions(ctx context.Context, userId uuid.UUID) ([]dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	owner := specification.UserOwnedBy{UserID: userId}

	sessions, err := uow.StudySessionRepository().FindAll(ctx, owner, specification.Scoped(scope.OrderByDateDesc))
	if err != nil {
		return nil, &dto.FetchFailureError{Resource: "study sessions", Err: err}
	}
	subjects, err := uow.SubjectRepository().FindAll(ctx, owner)
	if err != nil {
		return nil, &dto.FetchFailureError{Resource: "subjects", Err: err}
	}

	names := subjectNames(subjects)
	res := make([]dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		res = append(res, toSessionResponse(session, names))
	}
	return res, nil
}

func (s *sessionService) RecordSession(ctx context.Context, userId uuid.UUID, req *dto.RecordSessionRequest) (*dto.SessionResponse, error) {
	subjectId, err := uuid.Parse(req.SubjectId)
	if err != nil {
		return nil, dto.NewValidationError("subject_id", "must be a valid id")
	}
	if req.Duration < 0 {
		return nil, dto.NewValidationError("duration", "must be at least 0")
	}
	day, err := s.clock.dayOrToday(req.Date)
	if err != nil {
		return nil, dto.NewValidationError("date", "must be a date in 2006-01-02 format")
	}
	return s.Record(ctx, userId, subjectId, req.Duration, day, SourceManual)
}

func (s *sessionService) Record(ctx context.Context, userId, subjectId uuid.UUID, minutes int, day stats.Day, source string) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subject, err := uow.SubjectRepository().FindOne(ctx,
		specification.ByID{ID: subjectId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, &dto.NotFoundError{Resource: "subject"}
	}

	session := &entity.StudySession{
		UserId:    userId,
		SubjectId: subjectId,
		Date:      day,
		Duration:  minutes,
	}
	if err := uow.StudySessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	s.publisher.PublishSessionRecorded(ctx, userId, session.Id, subjectId, minutes, source)

	res := toSessionResponse(session, map[uuid.UUID]string{subject.Id: subject.Name})
	return &res, nil
}
