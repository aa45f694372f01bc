package service

import (
	"context"
	"errors"

	"exam-prep-be/internal/dto"
	"exam-prep-be/internal/pkg/logger"
	"exam-prep-be/internal/repository/memory"
	"exam-prep-be/internal/repository/specification"
	"exam-prep-be/internal/repository/unitofwork"
	"exam-prep-be/pkg/focus"
	"exam-prep-be/pkg/stats"

	"github.com/google/uuid"
)

type IFocusService interface {
	Snapshot(ctx context.Context, userId uuid.UUID) dto.FocusResponse
	SelectMode(ctx context.Context, userId uuid.UUID, req *dto.FocusModeRequest) (*dto.FocusResponse, error)
	Toggle(ctx context.Context, userId uuid.UUID) (*dto.FocusResponse, error)
	Reset(ctx context.Context, userId uuid.UUID) (*dto.FocusResponse, error)
	SelectSubject(ctx context.Context, userId uuid.UUID, req *dto.FocusSubjectRequest) (*dto.FocusResponse, error)
}

// focusService hosts one timer per user. Every change is pushed to the user's
// sockets; an expiry with a subject selected is handed to the session recorder.
type focusService struct {
	runners    *memory.FocusRepository
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	notifier   Notifier
	clock      Clock
	logger     logger.ILogger
	runnerOpts []focus.Option
}

func NewFocusService(
	runners *memory.FocusRepository,
	uowFactory unitofwork.RepositoryFactory,
	publisher IPublisherService,
	notifier Notifier,
	clock Clock,
	log logger.ILogger,
	runnerOpts ...focus.Option,
) IFocusService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &focusService{
		runners:    runners,
		uowFactory: uowFactory,
		publisher:  publisher,
		notifier:   notifier,
		clock:      clock,
		logger:     log,
		runnerOpts: runnerOpts,
	}
}

func ToFocusResponse(s focus.Snapshot) dto.FocusResponse {
	return dto.FocusResponse{
		Snapshot:  s,
		Clock:     stats.FormatClock(s.RemainingSeconds),
		ModeLabel: s.Mode.Label(),
	}
}

func (s *focusService) newRunner(userId uuid.UUID) func() *focus.Runner {
	return func() *focus.Runner {
		var runner *focus.Runner
		opts := append([]focus.Option(nil), s.runnerOpts...)
		opts = append(opts,
			focus.OnChange(func(snap focus.Snapshot) {
				if snap.State == focus.StateRunning {
					s.runners.Touch(userId, runner)
				}
				s.notifier.Send(userId, MessageFocus, ToFocusResponse(snap))
			}),
			focus.OnComplete(func(c focus.Completion) {
				s.completed(userId, c)
			}),
		)
		runner = focus.NewRunner(opts...)
		return runner
	}
}

// completed runs on the runner's tick goroutine, so it must not block on the request context.
func (s *focusService) completed(userId uuid.UUID, c focus.Completion) {
	s.notifier.Send(userId, MessageFocusCompleted, c)

	if c.Subject == nil {
		s.logger.Info("FOCUS", "Session expired without a subject, nothing recorded", map[string]interface{}{"user_id": userId})
		return
	}
	subjectId, err := uuid.Parse(c.Subject.ID)
	if err != nil {
		s.logger.Warn("FOCUS", "Completed session has an invalid subject id", map[string]interface{}{"subject_id": c.Subject.ID})
		return
	}

	err = s.publisher.Publish(context.Background(), dto.FocusCompletedMessage{
		UserId:    userId,
		SubjectId: subjectId,
		Mode:      string(c.Mode),
		Minutes:   c.Minutes,
		Date:      s.clock.Today().String(),
	})
	if err != nil {
		s.logger.Error("FOCUS", "Failed to publish completed session", map[string]interface{}{"error": err.Error(), "user_id": userId})
	}
}

// apply runs cmd against the user's runner. A runner closed by idle eviction
// between lookup and use is replaced once.
func (s *focusService) apply(userId uuid.UUID, cmd func(*focus.Runner) (focus.Snapshot, error)) (*dto.FocusResponse, error) {
	snap, err := cmd(s.runners.GetOrCreate(userId, s.newRunner(userId)))
	if errors.Is(err, focus.ErrClosed) {
		s.runners.Delete(userId)
		snap, err = cmd(s.runners.GetOrCreate(userId, s.newRunner(userId)))
	}
	if errors.Is(err, focus.ErrUnknownMode) {
		return nil, dto.NewValidationError("mode", "must be one of pomodoro long custom")
	}
	if err != nil {
		return nil, err
	}

	res := ToFocusResponse(snap)
	return &res, nil
}

// Snapshot never fails: a fresh runner has nothing that can be rejected.
func (s *focusService) Snapshot(ctx context.Context, userId uuid.UUID) dto.FocusResponse {
	res, err := s.apply(userId, (*focus.Runner).Current)
	if err != nil {
		s.logger.Warn("FOCUS", "Snapshot fell back to an idle timer", map[string]interface{}{"error": err.Error(), "user_id": userId})
		return ToFocusResponse(focus.NewTimer().Snapshot())
	}
	return *res
}

func (s *focusService) SelectMode(ctx context.Context, userId uuid.UUID, req *dto.FocusModeRequest) (*dto.FocusResponse, error) {
	mode, err := focus.ParseMode(req.Mode)
	if err != nil {
		return nil, dto.NewValidationError("mode", "must be one of pomodoro long custom")
	}
	return s.apply(userId, func(r *focus.Runner) (focus.Snapshot, error) { return r.SelectMode(mode) })
}

func (s *focusService) Toggle(ctx context.Context, userId uuid.UUID) (*dto.FocusResponse, error) {
	return s.apply(userId, (*focus.Runner).Toggle)
}

func (s *focusService) Reset(ctx context.Context, userId uuid.UUID) (*dto.FocusResponse, error) {
	return s.apply(userId, (*focus.Runner).Reset)
}

// SelectSubject only relabels the session; the countdown keeps going.
func (s *focusService) SelectSubject(ctx context.Context, userId uuid.UUID, req *dto.FocusSubjectRequest) (*dto.FocusResponse, error) {
	var subject *focus.Subject
	if req.SubjectId != "" {
		subjectId, err := uuid.Parse(req.SubjectId)
		if err != nil {
			return nil, dto.NewValidationError("subject_id", "must be a valid id")
		}

		uow := s.uowFactory.NewUnitOfWork(ctx)
		found, err := uow.SubjectRepository().FindOne(ctx,
			specification.ByID{ID: subjectId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if found == nil {
			return nil, &dto.NotFoundError{Resource: "subject"}
		}
		subject = &focus.Subject{ID: found.Id.String(), Name: found.Name}
	}

	return s.apply(userId, func(r *focus.Runner) (focus.Snapshot, error) { return r.SelectSubject(subject) })
}
