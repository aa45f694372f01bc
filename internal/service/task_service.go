package service

import (
	"context"

	"exam-prep-be/internal/dto"
	"exam-prep-be/internal/entity"
	"exam-prep-be/internal/events"
	"exam-prep-be/internal/repository/scope"
	"exam-prep-be/internal/repository/specification"
	"exam-prep-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ITaskService interface {
	// ListTasks returns the tasks of one day; an empty date means today.
	ListTasks(ctx context.Context, userId uuid.UUID, date string) ([]dto.TaskResponse, error)
	CreateTask(ctx context.Context, userId uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	UpdateTask(ctx context.Context, userId, taskId uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	ToggleTask(ctx context.Context, userId, taskId uuid.UUID) (*dto.TaskResponse, error)
	DeleteTask(ctx context.Context, userId, taskId uuid.UUID) error
}

type taskService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher
	clock      Clock
}

func NewTaskService(uowFactory unitofwork.RepositoryFactory, publisher events.Publisher, clock Clock) ITaskService {
	return &taskService{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

func (s *taskService) ListTasks(ctx context.Context, userId uuid.UUID, date string) ([]dto.TaskResponse, error) {
	day, err := s.clock.dayOrToday(date)
	if err != nil {
		return nil, dto.NewValidationError("date", "must be a date in 2006-01-02 format")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	tasks, err := uow.TaskRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OnDate{Day: day},
		specification.Scoped(scope.OrderByCreatedAsc),
	)
	if err != nil {
		return nil, &dto.FetchFailureError{Resource: "tasks", Err: err}
	}
	return toTaskResponses(tasks), nil
}

// checkRefs verifies the task's subject and optional chapter belong to the user.
func checkRefs(ctx context.Context, uow unitofwork.UnitOfWork, userId, subjectId uuid.UUID, chapterId *uuid.UUID) error {
	owner := specification.UserOwnedBy{UserID: userId}

	subject, err := uow.SubjectRepository().FindOne(ctx, specification.ByID{ID: subjectId}, owner)
	if err != nil {
		return err
	}
	if subject == nil {
		return &dto.NotFoundError{Resource: "subject"}
	}
	if chapterId == nil {
		return nil
	}

	chapter, err := uow.ChapterRepository().FindOne(ctx, specification.ByID{ID: *chapterId}, owner)
	if err != nil {
		return err
	}
	if chapter == nil || chapter.SubjectId != subjectId {
		return &dto.NotFoundError{Resource: "chapter"}
	}
	return nil
}

func parseOptionalID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

func (s *taskService) CreateTask(ctx context.Context, userId uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	subjectId, err := uuid.Parse(req.SubjectId)
	if err != nil {
		return nil, dto.NewValidationError("subject_id", "must be a valid id")
	}
	day, err := s.clock.dayOrToday(req.Date)
	if err != nil {
		return nil, dto.NewValidationError("date", "must be a date in 2006-01-02 format")
	}
	chapterId := parseOptionalID(req.ChapterId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := checkRefs(ctx, uow, userId, subjectId, chapterId); err != nil {
		return nil, err
	}

	task := &entity.Task{
		UserId:      userId,
		SubjectId:   subjectId,
		ChapterId:   chapterId,
		Description: req.Description,
		Date:        day,
	}
	if err := uow.TaskRepository().Create(ctx, task); err != nil {
		return nil, err
	}

	res := toTaskResponse(task)
	return &res, nil
}

func (s *taskService) findTask(ctx context.Context, uow unitofwork.UnitOfWork, userId, taskId uuid.UUID) (*entity.Task, error) {
	task, err := uow.TaskRepository().FindOne(ctx,
		specification.ByID{ID: taskId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, &dto.NotFoundError{Resource: "task"}
	}
	return task, nil
}

func (s *taskService) UpdateTask(ctx context.Context, userId, taskId uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	task, err := s.findTask(ctx, uow, userId, taskId)
	if err != nil {
		return nil, err
	}

	if req.Date != "" {
		day, err := s.clock.dayOrToday(req.Date)
		if err != nil {
			return nil, dto.NewValidationError("date", "must be a date in 2006-01-02 format")
		}
		task.Date = day
	}
	chapterId := parseOptionalID(req.ChapterId)
	if err := checkRefs(ctx, uow, userId, task.SubjectId, chapterId); err != nil {
		return nil, err
	}
	task.ChapterId = chapterId
	task.Description = req.Description

	if err := uow.TaskRepository().Update(ctx, task); err != nil {
		return nil, err
	}
	res := toTaskResponse(task)
	return &res, nil
}

func (s *taskService) ToggleTask(ctx context.Context, userId, taskId uuid.UUID) (*dto.TaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	task, err := s.findTask(ctx, uow, userId, taskId)
	if err != nil {
		return nil, err
	}
	task.IsCompleted = !task.IsCompleted
	if err := uow.TaskRepository().Update(ctx, task); err != nil {
		return nil, err
	}

	if task.IsCompleted {
		s.publisher.PublishTaskCompleted(ctx, userId, task.Id, task.Description)
	}
	res := toTaskResponse(task)
	return &res, nil
}

func (s *taskService) DeleteTask(ctx context.Context, userId, taskId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	task, err := s.findTask(ctx, uow, userId, taskId)
	if err != nil {
		return err
	}
	return uow.TaskRepository().Delete(ctx, task.Id)
}
