package unitofwork

import (
	"context"

	"exam-prep-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SubjectRepository() contract.SubjectRepository
	ChapterRepository() contract.ChapterRepository
	StudySessionRepository() contract.StudySessionRepository
	TaskRepository() contract.TaskRepository
	NoteRepository() contract.NoteRepository
}
