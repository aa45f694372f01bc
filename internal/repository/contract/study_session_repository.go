package contract

import (
	"context"

	"exam-prep-be/internal/entity"
	"exam-prep-be/internal/repository/specification"
)

// StudySessionRepository is append-only: sessions are recorded, never edited.
type StudySessionRepository interface {
	Create(ctx context.Context, session *entity.StudySession) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StudySession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
