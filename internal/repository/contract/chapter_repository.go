package contract

import (
	"context"

	"exam-prep-be/internal/entity"
	"exam-prep-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChapterRepository interface {
	Create(ctx context.Context, chapter *entity.Chapter) error
	Update(ctx context.Context, chapter *entity.Chapter) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chapter, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chapter, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
