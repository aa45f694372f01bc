package contract

import (
	"context"

	"exam-prep-be/internal/entity"
	"exam-prep-be/internal/repository/specification"
)

type SubjectRepository interface {
	Create(ctx context.Context, subject *entity.Subject) error
	CreateBatch(ctx context.Context, subjects []*entity.Subject) error
	Update(ctx context.Context, subject *entity.Subject) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subject, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subject, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
