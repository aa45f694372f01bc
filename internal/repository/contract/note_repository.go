package contract

import (
	"context"

	"exam-prep-be/internal/entity"
	"exam-prep-be/internal/repository/specification"
)

type NoteRepository interface {
	// Upsert writes the content for the note's (user, subject, paper) key.
	Upsert(ctx context.Context, note *entity.Note) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
}
