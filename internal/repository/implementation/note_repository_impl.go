package implementation

import (
	"context"
	"errors"

	"exam-prep-be/internal/entity"
	"exam-prep-be/internal/mapper"
	"exam-prep-be/internal/model"
	"exam-prep-be/internal/repository/contract"
	"exam-prep-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) Upsert(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "subject_id"}, {Name: "paper_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}

	// On conflict the generated id is discarded, so read the stored row back.
	var stored model.Note
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND subject_id = ? AND paper_type = ?", m.UserId, m.SubjectId, m.PaperType).
		First(&stored).Error
	if err != nil {
		return err
	}
	*note = *r.mapper.ToEntity(&stored)
	return nil
}

func (r *NoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	var m model.Note
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var models []*model.Note
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
