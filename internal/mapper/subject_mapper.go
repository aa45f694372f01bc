package mapper

import (
	"exam-prep-be/internal/entity"
	"exam-prep-be/internal/model"

	"gorm.io/datatypes"
)

type SubjectMapper struct{}

func NewSubjectMapper() *SubjectMapper {
	return &SubjectMapper{}
}

func (m *SubjectMapper) ToEntity(s *model.Subject) *entity.Subject {
	if s == nil {
		return nil
	}
	papers := make([]entity.PaperType, len(s.Papers))
	for i, p := range s.Papers {
		papers[i] = entity.PaperType(p)
	}
	return &entity.Subject{
		Id:            s.Id,
		UserId:        s.UserId,
		Name:          s.Name,
		Papers:        papers,
		TotalChapters: s.TotalChapters,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (m *SubjectMapper) ToModel(s *entity.Subject) *model.Subject {
	if s == nil {
		return nil
	}
	papers := make([]string, len(s.Papers))
	for i, p := range s.Papers {
		papers[i] = string(p)
	}
	return &model.Subject{
		Id:            s.Id,
		UserId:        s.UserId,
		Name:          s.Name,
		Papers:        datatypes.NewJSONSlice(papers),
		TotalChapters: s.TotalChapters,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (m *SubjectMapper) ToEntities(subjects []*model.Subject) []*entity.Subject {
	entities := make([]*entity.Subject, len(subjects))
	for i, s := range subjects {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

func (m *SubjectMapper) ToModels(subjects []*entity.Subject) []*model.Subject {
	models := make([]*model.Subject, len(subjects))
	for i, s := range subjects {
		models[i] = m.ToModel(s)
	}
	return models
}
