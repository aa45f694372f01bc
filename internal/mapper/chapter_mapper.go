package mapper

import (
	"exam-prep-be/internal/entity"
	"exam-prep-be/internal/model"
	"exam-prep-be/pkg/stats"
)

type ChapterMapper struct{}

func NewChapterMapper() *ChapterMapper {
	return &ChapterMapper{}
}

func (m *ChapterMapper) ToEntity(c *model.Chapter) *entity.Chapter {
	if c == nil {
		return nil
	}
	return &entity.Chapter{
		Id:          c.Id,
		UserId:      c.UserId,
		SubjectId:   c.SubjectId,
		Name:        c.Name,
		PaperType:   entity.PaperType(c.PaperType),
		IsCompleted: c.IsCompleted,
		WeakTopic:   c.WeakTopic,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (m *ChapterMapper) ToModel(c *entity.Chapter) *model.Chapter {
	if c == nil {
		return nil
	}
	return &model.Chapter{
		Id:          c.Id,
		UserId:      c.UserId,
		SubjectId:   c.SubjectId,
		Name:        c.Name,
		PaperType:   string(c.PaperType),
		IsCompleted: c.IsCompleted,
		WeakTopic:   c.WeakTopic,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (m *ChapterMapper) ToEntities(chapters []*model.Chapter) []*entity.Chapter {
	entities := make([]*entity.Chapter, len(chapters))
	for i, c := range chapters {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *ChapterMapper) ToStats(chapters []*entity.Chapter) []stats.Chapter {
	out := make([]stats.Chapter, len(chapters))
	for i, c := range chapters {
		out[i] = stats.Chapter{Completed: c.IsCompleted}
	}
	return out
}
