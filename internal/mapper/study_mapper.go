package mapper

import (
	"time"

	"exam-prep-be/internal/entity"
	"exam-prep-be/internal/model"
	"exam-prep-be/pkg/stats"

	"gorm.io/datatypes"
)

func dayFromDate(d datatypes.Date) stats.Day {
	return stats.DayOf(time.Time(d))
}

func dateFromDay(d stats.Day) datatypes.Date {
	return datatypes.Date(d.Time())
}

type StudySessionMapper struct{}

func NewStudySessionMapper() *StudySessionMapper {
	return &StudySessionMapper{}
}

func (m *StudySessionMapper) ToEntity(s *model.StudySession) *entity.StudySession {
	if s == nil {
		return nil
	}
	return &entity.StudySession{
		Id:        s.Id,
		UserId:    s.UserId,
		SubjectId: s.SubjectId,
		Date:      dayFromDate(s.Date),
		Duration:  s.Duration,
		CreatedAt: s.CreatedAt,
	}
}

func (m *StudySessionMapper) ToModel(s *entity.StudySession) *model.StudySession {
	if s == nil {
		return nil
	}
	return &model.StudySession{
		Id:        s.Id,
		UserId:    s.UserId,
		SubjectId: s.SubjectId,
		Date:      dateFromDay(s.Date),
		Duration:  s.Duration,
		CreatedAt: s.CreatedAt,
	}
}

func (m *StudySessionMapper) ToEntities(sessions []*model.StudySession) []*entity.StudySession {
	entities := make([]*entity.StudySession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

// ToStats projects sessions onto the calculator input.
func (m *StudySessionMapper) ToStats(sessions []*entity.StudySession) []stats.Session {
	out := make([]stats.Session, len(sessions))
	for i, s := range sessions {
		out[i] = stats.Session{Date: s.Date, Minutes: s.Duration}
	}
	return out
}

type TaskMapper struct{}

func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

func (m *TaskMapper) ToEntity(t *model.DailyTask) *entity.Task {
	if t == nil {
		return nil
	}
	return &entity.Task{
		Id:          t.Id,
		UserId:      t.UserId,
		SubjectId:   t.SubjectId,
		ChapterId:   t.ChapterId,
		Description: t.Description,
		Date:        dayFromDate(t.Date),
		IsCompleted: t.IsCompleted,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (m *TaskMapper) ToModel(t *entity.Task) *model.DailyTask {
	if t == nil {
		return nil
	}
	return &model.DailyTask{
		Id:          t.Id,
		UserId:      t.UserId,
		SubjectId:   t.SubjectId,
		ChapterId:   t.ChapterId,
		Description: t.Description,
		Date:        dateFromDay(t.Date),
		IsCompleted: t.IsCompleted,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (m *TaskMapper) ToEntities(tasks []*model.DailyTask) []*entity.Task {
	entities := make([]*entity.Task, len(tasks))
	for i, t := range tasks {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

func (m *TaskMapper) ToStats(tasks []*entity.Task) []stats.Task {
	out := make([]stats.Task, len(tasks))
	for i, t := range tasks {
		out[i] = stats.Task{Date: t.Date, Completed: t.IsCompleted}
	}
	return out
}

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}
	return &entity.Note{
		Id:        n.Id,
		UserId:    n.UserId,
		SubjectId: n.SubjectId,
		PaperType: entity.PaperType(n.PaperType),
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}
	return &model.Note{
		Id:        n.Id,
		UserId:    n.UserId,
		SubjectId: n.SubjectId,
		PaperType: string(n.PaperType),
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
