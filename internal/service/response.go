package service

import (
	"exam-prep-be/internal/dto"
	"exam-prep-be/internal/entity"
	"exam-prep-be/internal/mapper"
	"exam-prep-be/pkg/stats"

	"github.com/google/uuid"
)

var (
	chapterMapper = mapper.NewChapterMapper()
	sessionMapper = mapper.NewStudySessionMapper()
	taskMapper    = mapper.NewTaskMapper()
)

func toChapterResponse(c *entity.Chapter) dto.ChapterResponse {
	return dto.ChapterResponse{
		Id:          c.Id,
		SubjectId:   c.SubjectId,
		Name:        c.Name,
		PaperType:   string(c.PaperType),
		IsCompleted: c.IsCompleted,
		WeakTopic:   c.WeakTopic,
	}
}

func toChapterResponses(chapters []*entity.Chapter) []dto.ChapterResponse {
	res := make([]dto.ChapterResponse, 0, len(chapters))
	for _, c := range chapters {
		res = append(res, toChapterResponse(c))
	}
	return res
}

func toTaskResponse(t *entity.Task) dto.TaskResponse {
	return dto.TaskResponse{
		Id:          t.Id,
		SubjectId:   t.SubjectId,
		ChapterId:   t.ChapterId,
		Description: t.Description,
		Date:        t.Date.String(),
		IsCompleted: t.IsCompleted,
	}
}

func toTaskResponses(tasks []*entity.Task) []dto.TaskResponse {
	res := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		res = append(res, toTaskResponse(t))
	}
	return res
}

const unknownSubject = "Unknown Subject"

func toSessionResponse(s *entity.StudySession, names map[uuid.UUID]string) dto.SessionResponse {
	name, ok := names[s.SubjectId]
	if !ok {
		name = unknownSubject
	}
	return dto.SessionResponse{
		Id:          s.Id,
		SubjectId:   s.SubjectId,
		SubjectName: name,
		Date:        s.Date.String(),
		Duration:    s.Duration,
		Formatted:   stats.FormatHoursMinutes(s.Duration),
		CreatedAt:   s.CreatedAt,
	}
}

func papersOf(s *entity.Subject) []string {
	papers := make([]string, 0, len(s.Papers))
	for _, p := range s.Papers {
		papers = append(papers, string(p))
	}
	return papers
}

// subjectProgress measures a subject's chapters against its declared total.
func subjectProgress(s *entity.Subject, chapters []*entity.Chapter) stats.ProgressResult {
	return stats.Progress(chapterMapper.ToStats(chapters), s.TotalChapters)
}

func toSubjectResponse(s *entity.Subject, chapters []*entity.Chapter) dto.SubjectResponse {
	return dto.SubjectResponse{
		Id:            s.Id,
		Name:          s.Name,
		Papers:        papersOf(s),
		TotalChapters: s.TotalChapters,
		Progress:      subjectProgress(s, chapters),
	}
}

func chaptersBySubject(chapters []*entity.Chapter) map[uuid.UUID][]*entity.Chapter {
	grouped := make(map[uuid.UUID][]*entity.Chapter)
	for _, c := range chapters {
		grouped[c.SubjectId] = append(grouped[c.SubjectId], c)
	}
	return grouped
}

func subjectNames(subjects []*entity.Subject) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(subjects))
	for _, s := range subjects {
		names[s.Id] = s.Name
	}
	return names
}
