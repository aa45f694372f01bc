package service

import (
	"context"

	"exam-prep-be/internal/dto"
	"exam-prep-be/internal/entity"
	"exam-prep-be/internal/events"
	"exam-prep-be/internal/repository/specification"
	"exam-prep-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISubjectService interface {
	ListSubjects(ctx context.Context, userId uuid.UUID) ([]dto.SubjectResponse, error)
	GetSpace(ctx context.Context, userId, subjectId uuid.UUID, paper string) (*dto.SubjectSpaceResponse, error)
	AddChapter(ctx context.Context, userId, subjectId uuid.UUID, req *dto.CreateChapterRequest) (*dto.ChapterResponse, error)
	UpdateChapter(ctx context.Context, userId, chapterId uuid.UUID, req *dto.UpdateChapterRequest) (*dto.ChapterResponse, error)
	DeleteChapter(ctx context.Context, userId, chapterId uuid.UUID) error
	ToggleChapterComplete(ctx context.Context, userId, chapterId uuid.UUID) (*dto.ChapterResponse, error)
	ToggleWeakTopic(ctx context.Context, userId, chapterId uuid.UUID) (*dto.ChapterResponse, error)
	UpsertNote(ctx context.Context, userId, subjectId uuid.UUID, paper string, req *dto.UpsertNoteRequest) (*dto.NoteResponse, error)
}

type subjectService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher
}

func NewSubjectService(uowFactory unitofwork.RepositoryFactory, publisher events.Publisher) ISubjectService {
	return &subjectService{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (s *subjectService) ListSubjects(ctx context.Context, userId uuid.UUID) ([]dto.SubjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	owner := specification.UserOwnedBy{UserID: userId}

	subjects, err := uow.SubjectRepository().FindAll(ctx, owner, specification.OrderBy{Field: "created_at"})
	if err != nil {
		return nil, &dto.FetchFailureError{Resource: "subjects", Err: err}
	}
	chapters, err := uow.ChapterRepository().FindAll(ctx, owner)
	if err != nil {
		return nil, &dto.FetchFailureError{Resource: "chapters", Err: err}
	}

	grouped := chaptersBySubject(chapters)
	res := make([]dto.SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		res = append(res, toSubjectResponse(subject, grouped[subject.Id]))
	}
	return res, nil
}

func (s *subjectService) findSubject(ctx context.Context, uow unitofwork.UnitOfWork, userId, subjectId uuid.UUID) (*entity.Subject, error) {
	subject, err := uow.SubjectRepository().FindOne(ctx,
		specification.ByID{ID: subjectId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, &dto.NotFoundError{Resource: "subject"}
	}
	return subject, nil
}

func (s *subjectService) findChapter(ctx context.Context, uow unitofwork.UnitOfWork, userId, chapterId uuid.UUID) (*entity.Chapter, error) {
	chapter, err := uow.ChapterRepository().FindOne(ctx,
		specification.ByID{ID: chapterId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if chapter == nil {
		return nil, &dto.NotFoundError{Resource: "chapter"}
	}
	return chapter, nil
}

// paperFor resolves the requested paper against the subject's papers.
// An empty request selects the subject's first paper.
func paperFor(subject *entity.Subject, requested string) (entity.PaperType, error) {
	if requested == "" {
		return subject.DefaultPaper(), nil
	}
	paper, err := entity.ParsePaperType(requested)
	if err != nil || !subject.HasPaper(paper) {
		return "", dto.NewValidationError("paper_type", "is not a paper of "+subject.Name)
	}
	return paper, nil
}

func (s *subjectService) GetSpace(ctx context.Context, userId, subjectId uuid.UUID, paper string) (*dto.SubjectSpaceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subject, err := s.findSubject(ctx, uow, userId, subjectId)
	if err != nil {
		return nil, err
	}
	selected, err := paperFor(subject, paper)
	if err != nil {
		return nil, err
	}

	all, err := uow.ChapterRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.BySubjectID{SubjectID: subjectId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, &dto.FetchFailureError{Resource: "chapters", Err: err}
	}

	onPaper := make([]*entity.Chapter, 0, len(all))
	weak := make([]*entity.Chapter, 0)
	for _, c := range all {
		if c.PaperType != selected {
			continue
		}
		onPaper = append(onPaper, c)
		if c.WeakTopic {
			weak = append(weak, c)
		}
	}

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.BySubjectID{SubjectID: subjectId},
		specification.ByPaperType{PaperType: string(selected)},
	)
	if err != nil {
		return nil, &dto.FetchFailureError{Resource: "notes", Err: err}
	}
	content := ""
	if note != nil {
		content = note.Content
	}

	return &dto.SubjectSpaceResponse{
		Subject:    toSubjectResponse(subject, all),
		Paper:      string(selected),
		Chapters:   toChapterResponses(onPaper),
		WeakTopics: toChapterResponses(weak),
		Note:       content,
	}, nil
}

// AddChapter creates the chapter and grows the subject's declared total with it.
func (s *subjectService) AddChapter(ctx context.Context, userId, subjectId uuid.UUID, req *dto.CreateChapterRequest) (*dto.ChapterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subject, err := s.findSubject(ctx, uow, userId, subjectId)
	if err != nil {
		return nil, err
	}
	paper, err := paperFor(subject, req.PaperType)
	if err != nil {
		return nil, err
	}

	chapter := &entity.Chapter{
		UserId:    userId,
		SubjectId: subjectId,
		Name:      req.Name,
		PaperType: paper,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChapterRepository().Create(ctx, chapter); err != nil {
		return nil, err
	}
	subject.TotalChapters++
	if err := uow.SubjectRepository().Update(ctx, subject); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	res := toChapterResponse(chapter)
	return &res, nil
}

func (s *subjectService) UpdateChapter(ctx context.Context, userId, chapterId uuid.UUID, req *dto.UpdateChapterRequest) (*dto.ChapterResponse, error) {
	return s.mutateChapter(ctx, userId, chapterId, func(c *entity.Chapter) { c.Name = req.Name })
}

func (s *subjectService) DeleteChapter(ctx context.Context, userId, chapterId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chapter, err := s.findChapter(ctx, uow, userId, chapterId)
	if err != nil {
		return err
	}
	subject, err := s.findSubject(ctx, uow, userId, chapter.SubjectId)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChapterRepository().Delete(ctx, chapter.Id); err != nil {
		return err
	}
	if subject.TotalChapters > 0 {
		subject.TotalChapters--
		if err := uow.SubjectRepository().Update(ctx, subject); err != nil {
			return err
		}
	}
	return uow.Commit()
}

func (s *subjectService) ToggleChapterComplete(ctx context.Context, userId, chapterId uuid.UUID) (*dto.ChapterResponse, error) {
	res, err := s.mutateChapter(ctx, userId, chapterId, func(c *entity.Chapter) { c.IsCompleted = !c.IsCompleted })
	if err != nil {
		return nil, err
	}
	if res.IsCompleted {
		s.publisher.PublishChapterCompleted(ctx, userId, res.Id, res.SubjectId, res.Name)
	}
	return res, nil
}

func (s *subjectService) ToggleWeakTopic(ctx context.Context, userId, chapterId uuid.UUID) (*dto.ChapterResponse, error) {
	return s.mutateChapter(ctx, userId, chapterId, func(c *entity.Chapter) { c.WeakTopic = !c.WeakTopic })
}

func (s *subjectService) mutateChapter(ctx context.Context, userId, chapterId uuid.UUID, fn func(*entity.Chapter)) (*dto.ChapterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chapter, err := s.findChapter(ctx, uow, userId, chapterId)
	if err != nil {
		return nil, err
	}
	fn(chapter)
	if err := uow.ChapterRepository().Update(ctx, chapter); err != nil {
		return nil, err
	}

	res := toChapterResponse(chapter)
	return &res, nil
}

func (s *subjectService) UpsertNote(ctx context.Context, userId, subjectId uuid.UUID, paper string, req *dto.UpsertNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subject, err := s.findSubject(ctx, uow, userId, subjectId)
	if err != nil {
		return nil, err
	}
	selected, err := paperFor(subject, paper)
	if err != nil {
		return nil, err
	}

	note := &entity.Note{
		UserId:    userId,
		SubjectId: subjectId,
		PaperType: selected,
		Content:   req.Content,
	}
	if err := uow.NoteRepository().Upsert(ctx, note); err != nil {
		return nil, err
	}

	return &dto.NoteResponse{
		SubjectId: note.SubjectId,
		PaperType: string(note.PaperType),
		Content:   note.Content,
	}, nil
}
