package service

import (
	"context"
	"fmt"
	"sort"

	"exam-prep-be/internal/dto"
	"exam-prep-be/internal/entity"
	"exam-prep-be/internal/pkg/mailer"
	"exam-prep-be/internal/repository/scope"
	"exam-prep-be/internal/repository/specification"
	"exam-prep-be/internal/repository/unitofwork"
	"exam-prep-be/pkg/stats"

	"github.com/google/uuid"
)

const (
	trackerChapterPreview = 4
	recentSessionLimit    = 5
	upcomingTaskLimit     = 5
	prioritySubjectLimit  = 3
)

// IOverviewService derives the dashboard, tracker and planner views from a user's study data.
type IOverviewService interface {
	Dashboard(ctx context.Context, userId uuid.UUID) (*dto.DashboardResponse, error)
	Tracker(ctx context.Context, userId uuid.UUID) (*dto.TrackerResponse, error)
	Planner(ctx context.Context, userId uuid.UUID) (*dto.PlannerResponse, error)
	SendWeeklyReport(ctx context.Context, userId uuid.UUID) (*dto.PeriodSummary, error)
}

type overviewService struct {
	uowFactory unitofwork.RepositoryFactory
	mailer     mailer.IEmailService
	clock      Clock
	examDate   stats.Day
}

func NewOverviewService(uowFactory unitofwork.RepositoryFactory, mailer mailer.IEmailService, clock Clock, examDate stats.Day) IOverviewService {
	return &overviewService{
		uowFactory: uowFactory,
		mailer:     mailer,
		clock:      clock,
		examDate:   examDate,
	}
}

type studyData struct {
	subjects []*entity.Subject
	chapters []*entity.Chapter
	sessions []*entity.StudySession
	tasks    []*entity.Task
}

// load fetches everything the calculators need in one go. Any failure fails the whole load.
func (s *overviewService) load(ctx context.Context, userId uuid.UUID) (*studyData, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	owner := specification.UserOwnedBy{UserID: userId}
	wrap := func(err error) error {
		return &dto.FetchFailureError{Resource: "study data", Err: err}
	}

	var (
		data studyData
		err  error
	)
	if data.subjects, err = uow.SubjectRepository().FindAll(ctx, owner, specification.OrderBy{Field: "created_at"}); err != nil {
		return nil, wrap(err)
	}
	if data.chapters, err = uow.ChapterRepository().FindAll(ctx, owner, specification.OrderBy{Field: "created_at"}); err != nil {
		return nil, wrap(err)
	}
	if data.sessions, err = uow.StudySessionRepository().FindAll(ctx, owner, specification.Scoped(scope.OrderByDateDesc)); err != nil {
		return nil, wrap(err)
	}
	if data.tasks, err = uow.TaskRepository().FindAll(ctx, owner, specification.Scoped(scope.OrderByDateAsc)); err != nil {
		return nil, wrap(err)
	}
	return &data, nil
}

func (s *overviewService) countdown() stats.Remaining {
	return stats.Countdown(s.clock.midnight(s.examDate), s.clock.now())
}

func (s *overviewService) Dashboard(ctx context.Context, userId uuid.UUID) (*dto.DashboardResponse, error) {
	data, err := s.load(ctx, userId)
	if err != nil {
		return nil, err
	}
	today := s.clock.Today()
	sessions := sessionMapper.ToStats(data.sessions)
	todayTotals := stats.Aggregate(sessions, stats.Today(today))

	grouped := chaptersBySubject(data.chapters)
	progress := make([]dto.SubjectProgress, 0, len(data.subjects))
	for _, subject := range data.subjects {
		progress = append(progress, dto.SubjectProgress{
			SubjectId: subject.Id,
			Name:      subject.Name,
			Progress:  subjectProgress(subject, grouped[subject.Id]),
		})
	}

	todayTasks := make([]*entity.Task, 0)
	for _, t := range data.tasks {
		if t.Date == today {
			todayTasks = append(todayTasks, t)
		}
	}

	return &dto.DashboardResponse{
		TodayMinutes:   todayTotals.TotalMinutes,
		TodayFormatted: stats.FormatHoursMinutes(todayTotals.TotalMinutes),
		Streak:         stats.CurrentStreak(sessions),
		Countdown:      s.countdown(),
		ExamDate:       s.examDate.String(),
		Progress:       progress,
		TodayTasks:     toTaskResponses(todayTasks),
	}, nil
}

func weeklySummary(sessions []stats.Session, tasks []stats.Task, today stats.Day) dto.PeriodSummary {
	window := stats.LastDays(today, 7)
	totals := stats.Aggregate(sessions, window)
	return dto.PeriodSummary{
		TotalMinutes:   totals.TotalMinutes,
		Formatted:      stats.FormatHoursMinutes(totals.TotalMinutes),
		SessionCount:   totals.SessionCount,
		CompletedTasks: stats.CountCompletedTasks(tasks, window),
		AverageDaily:   stats.AverageDaily(totals.TotalMinutes),
	}
}

func (s *overviewService) Tracker(ctx context.Context, userId uuid.UUID) (*dto.TrackerResponse, error) {
	data, err := s.load(ctx, userId)
	if err != nil {
		return nil, err
	}
	today := s.clock.Today()
	sessions := sessionMapper.ToStats(data.sessions)
	tasks := taskMapper.ToStats(data.tasks)

	grouped := chaptersBySubject(data.chapters)
	subjects := make([]dto.TrackerSubject, 0, len(data.subjects))
	for _, subject := range data.subjects {
		chapters := grouped[subject.Id]
		preview := chapters
		if len(preview) > trackerChapterPreview {
			preview = preview[:trackerChapterPreview]
		}
		subjects = append(subjects, dto.TrackerSubject{
			SubjectProgress: dto.SubjectProgress{
				SubjectId: subject.Id,
				Name:      subject.Name,
				Progress:  subjectProgress(subject, chapters),
			},
			Chapters: toChapterResponses(preview),
		})
	}

	monthWindow := stats.LastMonths(today, 1)
	monthTotals := stats.Aggregate(sessions, monthWindow)

	names := subjectNames(data.subjects)
	recent := make([]dto.SessionResponse, 0, recentSessionLimit)
	for _, session := range data.sessions {
		if len(recent) == recentSessionLimit {
			break
		}
		recent = append(recent, toSessionResponse(session, names))
	}

	return &dto.TrackerResponse{
		Subjects: subjects,
		Weekly:   weeklySummary(sessions, tasks, today),
		Monthly: dto.PeriodSummary{
			TotalMinutes:   monthTotals.TotalMinutes,
			Formatted:      stats.FormatHoursMinutes(monthTotals.TotalMinutes),
			SessionCount:   monthTotals.SessionCount,
			CompletedTasks: stats.CountCompletedTasks(tasks, monthWindow),
			Streak:         stats.CurrentStreak(sessions),
		},
		RecentSessions: recent,
	}, nil
}

func (s *overviewService) Planner(ctx context.Context, userId uuid.UUID) (*dto.PlannerResponse, error) {
	data, err := s.load(ctx, userId)
	if err != nil {
		return nil, err
	}
	today := s.clock.Today()
	monthsLeft := stats.MonthsLeft(today, s.examDate)

	grouped := chaptersBySubject(data.chapters)
	subjects := make([]dto.PlannerSubject, 0, len(data.subjects))
	for _, subject := range data.subjects {
		remaining := subjectProgress(subject, grouped[subject.Id]).Remaining()
		subjects = append(subjects, dto.PlannerSubject{
			SubjectId:        subject.Id,
			Name:             subject.Name,
			TotalChapters:    subject.TotalChapters,
			Remaining:        remaining,
			ChaptersPerMonth: stats.PerMonth(remaining, monthsLeft),
		})
	}

	priority := append([]dto.PlannerSubject(nil), subjects...)
	sort.SliceStable(priority, func(i, j int) bool { return priority[i].Remaining > priority[j].Remaining })
	if len(priority) > prioritySubjectLimit {
		priority = priority[:prioritySubjectLimit]
	}

	upcoming := make([]*entity.Task, 0, upcomingTaskLimit)
	for _, t := range data.tasks {
		if len(upcoming) == upcomingTaskLimit {
			break
		}
		if !t.IsCompleted && !t.Date.Before(today) {
			upcoming = append(upcoming, t)
		}
	}

	return &dto.PlannerResponse{
		Countdown:        s.countdown(),
		ExamDate:         s.examDate.String(),
		MonthsLeft:       monthsLeft,
		Months:           stats.MonthLabels(today, s.examDate),
		Subjects:         subjects,
		PrioritySubjects: priority,
		UpcomingTasks:    toTaskResponses(upcoming),
	}, nil
}

// SendWeeklyReport mails the last seven days' summary to the user and returns it.
func (s *overviewService) SendWeeklyReport(ctx context.Context, userId uuid.UUID) (*dto.PeriodSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &dto.NotFoundError{Resource: "user"}
	}

	data, err := s.load(ctx, userId)
	if err != nil {
		return nil, err
	}
	today := s.clock.Today()
	sessions := sessionMapper.ToStats(data.sessions)
	summary := weeklySummary(sessions, taskMapper.ToStats(data.tasks), today)

	daysToExam := today.DaysUntil(s.examDate)
	if daysToExam < 0 {
		daysToExam = 0
	}

	err = s.mailer.SendWeeklyReport(user.Email, mailer.WeeklyReport{
		FullName:       user.FullName,
		Range:          fmt.Sprintf("%s to %s", today.AddDays(-6), today),
		TotalFormatted: summary.Formatted,
		SessionCount:   summary.SessionCount,
		CompletedTasks: summary.CompletedTasks,
		AverageDaily:   summary.AverageDaily,
		Streak:         stats.CurrentStreak(sessions),
		DaysToExam:     daysToExam,
	})
	if err != nil {
		return nil, fmt.Errorf("send weekly report: %w", err)
	}
	return &summary, nil
}
