package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"exam-prep-be/internal/dto"
	"exam-prep-be/internal/entity"
	"exam-prep-be/internal/pkg/testdb"
	"exam-prep-be/internal/repository/unitofwork"
	"exam-prep-be/pkg/stats"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type overviewFixture struct {
	*fixture
	userId  uuid.UUID
	physics *entity.Subject
	biology *entity.Subject
	mailer  *captureMailer
}

// newOverviewFixture seeds two sessions (2024-01-01 30m, 2024-01-02 45m) on Physics
// and ten Biology chapters, four of them completed.
func newOverviewFixture(t *testing.T) *overviewFixture {
	t.Helper()
	f := newFixture(t)
	userId := f.register(t, "rafi@example.com")
	of := &overviewFixture{
		fixture: f,
		userId:  userId,
		physics: f.subjectNamed(t, userId, "Physics"),
		biology: f.subjectNamed(t, userId, "Biology"),
		mailer:  &captureMailer{},
	}
	ctx := context.Background()

	sessions := NewSessionService(f.factory, f.events, fixedClock(stats.NewDay(2024, time.January, 2)))
	_, err := sessions.Record(ctx, userId, of.physics.Id, 30, stats.NewDay(2024, time.January, 1), SourceManual)
	require.NoError(t, err)
	_, err = sessions.Record(ctx, userId, of.physics.Id, 45, stats.NewDay(2024, time.January, 2), SourceManual)
	require.NoError(t, err)

	subjects := NewSubjectService(f.factory, f.events)
	for i := 0; i < 10; i++ {
		ch, err := subjects.AddChapter(ctx, userId, of.biology.Id, &dto.CreateChapterRequest{Name: fmt.Sprintf("Chapter %d", i+1), PaperType: "first"})
		require.NoError(t, err)
		if i < 4 {
			_, err = subjects.ToggleChapterComplete(ctx, userId, ch.Id)
			require.NoError(t, err)
		}
	}
	return of
}

func (of *overviewFixture) service(today, exam stats.Day) IOverviewService {
	return NewOverviewService(of.factory, of.mailer, fixedClock(today), exam)
}

func progressOf(t *testing.T, items []dto.SubjectProgress, name string) stats.ProgressResult {
	t.Helper()
	for _, p := range items {
		if p.Name == name {
			return p.Progress
		}
	}
	t.Fatalf("no progress for %s", name)
	return stats.ProgressResult{}
}

func TestDashboard(t *testing.T) {
	of := newOverviewFixture(t)
	tasks := NewTaskService(of.factory, of.events, fixedClock(stats.NewDay(2024, time.January, 2)))
	_, err := tasks.CreateTask(context.Background(), of.userId, &dto.CreateTaskRequest{SubjectId: of.physics.Id.String(), Description: "Revise waves"})
	require.NoError(t, err)

	svc := of.service(stats.NewDay(2024, time.January, 2), stats.NewDay(2024, time.January, 3))
	res, err := svc.Dashboard(context.Background(), of.userId)
	require.NoError(t, err)

	assert.Equal(t, 45, res.TodayMinutes)
	assert.Equal(t, "0h 45m", res.TodayFormatted)
	assert.Equal(t, 2, res.Streak)
	assert.Equal(t, stats.Remaining{Hours: 12}, res.Countdown)
	assert.Equal(t, "2024-01-03", res.ExamDate)
	assert.Equal(t, stats.ProgressResult{Completed: 4, Total: 10, Percent: 40}, progressOf(t, res.Progress, "Biology"))
	assert.Equal(t, stats.ProgressResult{}, progressOf(t, res.Progress, "ICT"))
	require.Len(t, res.TodayTasks, 1)
	assert.Equal(t, "Revise waves", res.TodayTasks[0].Description)
}

func TestDashboardCountdownClampsAfterExam(t *testing.T) {
	of := newOverviewFixture(t)
	svc := of.service(stats.NewDay(2024, time.January, 2), stats.NewDay(2023, time.December, 1))

	res, err := svc.Dashboard(context.Background(), of.userId)
	require.NoError(t, err)
	assert.Equal(t, stats.Remaining{}, res.Countdown)
}

func TestTracker(t *testing.T) {
	of := newOverviewFixture(t)
	ctx := context.Background()

	uow := of.factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.StudySessionRepository().Create(ctx, &entity.StudySession{
		UserId: of.userId, SubjectId: uuid.New(), Date: stats.NewDay(2023, time.December, 20), Duration: 60,
	}))

	res, err := of.service(stats.NewDay(2024, time.January, 2), stats.NewDay(2024, time.June, 15)).Tracker(ctx, of.userId)
	require.NoError(t, err)

	assert.Equal(t, 75, res.Weekly.TotalMinutes)
	assert.Equal(t, 2, res.Weekly.SessionCount)
	assert.Equal(t, 11, res.Weekly.AverageDaily)
	assert.Equal(t, 135, res.Monthly.TotalMinutes)
	assert.Equal(t, 2, res.Monthly.Streak)

	require.Len(t, res.RecentSessions, 3)
	assert.Equal(t, "Physics", res.RecentSessions[0].SubjectName)
	assert.Equal(t, "2024-01-02", res.RecentSessions[0].Date)
	assert.Equal(t, unknownSubject, res.RecentSessions[2].SubjectName)

	for _, s := range res.Subjects {
		if s.Name == "Biology" {
			assert.Len(t, s.Chapters, 4)
			assert.Equal(t, 40, s.Progress.Percent)
		}
	}
}

func TestPlanner(t *testing.T) {
	of := newOverviewFixture(t)
	ctx := context.Background()
	tasks := NewTaskService(of.factory, of.events, fixedClock(stats.NewDay(2024, time.January, 2)))
	for _, date := range []string{"2023-12-30", "2024-01-02", "2024-01-05"} {
		_, err := tasks.CreateTask(ctx, of.userId, &dto.CreateTaskRequest{SubjectId: of.biology.Id.String(), Description: "Task " + date, Date: date})
		require.NoError(t, err)
	}

	res, err := of.service(stats.NewDay(2024, time.January, 2), stats.NewDay(2024, time.June, 15)).Planner(ctx, of.userId)
	require.NoError(t, err)

	assert.Equal(t, 6, res.MonthsLeft)
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}, res.Months)
	require.NotEmpty(t, res.PrioritySubjects)
	assert.Len(t, res.PrioritySubjects, 3)
	assert.Equal(t, "Biology", res.PrioritySubjects[0].Name)
	assert.Equal(t, 6, res.PrioritySubjects[0].Remaining)
	assert.Equal(t, 1, res.PrioritySubjects[0].ChaptersPerMonth)

	require.Len(t, res.UpcomingTasks, 2)
	assert.Equal(t, "2024-01-02", res.UpcomingTasks[0].Date)
	assert.Equal(t, "2024-01-05", res.UpcomingTasks[1].Date)
}

func TestSendWeeklyReport(t *testing.T) {
	of := newOverviewFixture(t)

	summary, err := of.service(stats.NewDay(2024, time.January, 2), stats.NewDay(2024, time.January, 12)).SendWeeklyReport(context.Background(), of.userId)
	require.NoError(t, err)
	assert.Equal(t, 75, summary.TotalMinutes)

	require.Len(t, of.mailer.reports, 1)
	assert.Equal(t, "rafi@example.com", of.mailer.to)
	report := of.mailer.reports[0]
	assert.Equal(t, "1h 15m", report.TotalFormatted)
	assert.Equal(t, 10, report.DaysToExam)
	assert.Equal(t, "2023-12-27 to 2024-01-02", report.Range)
}

func TestOverviewLoadFailure(t *testing.T) {
	db := testdb.New(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	svc := NewOverviewService(unitofwork.NewRepositoryFactory(db), &captureMailer{}, fixedClock(stats.NewDay(2024, time.January, 2)), stats.NewDay(2024, time.June, 1))
	_, err = svc.Dashboard(context.Background(), uuid.New())

	var fetchErr *dto.FetchFailureError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "failed to load study data", fetchErr.Error())
}
