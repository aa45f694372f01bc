package implementation_test

import (
	"context"
	"testing"
	"time"

	"exam-prep-be/internal/entity"
	"exam-prep-be/internal/pkg/testdb"
	"exam-prep-be/internal/repository/implementation"
	"exam-prep-be/internal/repository/scope"
	"exam-prep-be/internal/repository/specification"
	"exam-prep-be/pkg/stats"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := implementation.NewUserRepository(testdb.New(t))

	missing, err := repo.FindOne(ctx, specification.ByEmail{Email: "nobody@example.com"})
	require.NoError(t, err)
	assert.Nil(t, missing)

	hash := "hash"
	user := &entity.User{Email: "rafi@example.com", FullName: "Rafi", PasswordHash: &hash}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.Id)

	found, err := repo.FindOne(ctx, specification.ByEmail{Email: "rafi@example.com"})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.Id, found.Id)
	assert.True(t, found.HasPassword())

	found.FullName = "Rafi Ahmed"
	require.NoError(t, repo.Update(ctx, found))
	again, err := repo.FindOne(ctx, specification.ByID{ID: user.Id})
	require.NoError(t, err)
	assert.Equal(t, "Rafi Ahmed", again.FullName)

	require.NoError(t, repo.CreateProvider(ctx, &entity.UserProvider{
		UserId: user.Id, ProviderName: "google", ProviderUserId: "g-123",
	}))
	provider, err := repo.FindProvider(ctx, specification.ByProvider{Name: "google", UserID: "g-123"})
	require.NoError(t, err)
	require.NotNil(t, provider)
	assert.Equal(t, user.Id, provider.UserId)
}

func TestSubjectRepositoryKeepsPapers(t *testing.T) {
	ctx := context.Background()
	repo := implementation.NewSubjectRepository(testdb.New(t))
	userID := uuid.New()

	subjects := []*entity.Subject{
		{UserId: userID, Name: "Physics", Papers: []entity.PaperType{entity.PaperFirst, entity.PaperSecond}, TotalChapters: 10},
		{UserId: userID, Name: "ICT", Papers: []entity.PaperType{entity.PaperSingle}},
	}
	require.NoError(t, repo.CreateBatch(ctx, subjects))
	assert.NotEqual(t, uuid.Nil, subjects[0].Id)

	all, err := repo.FindAll(ctx, specification.UserOwnedBy{UserID: userID}, specification.OrderBy{Field: "name"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "ICT", all[0].Name)
	assert.Equal(t, []entity.PaperType{entity.PaperSingle}, all[0].Papers)
	assert.Equal(t, []entity.PaperType{entity.PaperFirst, entity.PaperSecond}, all[1].Papers)
	assert.Equal(t, 10, all[1].TotalChapters)

	count, err := repo.Count(ctx, specification.UserOwnedBy{UserID: uuid.New()})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestChapterRepositorySoftDelete(t *testing.T) {
	ctx := context.Background()
	repo := implementation.NewChapterRepository(testdb.New(t))
	userID, subjectID := uuid.New(), uuid.New()

	ch := &entity.Chapter{UserId: userID, SubjectId: subjectID, Name: "Vectors", PaperType: entity.PaperFirst}
	require.NoError(t, repo.Create(ctx, ch))
	require.NoError(t, repo.Create(ctx, &entity.Chapter{UserId: userID, SubjectId: subjectID, Name: "Optics", PaperType: entity.PaperSecond}))

	ch.WeakTopic = true
	ch.IsCompleted = true
	require.NoError(t, repo.Update(ctx, ch))

	weak, err := repo.FindAll(ctx, specification.BySubjectID{SubjectID: subjectID}, specification.WeakTopic{})
	require.NoError(t, err)
	require.Len(t, weak, 1)
	assert.True(t, weak[0].IsCompleted)

	firstPaper, err := repo.FindAll(ctx, specification.BySubjectID{SubjectID: subjectID}, specification.ByPaperType{PaperType: "first"})
	require.NoError(t, err)
	assert.Len(t, firstPaper, 1)

	require.NoError(t, repo.Delete(ctx, ch.Id))
	gone, err := repo.FindOne(ctx, specification.ByID{ID: ch.Id})
	require.NoError(t, err)
	assert.Nil(t, gone)

	count, err := repo.Count(ctx, specification.UserOwnedBy{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStudySessionRepositoryDates(t *testing.T) {
	ctx := context.Background()
	repo := implementation.NewStudySessionRepository(testdb.New(t))
	userID, subjectID := uuid.New(), uuid.New()

	days := []stats.Day{
		stats.NewDay(2024, time.January, 1),
		stats.NewDay(2024, time.January, 2),
		stats.NewDay(2024, time.January, 2),
		stats.NewDay(2024, time.January, 9),
	}
	for i, d := range days {
		require.NoError(t, repo.Create(ctx, &entity.StudySession{
			UserId: userID, SubjectId: subjectID, Date: d, Duration: 10 * (i + 1),
		}))
	}

	onDay, err := repo.FindAll(ctx, specification.UserOwnedBy{UserID: userID}, specification.OnDate{Day: days[1]})
	require.NoError(t, err)
	require.Len(t, onDay, 2)
	for _, s := range onDay {
		assert.Equal(t, days[1], s.Date)
	}

	recent, err := repo.FindAll(ctx,
		specification.UserOwnedBy{UserID: userID},
		specification.OnOrAfter{Day: days[1]},
		specification.Scoped(scope.OrderByDateDesc),
	)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, days[3], recent[0].Date)
	assert.Equal(t, 40, recent[0].Duration)
}

func TestTaskRepository(t *testing.T) {
	ctx := context.Background()
	repo := implementation.NewTaskRepository(testdb.New(t))
	userID := uuid.New()
	chapterID := uuid.New()
	today := stats.NewDay(2024, time.March, 5)

	task := &entity.Task{UserId: userID, SubjectId: uuid.New(), ChapterId: &chapterID, Description: "Solve past papers", Date: today}
	require.NoError(t, repo.Create(ctx, task))

	task.IsCompleted = true
	require.NoError(t, repo.Update(ctx, task))

	done, err := repo.FindAll(ctx, specification.UserOwnedBy{UserID: userID}, specification.Completed{Value: true})
	require.NoError(t, err)
	require.Len(t, done, 1)
	require.NotNil(t, done[0].ChapterId)
	assert.Equal(t, chapterID, *done[0].ChapterId)
	assert.Equal(t, today, done[0].Date)

	require.NoError(t, repo.Delete(ctx, task.Id))
	count, err := repo.Count(ctx, specification.UserOwnedBy{UserID: userID})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNoteRepositoryUpsert(t *testing.T) {
	ctx := context.Background()
	repo := implementation.NewNoteRepository(testdb.New(t))
	userID, subjectID := uuid.New(), uuid.New()

	first := &entity.Note{UserId: userID, SubjectId: subjectID, PaperType: entity.PaperFirst, Content: "draft"}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &entity.Note{UserId: userID, SubjectId: subjectID, PaperType: entity.PaperFirst, Content: "final"}
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, "final", second.Content)

	require.NoError(t, repo.Upsert(ctx, &entity.Note{UserId: userID, SubjectId: subjectID, PaperType: entity.PaperSecond, Content: "other"}))

	all, err := repo.FindAll(ctx, specification.UserOwnedBy{UserID: userID})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
