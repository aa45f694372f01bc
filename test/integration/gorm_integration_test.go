package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"exam-prep-be/internal/entity"
	"exam-prep-be/internal/model"
	"exam-prep-be/internal/repository/specification"
	"exam-prep-be/internal/repository/unitofwork"
	"exam-prep-be/pkg/database"
	"exam-prep-be/pkg/stats"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real Postgres when DB_CONNECTION_STRING is set.
func TestGormConnection(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(model.All()...))

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)

	t.Run("Check Repositories", func(t *testing.T) {
		_, err := uow.UserRepository().Count(ctx)
		assert.NoError(t, err)
		_, err = uow.SubjectRepository().Count(ctx)
		assert.NoError(t, err)
		_, err = uow.ChapterRepository().Count(ctx)
		assert.NoError(t, err)
		_, err = uow.StudySessionRepository().Count(ctx)
		assert.NoError(t, err)
		_, err = uow.TaskRepository().Count(ctx)
		assert.NoError(t, err)
	})

	t.Run("Session Round Trip In Rolled Back Tx", func(t *testing.T) {
		tx := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)
		require.NoError(t, tx.Begin(ctx))
		defer tx.Rollback()

		user := &entity.User{Email: uuid.NewString() + "@integration.test", FullName: "Integration"}
		require.NoError(t, tx.UserRepository().Create(ctx, user))

		subject := &entity.Subject{UserId: user.Id, Name: "Physics", Papers: []entity.PaperType{entity.PaperFirst, entity.PaperSecond}}
		require.NoError(t, tx.SubjectRepository().Create(ctx, subject))

		day := stats.NewDay(2024, time.May, 1)
		require.NoError(t, tx.StudySessionRepository().Create(ctx, &entity.StudySession{
			UserId: user.Id, SubjectId: subject.Id, Date: day, Duration: 25,
		}))

		sessions, err := tx.StudySessionRepository().FindAll(ctx, specification.UserOwnedBy{UserID: user.Id}, specification.OnDate{Day: day})
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, 25, sessions[0].Duration)
	})
}
