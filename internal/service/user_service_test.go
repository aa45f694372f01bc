package service

import (
	"context"
	"testing"

	"exam-prep-be/internal/dto"
	"exam-prep-be/internal/events"
	"exam-prep-be/internal/pkg/logger"
	"exam-prep-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// untouchableFactory fails the test if any database work is attempted.
type untouchableFactory struct{ t *testing.T }

func (f untouchableFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	f.t.Fatal("database must not be touched")
	return nil
}

func TestChangePasswordMismatchSkipsDatabase(t *testing.T) {
	svc := NewUserService(untouchableFactory{t})

	err := svc.ChangePassword(context.Background(), uuid.New(), &dto.ChangePasswordRequest{
		CurrentPassword:    "secret1",
		NewPassword:        "newsecret",
		ConfirmNewPassword: "newsecre",
	})
	var mismatch *dto.MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "New passwords do not match", mismatch.Error())
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	userId := f.register(t, "rafi@example.com")
	svc := NewUserService(f.factory)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, userId, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "newsecret", ConfirmNewPassword: "newsecret",
	})
	var mismatch *dto.MismatchError
	require.ErrorAs(t, err, &mismatch)

	require.NoError(t, svc.ChangePassword(ctx, userId, &dto.ChangePasswordRequest{
		CurrentPassword: "secret1", NewPassword: "newsecret", ConfirmNewPassword: "newsecret",
	}))

	auth := NewAuthService(f.factory, events.NewBusPublisher(nil, logger.NewNopLogger()), testSecret, logger.NewNopLogger())
	_, err = auth.Login(ctx, &dto.LoginRequest{Email: "rafi@example.com", Password: "newsecret"})
	assert.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	userId := f.register(t, "rafi@example.com")
	f.register(t, "taken@example.com")
	svc := NewUserService(f.factory)
	ctx := context.Background()

	profile, err := svc.UpdateProfile(ctx, userId, &dto.UpdateProfileRequest{FullName: "Rafi Ahmed", Email: "rafi.a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Rafi Ahmed", profile.FullName)
	assert.Equal(t, "rafi.a@example.com", profile.Email)
	assert.True(t, profile.HasPassword)

	_, err = svc.UpdateProfile(ctx, userId, &dto.UpdateProfileRequest{FullName: "Rafi", Email: "taken@example.com"})
	var conflict *dto.ConflictError
	assert.ErrorAs(t, err, &conflict)
}
