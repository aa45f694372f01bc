package service

import (
	"context"

	"exam-prep-be/internal/dto"
	"exam-prep-be/internal/repository/specification"
	"exam-prep-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &dto.NotFoundError{Resource: "user"}
	}

	avatarURL := ""
	if user.AvatarURL != nil {
		avatarURL = *user.AvatarURL
	}

	return &dto.UserProfileResponse{
		Id:          user.Id,
		Email:       user.Email,
		FullName:    user.FullName,
		AvatarURL:   avatarURL,
		HasPassword: user.HasPassword(),
		CreatedAt:   user.CreatedAt,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.UserRepository()

	user, err := repo.FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &dto.NotFoundError{Resource: "user"}
	}

	if req.Email != "" && req.Email != user.Email {
		taken, err := repo.FindOne(ctx, specification.ByEmail{Email: req.Email})
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, &dto.ConflictError{Message: "email already registered"}
		}
		user.Email = req.Email
	}
	user.FullName = req.FullName

	if err := repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userId)
}

// ChangePassword rejects a confirmation mismatch before touching the database.
func (s *userService) ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmNewPassword {
		return &dto.MismatchError{Message: "New passwords do not match"}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.UserRepository()

	user, err := repo.FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return &dto.NotFoundError{Resource: "user"}
	}

	// Google-only accounts may set a first password without a current one.
	if user.HasPassword() {
		if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			return &dto.MismatchError{Message: "Current password is incorrect"}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hashStr := string(hash)
	user.PasswordHash = &hashStr

	return repo.Update(ctx, user)
}
