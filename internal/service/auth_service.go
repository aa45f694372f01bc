package service

import (
	"context"
	"fmt"
	"time"

	"exam-prep-be/internal/dto"
	"exam-prep-be/internal/entity"
	"exam-prep-be/internal/events"
	"exam-prep-be/internal/pkg/logger"
	"exam-prep-be/internal/repository/specification"
	"exam-prep-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher
	jwtSecret  string
	logger     logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, publisher events.Publisher, jwtSecret string, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		publisher:  publisher,
		jwtSecret:  jwtSecret,
		logger:     log,
	}
}

func issueToken(secret string, user *entity.User) (*dto.LoginResponse, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken: signed,
		User: dto.UserDTO{
			Id:       user.Id,
			Email:    user.Email,
			FullName: user.FullName,
		},
	}, nil
}

// seedSubjects gives a new account the default subject catalogue. Must run inside the caller's transaction.
func seedSubjects(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) error {
	subjects := make([]*entity.Subject, 0, len(entity.DefaultSubjects))
	for _, tmpl := range entity.DefaultSubjects {
		subjects = append(subjects, &entity.Subject{
			UserId: userId,
			Name:   tmpl.Name,
			Papers: append([]entity.PaperType(nil), tmpl.Papers...),
		})
	}
	return uow.SubjectRepository().CreateBatch(ctx, subjects)
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &dto.ConflictError{Message: "email already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: &hashStr,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}
	if err := seedSubjects(ctx, uow, user.Id); err != nil {
		return nil, fmt.Errorf("seed subjects: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("AUTH", "User registered", map[string]interface{}{"user_id": user.Id, "email": user.Email})
	s.publisher.PublishUserRegistered(ctx, user.Id, user.Email, user.FullName, "password")

	return issueToken(s.jwtSecret, user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &dto.UnauthorizedError{Message: "invalid credentials"}
	}

	if !user.HasPassword() {
		return nil, &dto.UnauthorizedError{Message: "account uses Google sign-in"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, &dto.UnauthorizedError{Message: "invalid credentials"}
	}

	return issueToken(s.jwtSecret, user)
}
