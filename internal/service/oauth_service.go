package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"exam-prep-be/internal/config"
	"exam-prep-be/internal/dto"
	"exam-prep-be/internal/entity"
	"exam-prep-be/internal/events"
	"exam-prep-be/internal/pkg/logger"
	"exam-prep-be/internal/repository/specification"
	"exam-prep-be/internal/repository/unitofwork"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	providerGoogle = "google"
	googleUserInfo = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type IOAuthService interface {
	GetLoginURL(provider string) (string, error)
	HandleCallback(ctx context.Context, provider string, code string) (*dto.LoginResponse, error)
}

type googleUser struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type oauthService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher
	googleConf *oauth2.Config
	jwtSecret  string
	logger     logger.ILogger
}

func NewOAuthService(uowFactory unitofwork.RepositoryFactory, publisher events.Publisher, cfg config.OAuthConfig, jwtSecret string, log logger.ILogger) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		uowFactory: uowFactory,
		publisher:  publisher,
		googleConf: conf,
		jwtSecret:  jwtSecret,
		logger:     log,
	}
}

func (s *oauthService) GetLoginURL(provider string) (string, error) {
	if provider != providerGoogle {
		return "", &dto.NotFoundError{Resource: "provider " + provider}
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return s.googleConf.AuthCodeURL(base64.URLEncoding.EncodeToString(b)), nil
}

func (s *oauthService) HandleCallback(ctx context.Context, provider string, code string) (*dto.LoginResponse, error) {
	if provider != providerGoogle {
		return nil, &dto.NotFoundError{Resource: "provider " + provider}
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn("OAUTH", "Code exchange failed", map[string]interface{}{"error": err.Error()})
		return nil, &dto.UnauthorizedError{Message: "code exchange failed"}
	}

	resp, err := s.googleConf.Client(ctx, token).Get(googleUserInfo)
	if err != nil {
		return nil, &dto.FetchFailureError{Resource: "google profile", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &dto.FetchFailureError{Resource: "google profile", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var gu googleUser
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return nil, &dto.FetchFailureError{Resource: "google profile", Err: err}
	}

	return s.signIn(ctx, gu)
}

// signIn links the Google identity to an account, creating the account on first sign-in.
func (s *oauthService) signIn(ctx context.Context, gu googleUser) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: gu.Email})
	if err != nil {
		return nil, err
	}
	provider, err := uow.UserRepository().FindProvider(ctx, specification.ByProvider{Name: providerGoogle, UserID: gu.ID})
	if err != nil {
		return nil, err
	}

	created := false
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if user == nil {
		user = &entity.User{Email: gu.Email, FullName: gu.Name}
		if gu.Picture != "" {
			user.AvatarURL = &gu.Picture
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
		if err := seedSubjects(ctx, uow, user.Id); err != nil {
			return nil, fmt.Errorf("seed subjects: %w", err)
		}
		created = true
	}

	if provider == nil {
		if err := uow.UserRepository().CreateProvider(ctx, &entity.UserProvider{
			UserId:         user.Id,
			ProviderName:   providerGoogle,
			ProviderUserId: gu.ID,
		}); err != nil {
			return nil, fmt.Errorf("save provider: %w", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if created {
		s.logger.Info("OAUTH", "User created from Google sign-in", map[string]interface{}{"user_id": user.Id})
		s.publisher.PublishUserRegistered(ctx, user.Id, user.Email, user.FullName, providerGoogle)
	}

	return issueToken(s.jwtSecret, user)
}
