package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hyb-mobile-app/hyb-api/config"
	"github.com/hyb-mobile-app/hyb-api/internal/domain/entity"
	repo "github.com/hyb-mobile-app/hyb-api/internal/domain/repository"
	"github.com/hyb-mobile-app/hyb-api/pkg/helpers"
	"github.com/hyb-mobile-app/hyb-api/pkg/mailer"
	mailtpl "github.com/hyb-mobile-app/hyb-api/pkg/mailer/templates"
)

// dummyHash is compared against when the email is unknown so both login
// failures cost one bcrypt comparison.
var dummyHash, _ = helpers.HashPassword(uuid.NewString())

type AuthService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger

	// Optional collaborators; nil disables the side effect.
	Indexer UserIndexer
	Jobs    JobPublisher
	Avatars AvatarUploader
	Config  *config.Config
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: r, JWT: jwt, Logger: logger}
}

// AuthResult is the outcome of a successful register or login.
type AuthResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := helpers.NormalizeEmail(in.Email)

	// Advisory only; the unique index decides races.
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{Name: strings.TrimSpace(in.Name), Email: email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	res, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	s.index(ctx, u)
	s.enqueueWelcome(ctx, u)
	return res, nil
}

// Login returns ErrInvalidCredentials for an unknown email and for a wrong password alike.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(ctx, helpers.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			helpers.CompareHashAndPassword(dummyHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

func (s *AuthService) issue(u *entity.User) (*AuthResult, error) {
	token, exp, err := s.JWT.Issue(u.ID, u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue token failed")
		}
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: u, Token: token, ExpiresAt: exp}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*entity.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrUserNotFound
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID, name string) (*entity.User, error) {
	u, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Name = strings.TrimSpace(name)
	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	s.index(ctx, u)
	return u, nil
}

func (s *AuthService) UploadAvatar(ctx context.Context, userID, contentType string, r io.Reader) (*entity.User, error) {
	if s.Avatars == nil {
		return nil, ErrStorageUnavailable
	}
	u, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	url, err := s.Avatars.UploadAvatar(ctx, u.ID, contentType, r)
	if err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}
	u.AvatarURL = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.index(ctx, u)
	return u, nil
}

func (s *AuthService) index(ctx context.Context, u *entity.User) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.IndexUser(ctx, u); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
	}
}

func (s *AuthService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Jobs == nil || s.Config == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(s.Config, u.Name, u.Email, mailtpl.WithTime(u.CreatedAt)),
	}
	if err := s.Jobs.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
	}
}
