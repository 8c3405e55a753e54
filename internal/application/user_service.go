package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hyb-mobile-app/hyb-api/internal/domain/entity"
	repo "github.com/hyb-mobile-app/hyb-api/internal/domain/repository"
	"github.com/hyb-mobile-app/hyb-api/pkg/helpers"
)

const (
	DefaultPage     = 1
	DefaultLimit    = 10
	MaxLimit        = 100
	maxSearchResult = 50
)

type UserService struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger

	Indexer  UserIndexer
	Searcher UserSearcher
}

func NewUserService(r repo.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, Logger: logger}
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// CreateUser returns ErrDuplicateEmail or a *repository.ValidationError from the store.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	email := helpers.NormalizeEmail(in.Email)
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
	if s.Indexer != nil {
		if err := s.Indexer.IndexUser(ctx, u); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
	}
	return u, nil
}

// UserPage is one page of users, newest first.
type UserPage struct {
	Users []*entity.User
	Page  int
	Limit int
	Total int
}

// NormalizePage applies the paging defaults: values below 1 fall back, limit is capped.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func (s *UserService) ListUsers(ctx context.Context, page, limit int) (*UserPage, error) {
	page, limit = NormalizePage(page, limit)
	users, err := s.Repo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &UserPage{Users: users, Page: page, Limit: limit, Total: total}, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]*entity.User, error) {
	if s.Searcher == nil {
		return nil, ErrStorageUnavailable
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return []*entity.User{}, nil
	}
	if size <= 0 || size > maxSearchResult {
		size = DefaultLimit
	}
	return s.Searcher.SearchUsers(ctx, q, size)
}
