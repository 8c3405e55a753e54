package repository

import (
	"context"

	"github.com/hyb-mobile-app/hyb-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// List returns users newest first.
	List(ctx context.Context, offset, limit int) ([]*entity.User, error)
	Count(ctx context.Context) (int, error)
	// Update persists name and avatar changes; email and password are immutable here.
	Update(ctx context.Context, u *entity.User) error
}
