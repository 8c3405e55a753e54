package repository

import (
	"context"

	"github.com/hyb-mobile-app/hyb-api/internal/domain/entity"
)

// PostRepository stores posts together with their like sets and comments.
// Returned posts always have Author, Likes and Comments populated.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	// List returns every post, newest first.
	List(ctx context.Context) ([]*entity.Post, error)
	Delete(ctx context.Context, id string) error

	// AddLike and RemoveLike are idempotent; both return ErrNotFound for an unknown post.
	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error

	AddComment(ctx context.Context, c *entity.Comment) error
	GetComment(ctx context.Context, postID, commentID string) (*entity.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID string) error
}
