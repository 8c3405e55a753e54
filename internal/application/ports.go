package application

import (
	"context"
	"io"

	"github.com/hyb-mobile-app/hyb-api/internal/domain/entity"
)

// UserIndexer keeps a search index in sync with user writes.
type UserIndexer interface {
	IndexUser(ctx context.Context, u *entity.User) error
}

type UserSearcher interface {
	SearchUsers(ctx context.Context, q string, size int) ([]*entity.User, error)
}

// JobPublisher enqueues background jobs, e.g. *helpers.RabbitPublisher.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AvatarUploader stores an avatar image and returns its public URL.
type AvatarUploader interface {
	UploadAvatar(ctx context.Context, userID, contentType string, r io.Reader) (string, error)
}
