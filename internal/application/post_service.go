package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hyb-mobile-app/hyb-api/internal/domain/entity"
	repo "github.com/hyb-mobile-app/hyb-api/internal/domain/repository"
)

type PostService struct {
	Repo   repo.PostRepository
	Logger *logrus.Logger

	// EnforceOwnership restricts post deletion to the author.
	EnforceOwnership bool
}

func NewPostService(r repo.PostRepository, logger *logrus.Logger) *PostService {
	return &PostService{Repo: r, Logger: logger}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func blankContent() error {
	return &repo.ValidationError{Fields: []repo.FieldError{{Field: "content", Message: "must not be blank"}}}
}

func postErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrPostNotFound
	}
	return err
}

func (s *PostService) Create(ctx context.Context, authorID, content string) (*entity.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, blankContent()
	}
	p := &entity.Post{AuthorID: authorID, Content: content}
	if err := s.Repo.Create(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	// reload for author display fields
	return s.Get(ctx, p.ID)
}

func (s *PostService) List(ctx context.Context) ([]*entity.Post, error) {
	return s.Repo.List(ctx)
}

func (s *PostService) Get(ctx context.Context, id string) (*entity.Post, error) {
	if !validID(id) {
		return nil, ErrInvalidID
	}
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, postErr(err)
	}
	return p, nil
}

// Delete removes a post with its likes and comments. Any caller may delete
// unless EnforceOwnership is set.
func (s *PostService) Delete(ctx context.Context, id, callerID string) error {
	if !validID(id) {
		return ErrInvalidID
	}
	if s.EnforceOwnership {
		p, err := s.Repo.GetByID(ctx, id)
		if err != nil {
			return postErr(err)
		}
		if p.AuthorID != callerID {
			return ErrForbidden
		}
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return postErr(err)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"post_id": id, "user_id": callerID}).Info("status deleted")
	}
	return nil
}

// Like is idempotent: liking twice leaves one entry.
func (s *PostService) Like(ctx context.Context, postID, userID string) (*entity.Post, error) {
	if !validID(postID) {
		return nil, ErrInvalidID
	}
	if err := s.Repo.AddLike(ctx, postID, userID); err != nil {
		return nil, postErr(err)
	}
	return s.Get(ctx, postID)
}

// Unlike succeeds even when userID never liked the post.
func (s *PostService) Unlike(ctx context.Context, postID, userID string) (*entity.Post, error) {
	if !validID(postID) {
		return nil, ErrInvalidID
	}
	if err := s.Repo.RemoveLike(ctx, postID, userID); err != nil {
		return nil, postErr(err)
	}
	return s.Get(ctx, postID)
}

func (s *PostService) Comment(ctx context.Context, postID, authorID, content string) (*entity.Post, error) {
	if !validID(postID) {
		return nil, ErrInvalidID
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, blankContent()
	}
	c := &entity.Comment{PostID: postID, AuthorID: authorID, Content: content}
	if err := s.Repo.AddComment(ctx, c); err != nil {
		return nil, postErr(err)
	}
	return s.Get(ctx, postID)
}

// DeleteComment is allowed for the comment author only.
func (s *PostService) DeleteComment(ctx context.Context, postID, commentID, callerID string) error {
	if !validID(postID) || !validID(commentID) {
		return ErrInvalidID
	}
	if _, err := s.Repo.GetByID(ctx, postID); err != nil {
		return postErr(err)
	}
	c, err := s.Repo.GetComment(ctx, postID, commentID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if c.AuthorID != callerID {
		return ErrForbidden
	}
	if err := s.Repo.DeleteComment(ctx, postID, commentID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}
