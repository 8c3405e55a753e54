package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyb-mobile-app/hyb-api/internal/domain/entity"
	"github.com/hyb-mobile-app/hyb-api/internal/domain/repository"
)

func TestUserRepository_UniqueEmail(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &entity.User{Name: "Ann", Email: "a@x.com", Password: "h"}))
	err := r.Create(ctx, &entity.User{Name: "Other", Email: "a@x.com", Password: "h"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUserRepository_ListNewestFirst(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()
	for _, email := range []string{"1@x.com", "2@x.com", "3@x.com"} {
		require.NoError(t, r.Create(ctx, &entity.User{Name: "User", Email: email}))
	}

	users, err := r.List(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "3@x.com", users[0].Email)
	assert.Equal(t, "2@x.com", users[1].Email)

	users, err = r.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "1@x.com", users[0].Email)
}

func TestPostRepository_LikesAreASet(t *testing.T) {
	users := NewUserRepository()
	posts := NewPostRepository(users)
	ctx := context.Background()

	u := &entity.User{Name: "Ann", Email: "a@x.com"}
	require.NoError(t, users.Create(ctx, u))
	p := &entity.Post{AuthorID: u.ID, Content: "hello"}
	require.NoError(t, posts.Create(ctx, p))

	require.NoError(t, posts.AddLike(ctx, p.ID, u.ID))
	require.NoError(t, posts.AddLike(ctx, p.ID, u.ID))

	got, err := posts.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{u.ID}, got.Likes)
	assert.Equal(t, "Ann", got.Author.Name)

	require.NoError(t, posts.RemoveLike(ctx, p.ID, u.ID))
	require.NoError(t, posts.RemoveLike(ctx, p.ID, u.ID))
	got, err = posts.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Likes)

	assert.ErrorIs(t, posts.AddLike(ctx, "missing", u.ID), repository.ErrNotFound)
}

func TestPostRepository_Comments(t *testing.T) {
	users := NewUserRepository()
	posts := NewPostRepository(users)
	ctx := context.Background()

	u := &entity.User{Name: "Ann", Email: "a@x.com"}
	require.NoError(t, users.Create(ctx, u))
	p := &entity.Post{AuthorID: u.ID, Content: "hello"}
	require.NoError(t, posts.Create(ctx, p))

	c := &entity.Comment{PostID: p.ID, AuthorID: u.ID, Content: "first"}
	require.NoError(t, posts.AddComment(ctx, c))
	assert.NotEmpty(t, c.ID)

	got, err := posts.GetComment(ctx, p.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Content)
	assert.Equal(t, "a@x.com", got.Author.Email)

	require.NoError(t, posts.DeleteComment(ctx, p.ID, c.ID))
	assert.ErrorIs(t, posts.DeleteComment(ctx, p.ID, c.ID), repository.ErrNotFound)

	var verr *repository.ValidationError
	assert.ErrorAs(t, posts.AddComment(ctx, &entity.Comment{PostID: p.ID, AuthorID: u.ID, Content: "  "}), &verr)
}
