package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "github.com/hyb-mobile-app/hyb-api/internal/domain/repository"
)

func TestPostService_CreateAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ann := f.register(t, "Ann", "a@x.com")

	p, err := f.post.Create(ctx, ann.ID, " hello ")
	require.NoError(t, err)
	assert.Equal(t, "hello", p.Content)
	assert.Equal(t, "Ann", p.Author.Name)
	assert.Empty(t, p.Likes)
	assert.Empty(t, p.Comments)

	_, err = f.post.Create(ctx, ann.ID, "second")
	require.NoError(t, err)

	posts, err := f.post.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Content)

	_, err = f.post.Create(ctx, ann.ID, "   ")
	var verr *repo.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestPostService_LikeIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ann := f.register(t, "Ann", "a@x.com")
	bob := f.register(t, "Bob", "b@x.com")
	p, err := f.post.Create(ctx, ann.ID, "hello")
	require.NoError(t, err)

	_, err = f.post.Like(ctx, p.ID, bob.ID)
	require.NoError(t, err)
	got, err := f.post.Like(ctx, p.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob.ID}, got.Likes)

	// unliking a non-liker is a no-op
	got, err = f.post.Unlike(ctx, p.ID, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob.ID}, got.Likes)

	got, err = f.post.Unlike(ctx, p.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Likes)

	_, err = f.post.Like(ctx, "6f1c0c1e-0000-4000-8000-000000000000", bob.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = f.post.Like(ctx, "bad", bob.ID)
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestPostService_Comments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ann := f.register(t, "Ann", "a@x.com")
	bob := f.register(t, "Bob", "b@x.com")
	p, err := f.post.Create(ctx, ann.ID, "hello")
	require.NoError(t, err)

	got, err := f.post.Comment(ctx, p.ID, bob.ID, "nice")
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	c := got.Comments[0]
	assert.Equal(t, bob.ID, c.AuthorID)
	assert.Equal(t, "Bob", c.Author.Name)
	assert.False(t, c.CreatedAt.IsZero())

	assert.ErrorIs(t, f.post.DeleteComment(ctx, p.ID, c.ID, ann.ID), ErrForbidden)
	require.NoError(t, f.post.DeleteComment(ctx, p.ID, c.ID, bob.ID))
	assert.ErrorIs(t, f.post.DeleteComment(ctx, p.ID, c.ID, bob.ID), ErrCommentNotFound)
}

func TestPostService_DeleteOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ann := f.register(t, "Ann", "a@x.com")
	bob := f.register(t, "Bob", "b@x.com")

	p1, err := f.post.Create(ctx, ann.ID, "one")
	require.NoError(t, err)
	// default: any authenticated caller may delete
	require.NoError(t, f.post.Delete(ctx, p1.ID, bob.ID))
	assert.ErrorIs(t, f.post.Delete(ctx, p1.ID, bob.ID), ErrPostNotFound)

	f.post.EnforceOwnership = true
	p2, err := f.post.Create(ctx, ann.ID, "two")
	require.NoError(t, err)
	assert.ErrorIs(t, f.post.Delete(ctx, p2.ID, bob.ID), ErrForbidden)
	require.NoError(t, f.post.Delete(ctx, p2.ID, ann.ID))
}
