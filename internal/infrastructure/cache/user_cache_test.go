package cache

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyb-mobile-app/hyb-api/internal/domain/entity"
	"github.com/hyb-mobile-app/hyb-api/internal/domain/repository"
	"github.com/hyb-mobile-app/hyb-api/internal/infrastructure/memory"
)

// unreachable redis: every cache call fails fast and the store must answer.
func newUnreachable(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestUserRepository_FallsBackWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	store := memory.NewUserRepository()
	repo := NewUserRepository(store, newUnreachable(t), time.Minute, quietLogger())

	u := &entity.User{Name: "Ann", Email: "a@x.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)

	byEmail, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "hash", byEmail.Password)

	u.Name = "Annie"
	require.NoError(t, repo.Update(ctx, u))
	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Annie", got.Name)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
