package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hyb-mobile-app/hyb-api/internal/domain/entity"
	"github.com/hyb-mobile-app/hyb-api/internal/domain/repository"
	"github.com/hyb-mobile-app/hyb-api/pkg/helpers"
)

const (
	userKeyPrefix   = "user:id:"
	defaultCacheTTL = 10 * time.Minute
)

// cachedUser is what lands in redis; the password hash is never cached.
type cachedUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRepository is a cache-aside decorator over the source-of-truth repository.
// Only GetByID is served from cache; redis failures fall back to the store.
type UserRepository struct {
	next   repository.UserRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewUserRepository(next repository.UserRepository, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *UserRepository {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &UserRepository{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func userKey(id string) string { return userKeyPrefix + id }

func (r *UserRepository) warn(err error, key, msg string) {
	if r.logger != nil {
		r.logger.WithError(err).WithField("key", key).Warn(msg)
	}
}

func (r *UserRepository) store(ctx context.Context, u *entity.User) {
	key := userKey(u.ID)
	cu := cachedUser{ID: u.ID, Email: u.Email, Name: u.Name, AvatarURL: u.AvatarURL, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
	if err := helpers.RedisSetJSON(ctx, r.rdb, key, cu, r.ttl); err != nil {
		r.warn(err, key, "user cache set failed")
	}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if err := r.next.Create(ctx, u); err != nil {
		return err
	}
	r.store(ctx, u)
	return nil
}

// GetByID returns users without a password hash when served from cache.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	key := userKey(id)
	var cu cachedUser
	hit, err := helpers.RedisGetJSON(ctx, r.rdb, key, &cu)
	if err != nil {
		r.warn(err, key, "user cache get failed, falling back to store")
	}
	if hit {
		return &entity.User{ID: cu.ID, Email: cu.Email, Name: cu.Name, AvatarURL: cu.AvatarURL, CreatedAt: cu.CreatedAt, UpdatedAt: cu.UpdatedAt}, nil
	}

	u, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, u)
	return u, nil
}

// GetByEmail always reads through: login needs the password hash.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.next.GetByEmail(ctx, email)
}

func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]*entity.User, error) {
	return r.next.List(ctx, offset, limit)
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	return r.next.Count(ctx)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	if err := r.next.Update(ctx, u); err != nil {
		return err
	}
	key := userKey(u.ID)
	if err := helpers.RedisDel(ctx, r.rdb, key); err != nil {
		r.warn(err, key, "user cache invalidate failed")
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
