// Package memory holds map-backed repositories used for local runs
// (STORE_DRIVER=memory) and tests. They honor the same contracts as the
// Postgres implementations, including the unique email constraint.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hyb-mobile-app/hyb-api/internal/domain/entity"
	"github.com/hyb-mobile-app/hyb-api/internal/domain/repository"
)

type userRecord struct {
	user entity.User
	seq  int64
}

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*userRecord
	byEmail map[string]string
	seq     int64
	now     func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*userRecord),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	if len([]rune(u.Name)) < 2 {
		return &repository.ValidationError{Fields: []repository.FieldError{{Field: "name", Message: "must be at least 2 characters long"}}}
	}

	r.seq++
	now := r.now()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.byID[u.ID] = &userRecord{user: *u, seq: r.seq}
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := rec.user
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) List(_ context.Context, offset, limit int) ([]*entity.User, error) {
	r.mu.RLock()
	recs := make([]*userRecord, 0, len(r.byID))
	for _, rec := range r.byID {
		recs = append(recs, rec)
	}
	r.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].user.CreatedAt.Equal(recs[j].user.CreatedAt) {
			return recs[i].user.CreatedAt.After(recs[j].user.CreatedAt)
		}
		return recs[i].seq > recs[j].seq
	})

	out := []*entity.User{}
	for i := offset; i < len(recs) && len(out) < limit; i++ {
		u := recs[i].user
		out = append(out, &u)
	}
	return out, nil
}

func (r *UserRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	u.UpdatedAt = r.now()
	rec.user.Name = u.Name
	rec.user.AvatarURL = u.AvatarURL
	rec.user.UpdatedAt = u.UpdatedAt
	return nil
}

// author returns the display projection for id, or a bare ID when unknown.
func (r *UserRepository) author(id string) entity.Author {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rec, ok := r.byID[id]; ok {
		return entity.Author{ID: id, Name: rec.user.Name, Email: rec.user.Email, AvatarURL: rec.user.AvatarURL}
	}
	return entity.Author{ID: id}
}

var _ repository.UserRepository = (*UserRepository)(nil)
