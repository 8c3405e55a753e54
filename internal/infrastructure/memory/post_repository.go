package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hyb-mobile-app/hyb-api/internal/domain/entity"
	"github.com/hyb-mobile-app/hyb-api/internal/domain/repository"
)

type postRecord struct {
	post entity.Post
	seq  int64
}

// PostRepository resolves authors through the UserRepository it was built with,
// mirroring the users join done by the Postgres implementation.
type PostRepository struct {
	mu    sync.RWMutex
	posts map[string]*postRecord
	users *UserRepository
	seq   int64
	now   func() time.Time
}

func NewPostRepository(users *UserRepository) *PostRepository {
	return &PostRepository{
		posts: make(map[string]*postRecord),
		users: users,
		now:   time.Now,
	}
}

func contentRequired() error {
	return &repository.ValidationError{Fields: []repository.FieldError{{Field: "content", Message: "is required"}}}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	if strings.TrimSpace(p.Content) == "" {
		return contentRequired()
	}
	if _, err := r.users.GetByID(ctx, p.AuthorID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	now := r.now()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Likes = []string{}
	p.Comments = []entity.Comment{}
	r.posts[p.ID] = &postRecord{post: *p, seq: r.seq}
	return nil
}

// snapshot copies a stored post so callers never share slices with the store.
func (r *PostRepository) snapshot(rec *postRecord) *entity.Post {
	p := rec.post
	p.Author = r.users.author(p.AuthorID)
	p.Likes = append([]string{}, rec.post.Likes...)
	p.Comments = make([]entity.Comment, 0, len(rec.post.Comments))
	for _, c := range rec.post.Comments {
		c.Author = r.users.author(c.AuthorID)
		p.Comments = append(p.Comments, c)
	}
	return &p
}

func (r *PostRepository) GetByID(_ context.Context, id string) (*entity.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.snapshot(rec), nil
}

func (r *PostRepository) List(_ context.Context) ([]*entity.Post, error) {
	r.mu.RLock()
	recs := make([]*postRecord, 0, len(r.posts))
	for _, rec := range r.posts {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq > recs[j].seq })
	out := make([]*entity.Post, 0, len(recs))
	for _, rec := range recs {
		out = append(out, r.snapshot(rec))
	}
	r.mu.RUnlock()
	return out, nil
}

func (r *PostRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *PostRepository) AddLike(_ context.Context, postID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.posts[postID]
	if !ok {
		return repository.ErrNotFound
	}
	if rec.post.LikedBy(userID) {
		return nil
	}
	rec.post.Likes = append(rec.post.Likes, userID)
	return nil
}

func (r *PostRepository) RemoveLike(_ context.Context, postID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.posts[postID]
	if !ok {
		return repository.ErrNotFound
	}
	kept := rec.post.Likes[:0]
	for _, id := range rec.post.Likes {
		if id != userID {
			kept = append(kept, id)
		}
	}
	rec.post.Likes = kept
	return nil
}

func (r *PostRepository) AddComment(_ context.Context, c *entity.Comment) error {
	if strings.TrimSpace(c.Content) == "" {
		return contentRequired()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.posts[c.PostID]
	if !ok {
		return repository.ErrNotFound
	}
	c.ID = uuid.NewString()
	c.CreatedAt = r.now()
	rec.post.Comments = append(rec.post.Comments, *c)
	return nil
}

func (r *PostRepository) GetComment(_ context.Context, postID, commentID string) (*entity.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.posts[postID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for _, c := range rec.post.Comments {
		if c.ID == commentID {
			c.Author = r.users.author(c.AuthorID)
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *PostRepository) DeleteComment(_ context.Context, postID, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.posts[postID]
	if !ok {
		return repository.ErrNotFound
	}
	for i, c := range rec.post.Comments {
		if c.ID == commentID {
			rec.post.Comments = append(rec.post.Comments[:i], rec.post.Comments[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

var _ repository.PostRepository = (*PostRepository)(nil)
