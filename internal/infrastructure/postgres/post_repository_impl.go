package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hyb-mobile-app/hyb-api/internal/domain/entity"
	"github.com/hyb-mobile-app/hyb-api/internal/domain/repository"
)

const postSelect = `
	SELECT p.id, p.author_id, p.content, p.created_at, p.updated_at,
	       u.name, u.email, u.avatar_url
	FROM posts p
	JOIN users u ON u.id = p.author_id`

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (author_id, content)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, p.AuthorID, p.Content)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return translate(err)
	}
	p.Likes = []string{}
	p.Comments = []entity.Comment{}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.populate(ctx, []*entity.Post{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) List(ctx context.Context) ([]*entity.Post, error) {
	rows, err := r.pool.Query(ctx, postSelect+` ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	posts := []*entity.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	if err := r.populate(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// populate loads like sets and comments for posts with one query each.
func (r *PostRepository) populate(ctx context.Context, posts []*entity.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]string, 0, len(posts))
	byID := make(map[string]*entity.Post, len(posts))
	for _, p := range posts {
		p.Likes = []string{}
		p.Comments = []entity.Comment{}
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	likeRows, err := r.pool.Query(ctx, `
		SELECT post_id, user_id FROM post_likes
		WHERE post_id = ANY($1::uuid[])
		ORDER BY created_at
	`, ids)
	if err != nil {
		return translate(err)
	}
	for likeRows.Next() {
		var postID, userID string
		if err := likeRows.Scan(&postID, &userID); err != nil {
			likeRows.Close()
			return translate(err)
		}
		if p := byID[postID]; p != nil {
			p.Likes = append(p.Likes, userID)
		}
	}
	likeRows.Close()
	if err := likeRows.Err(); err != nil {
		return translate(err)
	}

	commentRows, err := r.pool.Query(ctx, `
		SELECT c.id, c.post_id, c.author_id, c.content, c.created_at,
		       u.name, u.email, u.avatar_url
		FROM post_comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = ANY($1::uuid[])
		ORDER BY c.created_at, c.id
	`, ids)
	if err != nil {
		return translate(err)
	}
	defer commentRows.Close()
	for commentRows.Next() {
		c, err := scanComment(commentRows)
		if err != nil {
			return err
		}
		if p := byID[c.PostID]; p != nil {
			p.Comments = append(p.Comments, *c)
		}
	}
	return translate(commentRows.Err())
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) AddLike(ctx context.Context, postID, userID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO post_likes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`, postID, userID)
	return translate(err)
}

func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() > 0 {
		return nil
	}
	// nothing removed: fine for a known post, not found otherwise
	return r.ensureExists(ctx, postID)
}

func (r *PostRepository) ensureExists(ctx context.Context, postID string) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists); err != nil {
		return translate(err)
	}
	if !exists {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) AddComment(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO post_comments (post_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, c.PostID, c.AuthorID, c.Content)
	return translate(row.Scan(&c.ID, &c.CreatedAt))
}

func (r *PostRepository) GetComment(ctx context.Context, postID, commentID string) (*entity.Comment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT c.id, c.post_id, c.author_id, c.content, c.created_at,
		       u.name, u.email, u.avatar_url
		FROM post_comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1 AND c.id = $2
	`, postID, commentID)
	return scanComment(row)
}

func (r *PostRepository) DeleteComment(ctx context.Context, postID, commentID string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM post_comments WHERE post_id = $1 AND id = $2`, postID, commentID)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanPost(row pgx.Row) (*entity.Post, error) {
	p := &entity.Post{}
	if err := row.Scan(&p.ID, &p.AuthorID, &p.Content, &p.CreatedAt, &p.UpdatedAt,
		&p.Author.Name, &p.Author.Email, &p.Author.AvatarURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, translate(err)
	}
	p.Author.ID = p.AuthorID
	return p, nil
}

func scanComment(row pgx.Row) (*entity.Comment, error) {
	c := &entity.Comment{}
	if err := row.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt,
		&c.Author.Name, &c.Author.Email, &c.Author.AvatarURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, translate(err)
	}
	c.Author.ID = c.AuthorID
	return c, nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
