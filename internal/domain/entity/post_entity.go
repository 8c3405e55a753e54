package entity

import "time"

// Author is the display projection of a user attached to posts and comments.
type Author struct {
	ID        string
	Name      string
	Email     string
	AvatarURL string
}

// Post is a status update in the social feed.
// Likes holds user IDs and never contains duplicates.
type Post struct {
	ID        string
	AuthorID  string
	Author    Author
	Content   string
	Likes     []string
	Comments  []Comment
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LikedBy reports whether userID is in the post's liker set.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Comment belongs to exactly one post
type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Author    Author
	Content   string
	CreatedAt time.Time
}
