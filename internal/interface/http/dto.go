package handlers

import (
	"time"

	"github.com/hyb-mobile-app/hyb-api/internal/domain/entity"
)

// UserDTO is the public user shape; the password hash has no field here.
type UserDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserDTO(u *entity.User) UserDTO {
	return UserDTO{ID: u.ID, Name: u.Name, Email: u.Email, AvatarURL: u.AvatarURL, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

func toUserDTOs(us []*entity.User) []UserDTO {
	out := make([]UserDTO, 0, len(us))
	for _, u := range us {
		out = append(out, toUserDTO(u))
	}
	return out
}

type AuthorDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type CommentDTO struct {
	ID        string    `json:"id"`
	Author    AuthorDTO `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type PostDTO struct {
	ID        string       `json:"id"`
	Author    AuthorDTO    `json:"author"`
	Content   string       `json:"content"`
	Likes     []string     `json:"likes"`
	LikeCount int          `json:"likeCount"`
	LikedByMe bool         `json:"likedByMe"`
	Comments  []CommentDTO `json:"comments"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func toAuthorDTO(a entity.Author) AuthorDTO {
	return AuthorDTO{ID: a.ID, Name: a.Name, Email: a.Email, AvatarURL: a.AvatarURL}
}

// toPostDTO renders p for viewerID, which may be empty for anonymous reads.
func toPostDTO(p *entity.Post, viewerID string) PostDTO {
	comments := make([]CommentDTO, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, CommentDTO{ID: c.ID, Author: toAuthorDTO(c.Author), Content: c.Content, CreatedAt: c.CreatedAt})
	}
	likes := append([]string{}, p.Likes...)
	return PostDTO{
		ID:        p.ID,
		Author:    toAuthorDTO(p.Author),
		Content:   p.Content,
		Likes:     likes,
		LikeCount: len(likes),
		LikedByMe: viewerID != "" && p.LikedBy(viewerID),
		Comments:  comments,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
