package client

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Author struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type Comment struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type Post struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	Likes     []string  `json:"likes"`
	LikeCount int       `json:"likeCount"`
	LikedByMe bool      `json:"likedByMe"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalUsers  int  `json:"totalUsers"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

type UserPage struct {
	Users      []User
	Pagination Pagination
}

// Session is what survives between runs: the bearer token and the last known user.
type Session struct {
	Token string
	User  *User
}

// envelope is the shape of every data endpoint: the payload sits under "data".
type envelope[T any] struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message"`
	Data       T            `json:"data"`
	Pagination *Pagination  `json:"pagination"`
	Errors     []FieldError `json:"errors"`
	Error      string       `json:"error"`
}

// authEnvelope is the shape of /auth/* answers (register, login, profile,
// profile update): the user sits at the top level under "user", never under "data".
type authEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
}
