package entity

import (
	"time"
)

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in Password field
// and Email is always trimmed and lower-cased before it reaches the store.
type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}
