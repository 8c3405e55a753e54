package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("status not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrInvalidID          = errors.New("invalid id format")
	ErrForbidden          = errors.New("forbidden")
	// ErrStorageUnavailable is returned when an optional backend (avatar bucket, search) is not configured.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
