package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is matched by any APIError carrying HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx answer from the server, decoded from the response envelope.
type APIError struct {
	Status  int
	Message string
	Detail  string
	Errors  []FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: HTTP %d", e.Status)
	}
	return fmt.Sprintf("api error: HTTP %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// NetworkError means no usable HTTP response arrived: dial failure, timeout or an unreadable body.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
