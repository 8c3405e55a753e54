package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hyb-mobile-app/hyb-api/internal/domain/repository"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
)

// constraint name -> field error surfaced to clients
var checkConstraints = map[string]repository.FieldError{
	"users_name_not_blank":            {Field: "name", Message: "must be at least 2 characters long"},
	"users_email_lower":               {Field: "email", Message: "must be lower-case"},
	"posts_content_not_blank":         {Field: "content", Message: "is required"},
	"post_comments_content_not_blank": {Field: "content", Message: "is required"},
}

// translate maps Postgres errors onto repository sentinel errors.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("db error: %w", err)
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		if pgErr.ConstraintName == "users_email_key" {
			return repository.ErrDuplicateEmail
		}
	case codeForeignKeyViolation, codeInvalidText:
		return repository.ErrNotFound
	case codeCheckViolation:
		if fe, ok := checkConstraints[pgErr.ConstraintName]; ok {
			return &repository.ValidationError{Fields: []repository.FieldError{fe}}
		}
		return &repository.ValidationError{Fields: []repository.FieldError{{Field: pgErr.ColumnName, Message: pgErr.Message}}}
	}
	return fmt.Errorf("db error: %w", err)
}
