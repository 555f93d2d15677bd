package service

import (
	"errors"

	"article-hub/internal/repository"
)

var (
	// ErrInvalidInput marks requests with missing or malformed fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrFileUnavailable is returned when an article's stored file cannot be read.
	ErrFileUnavailable = errors.New("article file unavailable")

	ErrNotFound = repository.ErrNotFound
	ErrConflict = repository.ErrConflict
)

func invalid(msg string) error {
	return &inputError{msg: msg}
}

type inputError struct {
	msg string
}

func (e *inputError) Error() string { return e.msg }

func (e *inputError) Unwrap() error { return ErrInvalidInput }
