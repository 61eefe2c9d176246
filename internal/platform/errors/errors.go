package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrMissingCredential   = errors.New("missing credential")
)
