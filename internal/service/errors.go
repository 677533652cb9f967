package service

import "errors"

var (
	// ErrInvalidCredentials covers unknown usernames and wrong passwords
	// alike, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrNotFound covers resources that are absent or not owned by the
	// caller; the two are deliberately conflated.
	ErrNotFound = errors.New("not_found")

	// ErrValidation is wrapped with a field-level detail message.
	ErrValidation = errors.New("validation_error")
)
