package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIdentityNotFound   = errors.New("token subject not found")
	ErrAuthBackend        = errors.New("failed to authenticate token")
)

// ValidationError is returned before any store call when input is unusable.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func requiredParam(name string) error {
	return &ValidationError{Message: name + " query parameter is required"}
}
