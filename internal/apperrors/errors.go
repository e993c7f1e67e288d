package apperrors

import (
	"errors"
)

var (
	ErrTutorAlreadyExists = errors.New("tutor already exists")
	ErrTutorNotFound      = errors.New("tutor not found")

	ErrHashingFailed      = errors.New("hashing failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is wrong")

	ErrInvalidToken = errors.New("invalid or expired token")
)

// Password policy violation
// Message is safe to show to the user as is
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
