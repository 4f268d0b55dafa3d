package domain

import "errors"

var ErrPostNotFound = errors.New("post not found")
var ErrCommentNotFound = errors.New("comment not found")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("access denied")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Duplicate registrations map to 400 rather than 409: the client treats them
// as ordinary form validation failures.
var ErrUsernameTaken = errors.New("username already taken")
var ErrEmailTaken = errors.New("email already taken")

// ValidationError rejects malformed input with a human-readable reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// NewValidationError builds a ValidationError with the given reason.
func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}
