package domain

import (
	"errors"
	"fmt"
)

// Authentication failure kinds. Match them with errors.Is on an *AuthError.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrRoleMismatch       = errors.New("role mismatch")
	ErrMissingFields      = errors.New("all fields are required")
	ErrUsernameTaken      = errors.New("username already taken")
)

var (
	ErrNoSession       = errors.New("no active session")
	ErrForbidden       = errors.New("access forbidden")
	ErrUserNotFound    = errors.New("user not found")
	ErrGroupNotFound   = errors.New("group not found")
	ErrRecordNotFound  = errors.New("progress record not found")
	ErrEmptyMessage    = errors.New("message needs content or an attachment")
	ErrInvalidRecord   = errors.New("invalid progress record")
	ErrCorruptDocument = errors.New("stored document is corrupt")
	ErrDocumentMissing = errors.New("stored document not found")
)

// AuthError is returned by login and signup. Kind is one of the Err* auth
// sentinels above.
type AuthError struct {
	Kind error
	// Role is the role the caller claimed, set for ErrRoleMismatch.
	Role Role
}

func NewAuthError(kind error) *AuthError {
	return &AuthError{Kind: kind}
}

// Error renders the message shown on the login screen.
func (e *AuthError) Error() string {
	switch e.Kind {
	case ErrInvalidCredentials:
		return "Invalid username or password"
	case ErrRoleMismatch:
		return fmt.Sprintf("This account is not registered as a %s.", e.Role.Label())
	case ErrMissingFields:
		return "All fields are required"
	case ErrUsernameTaken:
		return "Username already taken"
	default:
		return "authentication failed"
	}
}

func (e *AuthError) Unwrap() error {
	return e.Kind
}
