package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure the identity core returns wraps exactly one of
// these, so callers classify with errors.Is(err, domain.ErrValidation) and
// the transport layer maps kinds to status codes.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

var (
	ErrInvalidEmail       = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrNameTooShort       = fmt.Errorf("%w: name must be at least 2 characters", ErrValidation)
	ErrPasswordTooShort   = fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	ErrMissingUserID      = fmt.Errorf("%w: user id is required", ErrValidation)
	ErrMissingCredentials = fmt.Errorf("%w: email and password are required", ErrValidation)
	ErrEmptyClaim         = fmt.Errorf("%w: token claim must not be empty", ErrValidation)

	ErrUserAlreadyExists = fmt.Errorf("%w: a user with this email already exists", ErrConflict)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrTokenInvalid       = fmt.Errorf("%w: token invalid", ErrUnauthorized)

	ErrUserNotFound    = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrServiceNotFound = fmt.Errorf("%w: service not found", ErrNotFound)
)
