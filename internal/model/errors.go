package model

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by the services matches one of these
// with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrInvalidState       = errors.New("invalid state")
)

// Lookup and session errors
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidSession = errors.New("invalid or expired session")
)

// State errors
var (
	ErrGameOver         = fmt.Errorf("%w: game is already won", ErrInvalidState)
	ErrNoGameInProgress = fmt.Errorf("%w: no game in progress", ErrInvalidState)
	ErrNotSignedIn      = fmt.Errorf("%w: not signed in", ErrInvalidState)
)

// ValidationError describes input rejected before any store call
type ValidationError struct {
	Code   string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Is makes every ValidationError match ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validation errors
var (
	ErrMissingCredentials = &ValidationError{Code: "missing_credentials", Reason: "username and password are required"}
	ErrUsernameTooShort   = &ValidationError{Code: "username_too_short", Reason: fmt.Sprintf("username must be at least %d characters", MinUsernameLength)}
	ErrPasswordTooShort   = &ValidationError{Code: "password_too_short", Reason: fmt.Sprintf("password must be at least %d characters", MinPasswordLength)}
	ErrPasswordTooLong    = &ValidationError{Code: "password_too_long", Reason: fmt.Sprintf("password must be at most %d bytes", MaxPasswordLength)}
	ErrPasswordMismatch   = &ValidationError{Code: "password_mismatch", Reason: "passwords do not match"}

	ErrInvalidOrder     = &ValidationError{Code: "invalid_order", Reason: "minimum must be less than maximum"}
	ErrRangeTooSmall    = &ValidationError{Code: "range_too_small", Reason: fmt.Sprintf("range must span at least %d numbers", MinRangeSpan)}
	ErrTargetOutOfRange = &ValidationError{Code: "target_out_of_range", Reason: "target is outside the range"}
	ErrInvalidGuess     = &ValidationError{Code: "invalid_guess", Reason: "guess must be a whole number"}
	ErrInvalidLimit     = &ValidationError{Code: "invalid_limit", Reason: "limit must be positive"}
	ErrInvalidAttempts  = &ValidationError{Code: "invalid_attempts", Reason: "attempts must be positive"}
)
