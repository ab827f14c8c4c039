package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSubredditNotFound  = errors.New("subreddit not found")
	ErrInvalidCredentials = errors.New("invalid client id or secret")
	ErrCancelled          = errors.New("cancelled by user")
	ErrProfileExists      = errors.New("profile already exists")
)

// ValidationError reports operator input that must be re-entered.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// AuthError is returned when the authentication probe fails for any reason.
type AuthError struct {
	Cause error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvalidCredentials, e.Cause)
}

func (e *AuthError) Unwrap() []error {
	return []error{ErrInvalidCredentials, e.Cause}
}

// ProbeError is any non-NotFound failure while checking or fetching a subreddit.
type ProbeError struct {
	Subreddit string
	Cause     error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe r/%s: %v", e.Subreddit, e.Cause)
}

func (e *ProbeError) Unwrap() error {
	return e.Cause
}
