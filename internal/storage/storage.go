// Package storage holds the errors shared by every store implementation.
package storage

import "errors"

// Identity store errors.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateEmail  = errors.New("email already registered")
)

// Data store errors.
var (
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrInvalidStatus       = errors.New("invalid status")
)
