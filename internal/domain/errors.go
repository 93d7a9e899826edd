package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials indicates that a submitted email/password pair is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering with an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrMFARequired indicates the account needs a second factor before a session is issued.
	ErrMFARequired = errors.New("mfa verification required")
	// ErrStorageUnavailable wraps failures of the underlying store.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError reports a missing or malformed input field. Caller's fault,
// never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ReferentialError reports an attempt to create or modify an entity against a
// reference that does not resolve, e.g. an objective pointing at a missing project.
type ReferentialError struct {
	Entity string
	Field  string
	ID     string
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("%s references unknown %s %s", e.Entity, e.Field, e.ID)
}

// IsNotFound reports whether err is a NotFoundError anywhere in its chain.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
