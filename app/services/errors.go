package services

import "fmt"

// ValidationError rejects bad input before any state changes: an empty
// cart at checkout, an anonymous actor, a negative quantity.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthorizationError rejects an operation the actor's role does not allow.
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }

// Authorizationf builds an AuthorizationError from a format string.
func Authorizationf(format string, args ...interface{}) error {
	return &AuthorizationError{Msg: fmt.Sprintf(format, args...)}
}

// PersistenceError wraps a repository read or write failure. The wrapped
// cause stays reachable through errors.Unwrap.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err as a PersistenceError for the given operation.
func Persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// MalformedStateError marks a stored snapshot that failed shape validation.
// The cart store recovers from it internally by resetting to empty; it
// never crosses the cart boundary.
type MalformedStateError struct {
	Key string
	Err error
}

func (e *MalformedStateError) Error() string {
	return fmt.Sprintf("malformed state at %q: %v", e.Key, e.Err)
}

func (e *MalformedStateError) Unwrap() error { return e.Err }
