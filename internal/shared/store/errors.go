// Package store classifies persistence failures so handlers can tell
// domain outcomes apart from infrastructure faults.
package store

import "errors"

// ErrUnavailable reports that the backing store could not serve the
// operation. The driver cause stays attached for logs but its message
// never reaches a response body.
var ErrUnavailable = errors.New("store unavailable")

type unavailableError struct {
	cause error
}

func (e *unavailableError) Error() string { return ErrUnavailable.Error() }

func (e *unavailableError) Unwrap() error { return e.cause }

func (e *unavailableError) Is(target error) bool { return target == ErrUnavailable }

// Unavailable wraps an unexpected driver or connection error. Domain
// sentinels must be mapped before reaching it.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	return &unavailableError{cause: err}
}
