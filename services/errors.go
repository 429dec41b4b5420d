package services

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure a service surfaces wraps exactly one of these so
// handlers can branch with errors.Is: bad input, a write rejected because it
// would collide with existing data, an operation invalid for the entity's
// current state, or a missing live row. Failures are synchronous and never
// retried here.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrState      = errors.New("invalid state")
	ErrNotFound   = errors.New("not found")
)

func validationErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

func conflictErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrConflict}, args...)...)
}

func stateErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrState}, args...)...)
}

func notFoundErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}
