package models

import (
	"errors"
	"fmt"
)

// Failure kinds returned by stores and services. Handlers never see raw driver
// errors; everything is typed with one of these before it crosses the boundary.
var (
	ErrNotFound          = errors.New("not found")
	ErrOwnershipMismatch = errors.New("ownership mismatch")
	ErrValidation        = errors.New("validation failed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrPersistence       = errors.New("persistence failure")
)

// PartialWriteError marks a multi-step operation that committed its first write
// but failed on a later one, leaving the tattoo and user stores diverged. It is
// kept distinct from a clean failure so operators can trigger reconciliation.
type PartialWriteError struct {
	Op  string
	Err error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("%s: stores diverged after first write: %v", e.Op, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
