package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrNotExist is returned by Storage.Read when the key has never been written.
	ErrNotExist = errors.New("record does not exist")

	ErrValidation  = errors.New("invalid reminder")
	ErrNotFound    = errors.New("reminder not found")
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError reports a reminder rejected on Add or Update.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid reminder: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports a mutation that referenced an unknown ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("reminder %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PersistenceError wraps a failed durable read or write.
type PersistenceError struct {
	Op  string // "read" or "write"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
