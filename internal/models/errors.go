package models

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError reports a draft or field that fails a structural or
// unit-policy check. Nothing is mutated when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an operation against an entity that no longer
// exists.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ConflictError reports an attempt to create an entity that must be
// unique, such as a second profile.
type ConflictError struct {
	Reason string
}

func (e ConflictError) Error() string { return e.Reason }

// StorageError wraps a persistence failure. The enclosing transaction
// has been rolled back by the time the caller sees it.
type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e StorageError) Unwrap() error { return e.Err }
