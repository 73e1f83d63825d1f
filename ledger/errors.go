package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrEmptyName        = errors.New("customer name is required")
	ErrDuplicateName    = errors.New("customer already exists")
	ErrInvalidInput     = errors.New("invalid input")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrWorkNotFound     = errors.New("work item not found")
	ErrRemote           = errors.New("remote persistence failed")
	ErrNothingToExport  = errors.New("nothing to export")
)

// ValidationError reports input that was missing or out of range. No mutation
// was applied.
type ValidationError struct {
	Field  string
	Reason error // ErrEmptyName, ErrDuplicateName or ErrInvalidInput
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason.Error()
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Reason }

func invalid(field string) error {
	return &ValidationError{Field: field, Reason: ErrInvalidInput}
}

// Entity names the collection a NotFoundError refers to.
type Entity string

const (
	EntityCustomer Entity = "customer"
	EntityWork     Entity = "work item"
)

// NotFoundError reports a referenced id that is absent from the store.
type NotFoundError struct {
	Entity Entity
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// Is matches ErrCustomerNotFound or ErrWorkNotFound depending on the entity.
func (e *NotFoundError) Is(target error) bool {
	switch e.Entity {
	case EntityCustomer:
		return target == ErrCustomerNotFound
	case EntityWork:
		return target == ErrWorkNotFound
	}
	return false
}

// RemoteError reports that the remote collaborator did not confirm a
// mutation. The local store still holds the last known-good snapshot.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrRemote, e.Err)
}

func (e *RemoteError) Unwrap() []error { return []error{ErrRemote, e.Err} }
