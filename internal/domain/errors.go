package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery signals a query that is empty or whitespace-only.
	ErrEmptyQuery = errors.New("empty query")
	// ErrNoDocuments signals a search against an empty document store.
	ErrNoDocuments = errors.New("no documents")
	// ErrDuplicateID signals a document id collision inside the store.
	ErrDuplicateID = errors.New("duplicate document id")
	// ErrSessionClosed signals a query submitted to a closed session.
	ErrSessionClosed = errors.New("session closed")
)

// DuplicateIDError wraps ErrDuplicateID with the offending id.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s: %q", ErrDuplicateID.Error(), e.ID)
}

func (e *DuplicateIDError) Unwrap() error { return ErrDuplicateID }

// NewDuplicateID creates a duplicate id error.
func NewDuplicateID(id string) error {
	return &DuplicateIDError{ID: id}
}
