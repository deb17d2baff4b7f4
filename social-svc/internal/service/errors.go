package service

import (
	"errors"
	"fmt"

	"github.com/Densingh-123/Home-Services/docstore"
)

var (
	ErrNotFound        = errors.New("business not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrStore           = errors.New("store error")
)

// StoreError wraps a failure of the document store or another backing
// service. errors.Is(err, ErrStore) matches it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStore }

func storeError(op string, err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	}
	return &StoreError{Op: op, Err: err}
}

func invalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}
