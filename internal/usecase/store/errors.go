package store

import (
	"errors"
	"fmt"

	"usecase-assistant/pkg/platform/sentinel"
)

var (
	// ErrNotFound reports that no record exists for an identifier. It wraps
	// sentinel.ErrNotFound so either can be used with errors.Is.
	ErrNotFound = fmt.Errorf("use case %w", sentinel.ErrNotFound)

	// ErrInvalidID rejects identifiers that cannot be mapped to a file name
	// inside the storage directory.
	ErrInvalidID = errors.New("invalid use case id")
)

// Op names the store operation that failed.
type Op string

const (
	OpInit    Op = "init"
	OpSave    Op = "save"
	OpLoad    Op = "load"
	OpLoadAll Op = "load_all"
	OpDelete  Op = "delete"
)

// Error is a storage failure. It always names the operation and the target;
// ID is empty for directory-level operations. Err carries the cause, which
// may be ErrNotFound, an fs error, or a serializer error.
type Error struct {
	Op   Op
	ID   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case errors.Is(e.Err, ErrNotFound):
		return fmt.Sprintf("%s: use case not found: %s", e.Op, e.ID)
	case e.ID != "":
		return fmt.Sprintf("%s use case %s (%s): %v", e.Op, e.ID, e.Path, e.Err)
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}
