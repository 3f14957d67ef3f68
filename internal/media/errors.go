package media

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an object is not in the store.
	ErrNotFound = errors.New("object not found")

	// ErrInvalidKey is returned for empty keys or path traversal attempts.
	ErrInvalidKey = errors.New("invalid object key")

	// ErrAccessDenied is returned when the store refuses access.
	ErrAccessDenied = errors.New("access denied")
)

// StoreError wraps a store failure with the operation and key involved.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("media %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("media %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
