package state

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIndex means a caller passed an index outside the current
	// buttons or events. Nothing is mutated.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrMinButtons is returned when removing a button would leave none.
	ErrMinButtons = errors.New("at least one button is required")

	// ErrNothingToRestore is returned by RestoreHistory when no cleared
	// history is held.
	ErrNothingToRestore = errors.New("no cleared history to restore")

	// ErrMalformedData marks a stored value that could not be decoded. The
	// affected key loads as empty.
	ErrMalformedData = errors.New("malformed persisted data")

	// ErrStorageUnavailable marks a failed read or write. In-memory state is
	// kept and the error is surfaced as a notice.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// MalformedDataError reports which key failed to decode.
type MalformedDataError struct {
	Key string
	Err error
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("malformed %s: %v", e.Key, e.Err)
}

func (e *MalformedDataError) Unwrap() []error {
	return []error{ErrMalformedData, e.Err}
}

func invalidIndex(kind string, index, length int) error {
	return fmt.Errorf("%w: %s %d (have %d)", ErrInvalidIndex, kind, index, length)
}

func storageError(op, key string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrStorageUnavailable, op, key, err)
}
