package billing

import (
	"errors"
	"fmt"

	"github.com/dinelink/dinelink/internal/storage"
)

// Error taxonomy. Every error returned by Service wraps exactly one of these,
// so callers can classify with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrAccessDenied = errors.New("access denied")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidState = errors.New("invalid state")
	ErrStorage      = errors.New("storage error")
)

var classes = []error{ErrNotFound, ErrAccessDenied, ErrUnauthorized, ErrInvalidInput, ErrInvalidState, ErrStorage}

// classified reports whether err already carries a taxonomy error.
func classified(err error) bool {
	for _, c := range classes {
		if errors.Is(err, c) {
			return true
		}
	}
	return false
}

// storageError classifies an error returned by the store. Missing rows
// become ErrNotFound; everything else is passed through as ErrStorage.
func storageError(op string, err error) error {
	if classified(err) {
		return err
	}
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
