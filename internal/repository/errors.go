package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a lookup whose id matched no row. Absence is a normal
// outcome; callers check with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrInvalid marks input rejected before any write was issued.
var ErrInvalid = errors.New("invalid input")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}
