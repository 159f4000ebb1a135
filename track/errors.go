package track

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get for a path with no value. Set and Delete
// are tolerant and never return it.
var ErrNotFound = errors.New("path not found")

// ErrTypeMismatch is returned when a typed view or a path operation meets
// a node of the wrong shape.
var ErrTypeMismatch = errors.New("type mismatch")

func notFound(p Path) error {
	return fmt.Errorf("%w: %s", ErrNotFound, p)
}

func typeMismatch(p Path, want, got string) error {
	return fmt.Errorf("%w at %s: want %s, got %s", ErrTypeMismatch, p, want, got)
}
