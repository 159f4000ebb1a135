package format

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned when the registry has no entry for a
// requested format identifier.
var ErrUnsupported = errors.New("unsupported format")

// DecodeError wraps a handler's parse failure with the format it belongs to.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError wraps a handler's serialization failure with the format it
// belongs to.
type EncodeError struct {
	Format Format
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
