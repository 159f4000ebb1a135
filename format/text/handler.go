// Package text provides the plain-text format handler. A text document is
// a single text scalar holding the whole file; it is also the sniffing
// cascade's fallback for input that parses as nothing structured.
package text

import (
	"fmt"
	"unicode/utf8"

	"github.com/cfgkit/cfgkit/format"
	"github.com/cfgkit/cfgkit/value"
)

// Handler implements format.Handler for plain text.
type Handler struct{}

// New creates a new plain-text handler.
func New() *Handler {
	return &Handler{}
}

// Decode wraps the input in a text scalar.
func (h *Handler) Decode(data []byte) (*value.Value, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("input is not valid UTF-8 text")
	}
	return value.Text(string(data)), nil
}

// Encode writes a text root back out verbatim. Other tree shapes have no
// plain-text representation.
func (h *Handler) Encode(v *value.Value) ([]byte, error) {
	if v.Kind() != value.KindText {
		return nil, fmt.Errorf("plain text can only represent a text root, got %s", v.Kind())
	}
	return []byte(v.TextVal()), nil
}

// Probe accepts any valid UTF-8. Text sits last in the cascade, so this
// only triggers after every structured candidate has been ruled out.
func (h *Handler) Probe(data []byte) bool {
	return utf8.Valid(data)
}

var (
	_ format.Handler = (*Handler)(nil)
	_ format.Prober  = (*Handler)(nil)
)
