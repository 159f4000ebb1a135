package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cfgkit/cfgkit/value"
)

// Registry maps format identifiers to handlers and sniffing metadata.
// The zero value is not usable; call NewRegistry.
type Registry struct {
	entries  []*Registration // sorted by Priority
	byFormat map[Format]*Registration
	bySuffix map[string]Format
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byFormat: make(map[Format]*Registration),
		bySuffix: make(map[string]Format),
	}
}

// Register adds a format to the registry. Registering an identifier twice
// or the Unknown identifier is an error. Suffixes claimed by an earlier
// registration are an error as well, since suffix lookup must be
// unambiguous.
func (r *Registry) Register(reg Registration) error {
	if reg.Format == Unknown || reg.Format == "" {
		return fmt.Errorf("invalid format identifier %q", reg.Format)
	}
	if reg.Handler == nil {
		return fmt.Errorf("format %s: nil handler", reg.Format)
	}
	if _, dup := r.byFormat[reg.Format]; dup {
		return fmt.Errorf("format %s already registered", reg.Format)
	}
	for _, s := range reg.Suffixes {
		if prev, taken := r.bySuffix[normalizeSuffix(s)]; taken {
			return fmt.Errorf("suffix %q already claimed by %s", s, prev)
		}
	}

	entry := reg
	r.byFormat[entry.Format] = &entry
	for _, s := range entry.Suffixes {
		r.bySuffix[normalizeSuffix(s)] = entry.Format
	}
	r.entries = append(r.entries, &entry)
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].Priority < r.entries[j].Priority
	})
	return nil
}

// Lookup returns the handler registered for f.
func (r *Registry) Lookup(f Format) (Handler, bool) {
	e, ok := r.byFormat[f]
	if !ok {
		return nil, false
	}
	return e.Handler, true
}

// Formats returns the registered identifiers in cascade order.
func (r *Registry) Formats() []Format {
	out := make([]Format, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Format
	}
	return out
}

// FormatForSuffix resolves a filename suffix (".yaml", "yml", ...) to a
// registered format.
func (r *Registry) FormatForSuffix(suffix string) (Format, bool) {
	f, ok := r.bySuffix[normalizeSuffix(suffix)]
	return f, ok
}

// Decode parses data as the given format. It returns ErrUnsupported for an
// unregistered identifier and a *DecodeError when the handler rejects the
// bytes.
func (r *Registry) Decode(f Format, data []byte) (*value.Value, error) {
	h, ok := r.Lookup(f)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, f)
	}
	v, err := h.Decode(data)
	if err != nil {
		return nil, &DecodeError{Format: f, Err: err}
	}
	return v, nil
}

// Encode serializes v as the given format. It returns ErrUnsupported for an
// unregistered identifier and an *EncodeError when the handler cannot
// represent the tree.
func (r *Registry) Encode(f Format, v *value.Value) ([]byte, error) {
	h, ok := r.Lookup(f)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, f)
	}
	data, err := h.Encode(v)
	if err != nil {
		return nil, &EncodeError{Format: f, Err: err}
	}
	return data, nil
}

func normalizeSuffix(s string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
}
