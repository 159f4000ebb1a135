// Package toml provides the TOML format handler.
package toml

import (
	"bytes"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/cfgkit/cfgkit/format"
	"github.com/cfgkit/cfgkit/value"
)

// Handler implements format.Handler for TOML documents.
type Handler struct{}

// New creates a new TOML handler.
func New() *Handler {
	return &Handler{}
}

// Decode reads TOML bytes into a configuration tree. The decoder's
// metadata supplies document key order, which the generic map loses.
// Datetimes become text in RFC 3339 form.
func (h *Handler) Decode(data []byte) (*value.Value, error) {
	var raw map[string]any
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return convertWithMeta(raw, meta, nil)
}

// convertWithMeta recursively converts the decoded map into a tree, using
// TOML metadata to recover key order.
func convertWithMeta(raw any, meta toml.MetaData, prefix []string) (*value.Value, error) {
	switch val := raw.(type) {
	case map[string]any:
		m := value.NewMapping()
		for _, k := range keysInOrder(meta, prefix, val) {
			child, err := convertWithMeta(val[k], meta, append(prefix, k))
			if err != nil {
				return nil, err
			}
			m.Set(k, child)
		}
		return m, nil
	case []map[string]any:
		// Array of tables.
		seq := value.NewSequence()
		for _, item := range val {
			child, err := convertWithMeta(item, meta, prefix)
			if err != nil {
				return nil, err
			}
			seq.Append(child)
		}
		return seq, nil
	case []any:
		seq := value.NewSequence()
		for _, item := range val {
			child, err := convertWithMeta(item, meta, prefix)
			if err != nil {
				return nil, err
			}
			seq.Append(child)
		}
		return seq, nil
	case time.Time:
		return value.Text(val.Format(time.RFC3339)), nil
	default:
		return value.FromGo(val)
	}
}

// keysInOrder returns map keys in document order using TOML metadata.
func keysInOrder(meta toml.MetaData, prefix []string, m map[string]any) []string {
	needed := make(map[string]bool, len(m))
	for k := range m {
		needed[k] = true
	}

	var ordered []string
	seen := make(map[string]bool, len(m))
	for _, key := range meta.Keys() {
		if len(key) != len(prefix)+1 || !matchesPrefix(key, prefix) {
			continue
		}
		k := key[len(prefix)]
		if needed[k] && !seen[k] {
			ordered = append(ordered, k)
			seen[k] = true
		}
	}

	// Keys missing from metadata should not happen, but be safe.
	for k := range needed {
		if !seen[k] {
			ordered = append(ordered, k)
		}
	}
	return ordered
}

func matchesPrefix(key toml.Key, prefix []string) bool {
	if len(key) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if key[i] != p {
			return false
		}
	}
	return true
}

// Encode writes the tree as TOML. The root must be a mapping and the tree
// must not contain nulls: TOML has no null type, and silently dropping
// values would corrupt the round trip. Key order is not preserved on
// output; the encoder sorts keys.
func (h *Handler) Encode(v *value.Value) ([]byte, error) {
	if v.Kind() != value.KindMapping {
		return nil, fmt.Errorf("TOML documents must have a mapping root, got %s", v.Kind())
	}
	if p, found := findNull(v, nil); found {
		return nil, fmt.Errorf("TOML cannot represent null (at %v)", p)
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(v.Interface()); err != nil {
		return nil, fmt.Errorf("failed to serialize TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// findNull locates the first null in the tree, returning its path.
func findNull(v *value.Value, path []string) ([]string, bool) {
	switch v.Kind() {
	case value.KindNull:
		return path, true
	case value.KindMapping:
		for _, k := range v.Keys() {
			child, _ := v.Get(k)
			if p, found := findNull(child, append(path, k)); found {
				return p, true
			}
		}
	case value.KindSequence:
		for i, item := range v.Items() {
			if p, found := findNull(item, append(path, fmt.Sprintf("%d", i))); found {
				return p, true
			}
		}
	}
	return nil, false
}

// Probe reports whether data is a plausible non-empty TOML document.
// Empty input technically parses as TOML but carries no structural
// evidence, so it falls through to the plain-text fallback.
func (h *Handler) Probe(data []byte) bool {
	if len(bytes.TrimSpace(data)) == 0 {
		return false
	}
	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return false
	}
	return len(raw) > 0
}

var (
	_ format.Handler = (*Handler)(nil)
	_ format.Prober  = (*Handler)(nil)
)
