// Package ini provides the INI format handler.
//
// INI documents map onto a two-level tree: {"section": {"key": "value"}}.
// Keys outside any section live under the empty section name "". All
// scalar values decode as text and are stringified on encode; null
// round-trips as the empty string. These are the format's documented
// round-trip limitations.
//
// INI output is not always sniffable back to INI: when every value in a
// document is also a valid TOML scalar (numbers, booleans, quoted
// strings), the bytes parse under both grammars and the sniffing cascade
// awards them to TOML, the stricter of the two. Documents with at least
// one bare string value sniff as INI.
package ini

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/ini.v1"

	"github.com/cfgkit/cfgkit/format"
	"github.com/cfgkit/cfgkit/value"
)

// Handler implements format.Handler for INI documents.
type Handler struct{}

// New creates a new INI handler.
func New() *Handler {
	return &Handler{}
}

// Decode reads INI bytes into a two-level mapping tree.
func (h *Handler) Decode(data []byte) (*value.Value, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse INI: %w", err)
	}

	root := value.NewMapping()
	for _, section := range cfg.Sections() {
		name := section.Name()
		if name == ini.DefaultSection {
			name = ""
		}

		sectionMap := value.NewMapping()
		for _, key := range section.Keys() {
			sectionMap.Set(key.Name(), value.Text(key.Value()))
		}

		// Skip an empty global section; named sections stay even when
		// empty so the structure round-trips.
		if sectionMap.Len() > 0 || name != "" {
			root.Set(name, sectionMap)
		}
	}
	return root, nil
}

// Encode writes the tree as INI. The root must be a mapping of mappings;
// deeper nesting and sequences cannot be represented.
func (h *Handler) Encode(v *value.Value) ([]byte, error) {
	if v.Kind() != value.KindMapping {
		return nil, fmt.Errorf("INI documents must have a mapping root, got %s", v.Kind())
	}

	cfg := ini.Empty()
	for _, name := range v.Keys() {
		sectionVal, _ := v.Get(name)
		if sectionVal.Kind() != value.KindMapping {
			return nil, fmt.Errorf("INI section %q must be a mapping, got %s", name, sectionVal.Kind())
		}

		var section *ini.Section
		if name == "" {
			section = cfg.Section(ini.DefaultSection)
		} else {
			var err error
			section, err = cfg.NewSection(name)
			if err != nil {
				return nil, fmt.Errorf("failed to create section %q: %w", name, err)
			}
		}

		for _, keyName := range sectionVal.Keys() {
			keyVal, _ := sectionVal.Get(keyName)
			strVal, err := scalarString(keyVal)
			if err != nil {
				return nil, fmt.Errorf("section %q, key %q: %w", name, keyName, err)
			}
			if _, err := section.NewKey(keyName, strVal); err != nil {
				return nil, fmt.Errorf("failed to create key %q: %w", keyName, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize INI: %w", err)
	}
	return buf.Bytes(), nil
}

// scalarString renders a scalar as its INI string form.
func scalarString(v *value.Value) (string, error) {
	switch v.Kind() {
	case value.KindNull:
		return "", nil
	case value.KindBool:
		return strconv.FormatBool(v.BoolVal()), nil
	case value.KindInt:
		return strconv.FormatInt(v.IntVal(), 10), nil
	case value.KindFloat:
		return strconv.FormatFloat(v.FloatVal(), 'g', -1, 64), nil
	case value.KindText:
		return v.TextVal(), nil
	default:
		return "", fmt.Errorf("cannot represent %s in INI", v.Kind())
	}
}

// Probe reports whether data is a plausible INI document. At least one
// explicit [section] header is required: the parser here tolerates global
// keys, but "a: b" lines without a header are indistinguishable from a
// YAML block mapping, and header-less key/value text is far more likely to
// be one of the later cascade candidates.
func (h *Handler) Probe(data []byte) bool {
	cfg, err := ini.Load(data)
	if err != nil {
		return false
	}
	for _, section := range cfg.Sections() {
		if section.Name() != ini.DefaultSection {
			return true
		}
	}
	return false
}

var (
	_ format.Handler = (*Handler)(nil)
	_ format.Prober  = (*Handler)(nil)
)
