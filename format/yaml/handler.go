// Package yaml provides the YAML format handler.
package yaml

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cfgkit/cfgkit/format"
	"github.com/cfgkit/cfgkit/value"
)

// Handler implements format.Handler for YAML documents.
type Handler struct{}

// New creates a new YAML handler.
func New() *Handler {
	return &Handler{}
}

// Decode reads YAML bytes into a configuration tree. Both decoding and
// encoding go through yaml.Node rather than map[string]any so that mapping
// key order survives the round trip.
func (h *Handler) Decode(data []byte) (*value.Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		// Empty document.
		return value.Null(), nil
	}
	return fromNode(root.Content[0])
}

func fromNode(n *yaml.Node) (*value.Value, error) {
	switch n.Kind {
	case yaml.MappingNode:
		m := value.NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			child, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key, child)
		}
		return m, nil
	case yaml.SequenceNode:
		seq := value.NewSequence()
		for _, item := range n.Content {
			child, err := fromNode(item)
			if err != nil {
				return nil, err
			}
			seq.Append(child)
		}
		return seq, nil
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.ScalarNode:
		return fromScalar(n)
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d", n.Kind)
	}
}

func fromScalar(n *yaml.Node) (*value.Value, error) {
	switch n.Tag {
	case "!!null":
		return value.Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(n.Value))
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q: %w", n.Value, err)
		}
		return value.Bool(b), nil
	case "!!int":
		// Base 0 handles the 0x/0o/0b prefixes YAML allows.
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid int %q: %w", n.Value, err)
		}
		return value.Int(i), nil
	case "!!float":
		switch strings.ToLower(n.Value) {
		case ".inf", "+.inf":
			return value.Float(math.Inf(1)), nil
		case "-.inf":
			return value.Float(math.Inf(-1)), nil
		case ".nan":
			return value.Float(math.NaN()), nil
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q: %w", n.Value, err)
		}
		return value.Float(f), nil
	default:
		// Strings, timestamps, and unresolved tags all become text.
		return value.Text(n.Value), nil
	}
}

// Encode writes the tree as a YAML document.
func (h *Handler) Encode(v *value.Value) ([]byte, error) {
	node, err := toNode(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("failed to serialize YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to serialize YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func toNode(v *value.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case value.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case value.KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.BoolVal())}, nil
	case value.KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.IntVal(), 10)}, nil
	case value.KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFloat(v.FloatVal())}, nil
	case value.KindText:
		// An explicit !!str tag makes the encoder quote strings that
		// would otherwise resolve to another type ("true", "42", ...).
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.TextVal()}, nil
	case value.KindSequence:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range v.Items() {
			child, err := toNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	case value.KindMapping:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range v.Keys() {
			child, _ := v.Get(k)
			childNode, err := toNode(child)
			if err != nil {
				return nil, err
			}
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
			n.Content = append(n.Content, keyNode, childNode)
		}
		return n, nil
	}
	return nil, fmt.Errorf("cannot encode %s as YAML", v.Kind())
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// Keep a float marker so the value does not resolve back to !!int.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Probe reports whether data is a plausible YAML document with a container
// root. Every plain-text file is a valid YAML scalar, so scalar documents
// are rejected here and handled by the plain-text fallback instead.
func (h *Handler) Probe(data []byte) bool {
	v, err := h.Decode(data)
	if err != nil {
		return false
	}
	return v.Kind() == value.KindMapping || v.Kind() == value.KindSequence
}

var (
	_ format.Handler = (*Handler)(nil)
	_ format.Prober  = (*Handler)(nil)
)
