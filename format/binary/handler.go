// Package binary provides the binary object-serialization handler.
//
// Documents are a fixed magic header followed by a MessagePack payload.
// The header starts with 0xC1, the one byte the MessagePack encoding
// reserves and never emits, so the signature cannot collide with a plain
// MessagePack stream or any UTF-8 text. Mapping key order is carried in
// the payload, so round trips are exact for every tree shape.
package binary

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/cfgkit/cfgkit/format"
	"github.com/cfgkit/cfgkit/value"
)

// Magic is the format signature written before the payload.
var Magic = []byte{0xC1, 'C', 'F', 'G', 0x01}

// Handler implements format.Handler for the binary format.
type Handler struct{}

// New creates a new binary handler.
func New() *Handler {
	return &Handler{}
}

// wireValue is the self-describing payload shape. Mappings use parallel
// key/value slices to keep insertion order.
type wireValue struct {
	Kind  uint8       `msgpack:"k"`
	Bool  bool        `msgpack:"b,omitempty"`
	Int   int64       `msgpack:"i,omitempty"`
	Float float64     `msgpack:"f,omitempty"`
	Text  string      `msgpack:"t,omitempty"`
	Items []wireValue `msgpack:"s,omitempty"`
	Keys  []string    `msgpack:"mk,omitempty"`
	Vals  []wireValue `msgpack:"mv,omitempty"`
}

const (
	wireNull uint8 = iota
	wireBool
	wireInt
	wireFloat
	wireText
	wireSequence
	wireMapping
)

// Decode reads a magic-prefixed MessagePack payload into a tree.
func (h *Handler) Decode(data []byte) (*value.Value, error) {
	if !bytes.HasPrefix(data, Magic) {
		return nil, fmt.Errorf("missing binary format signature")
	}

	var wire wireValue
	if err := msgpack.Unmarshal(data[len(Magic):], &wire); err != nil {
		return nil, fmt.Errorf("failed to parse binary payload: %w", err)
	}
	return fromWire(wire)
}

// Encode writes the tree as a magic-prefixed MessagePack payload.
func (h *Handler) Encode(v *value.Value) ([]byte, error) {
	payload, err := msgpack.Marshal(toWire(v))
	if err != nil {
		return nil, fmt.Errorf("failed to serialize binary payload: %w", err)
	}
	out := make([]byte, 0, len(Magic)+len(payload))
	out = append(out, Magic...)
	return append(out, payload...), nil
}

func toWire(v *value.Value) wireValue {
	switch v.Kind() {
	case value.KindBool:
		return wireValue{Kind: wireBool, Bool: v.BoolVal()}
	case value.KindInt:
		return wireValue{Kind: wireInt, Int: v.IntVal()}
	case value.KindFloat:
		return wireValue{Kind: wireFloat, Float: v.FloatVal()}
	case value.KindText:
		return wireValue{Kind: wireText, Text: v.TextVal()}
	case value.KindSequence:
		w := wireValue{Kind: wireSequence}
		for _, item := range v.Items() {
			w.Items = append(w.Items, toWire(item))
		}
		return w
	case value.KindMapping:
		w := wireValue{Kind: wireMapping}
		for _, k := range v.Keys() {
			child, _ := v.Get(k)
			w.Keys = append(w.Keys, k)
			w.Vals = append(w.Vals, toWire(child))
		}
		return w
	default:
		return wireValue{Kind: wireNull}
	}
}

func fromWire(w wireValue) (*value.Value, error) {
	switch w.Kind {
	case wireNull:
		return value.Null(), nil
	case wireBool:
		return value.Bool(w.Bool), nil
	case wireInt:
		return value.Int(w.Int), nil
	case wireFloat:
		return value.Float(w.Float), nil
	case wireText:
		return value.Text(w.Text), nil
	case wireSequence:
		seq := value.NewSequence()
		for _, item := range w.Items {
			child, err := fromWire(item)
			if err != nil {
				return nil, err
			}
			seq.Append(child)
		}
		return seq, nil
	case wireMapping:
		if len(w.Keys) != len(w.Vals) {
			return nil, fmt.Errorf("corrupt mapping: %d keys, %d values", len(w.Keys), len(w.Vals))
		}
		m := value.NewMapping()
		for i, k := range w.Keys {
			child, err := fromWire(w.Vals[i])
			if err != nil {
				return nil, err
			}
			m.Set(k, child)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown wire kind %d", w.Kind)
	}
}

var _ format.Handler = (*Handler)(nil)
