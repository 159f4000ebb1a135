// Package value defines the in-memory configuration tree: a tagged union
// over null, booleans, numbers, text, sequences, and ordered mappings.
// The tree is a pure value structure with no back-references, so deep
// copies and structural comparison are straightforward.
package value

import (
	"fmt"
	"strconv"

	"github.com/iancoleman/orderedmap"
)

// Kind identifies the variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindText
	KindSequence
	KindMapping
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsNumber reports whether the kind is one of the numeric variants.
func (k Kind) IsNumber() bool {
	return k == KindInt || k == KindFloat
}

// Value is one node of a configuration tree.
// The zero value is Null.
type Value struct {
	kind  Kind
	boolv bool
	intv  int64
	flov  float64
	text  string
	seq   []*Value
	m     *orderedmap.OrderedMap // string -> *Value
}

// Null returns the null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) *Value {
	return &Value{kind: KindBool, boolv: b}
}

// Int returns an integer value.
func Int(i int64) *Value {
	return &Value{kind: KindInt, intv: i}
}

// Float returns a floating-point value.
func Float(f float64) *Value {
	return &Value{kind: KindFloat, flov: f}
}

// Text returns a text value.
func Text(s string) *Value {
	return &Value{kind: KindText, text: s}
}

// NewSequence returns a sequence holding the given items.
func NewSequence(items ...*Value) *Value {
	seq := make([]*Value, len(items))
	copy(seq, items)
	return &Value{kind: KindSequence, seq: seq}
}

// NewMapping returns an empty mapping. Keys keep insertion order.
func NewMapping() *Value {
	return &Value{kind: KindMapping, m: orderedmap.New()}
}

// Kind returns the variant held by v.
func (v *Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is the null value.
func (v *Value) IsNull() bool {
	return v.kind == KindNull
}

// BoolVal returns the boolean payload. Valid only for KindBool.
func (v *Value) BoolVal() bool { return v.boolv }

// IntVal returns the integer payload. Valid only for KindInt.
func (v *Value) IntVal() int64 { return v.intv }

// FloatVal returns the float payload. Valid only for KindFloat.
func (v *Value) FloatVal() float64 { return v.flov }

// TextVal returns the text payload. Valid only for KindText.
func (v *Value) TextVal() string { return v.text }

// Len returns the number of items in a sequence or keys in a mapping,
// and 0 for scalars.
func (v *Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindMapping:
		return len(v.m.Keys())
	default:
		return 0
	}
}

// At returns the sequence item at index i.
// It returns false if v is not a sequence or i is out of range.
func (v *Value) At(i int) (*Value, bool) {
	if v.kind != KindSequence || i < 0 || i >= len(v.seq) {
		return nil, false
	}
	return v.seq[i], true
}

// SetAt replaces the sequence item at index i.
// Index len(seq) appends. Returns false for other out-of-range indices.
func (v *Value) SetAt(i int, item *Value) bool {
	if v.kind != KindSequence || i < 0 || i > len(v.seq) {
		return false
	}
	if i == len(v.seq) {
		v.seq = append(v.seq, item)
		return true
	}
	v.seq[i] = item
	return true
}

// Append adds items to the end of a sequence.
func (v *Value) Append(items ...*Value) {
	if v.kind == KindSequence {
		v.seq = append(v.seq, items...)
	}
}

// RemoveAt deletes the sequence item at index i, shifting later items down.
func (v *Value) RemoveAt(i int) bool {
	if v.kind != KindSequence || i < 0 || i >= len(v.seq) {
		return false
	}
	v.seq = append(v.seq[:i], v.seq[i+1:]...)
	return true
}

// Items returns the backing slice of a sequence. Callers must not modify it.
func (v *Value) Items() []*Value {
	if v.kind != KindSequence {
		return nil
	}
	return v.seq
}

// Keys returns mapping keys in insertion order.
func (v *Value) Keys() []string {
	if v.kind != KindMapping {
		return nil
	}
	return v.m.Keys()
}

// Get returns the mapping entry for key.
func (v *Value) Get(key string) (*Value, bool) {
	if v.kind != KindMapping {
		return nil, false
	}
	raw, ok := v.m.Get(key)
	if !ok {
		return nil, false
	}
	return raw.(*Value), true
}

// Set stores a mapping entry, appending the key if it is new.
func (v *Value) Set(key string, val *Value) {
	if v.kind == KindMapping {
		v.m.Set(key, val)
	}
}

// Delete removes a mapping entry. It returns whether the key existed.
func (v *Value) Delete(key string) bool {
	if v.kind != KindMapping {
		return false
	}
	if _, ok := v.m.Get(key); !ok {
		return false
	}
	v.m.Delete(key)
	return true
}

// Clone returns a deep copy of v. Scalars are copied by value; sequences
// and mappings are copied recursively.
func (v *Value) Clone() *Value {
	switch v.kind {
	case KindSequence:
		out := make([]*Value, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Clone()
		}
		return &Value{kind: KindSequence, seq: out}
	case KindMapping:
		out := NewMapping()
		for _, k := range v.m.Keys() {
			child, _ := v.Get(k)
			out.Set(k, child.Clone())
		}
		return out
	default:
		c := *v
		return &c
	}
}

// Equal reports deep structural equality. Kinds must match exactly:
// Int(1) and Float(1) are not equal, which keeps diffs deterministic.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolv == other.boolv
	case KindInt:
		return v.intv == other.intv
	case KindFloat:
		return v.flov == other.flov
	case KindText:
		return v.text == other.text
	case KindSequence:
		if len(v.seq) != len(other.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(other.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		ka, kb := v.m.Keys(), other.m.Keys()
		if len(ka) != len(kb) {
			return false
		}
		for i, k := range ka {
			if kb[i] != k {
				return false
			}
			va, _ := v.Get(k)
			vb, _ := other.Get(k)
			if !va.Equal(vb) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders a compact single-line representation, mainly for
// diagnostics and diff output.
func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.boolv)
	case KindInt:
		return strconv.FormatInt(v.intv, 10)
	case KindFloat:
		return strconv.FormatFloat(v.flov, 'g', -1, 64)
	case KindText:
		return strconv.Quote(v.text)
	case KindSequence:
		s := "["
		for i, item := range v.seq {
			if i > 0 {
				s += ", "
			}
			s += item.String()
		}
		return s + "]"
	case KindMapping:
		s := "{"
		for i, k := range v.m.Keys() {
			if i > 0 {
				s += ", "
			}
			child, _ := v.Get(k)
			s += strconv.Quote(k) + ": " + child.String()
		}
		return s + "}"
	}
	return "<invalid>"
}
