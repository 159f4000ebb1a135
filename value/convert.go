package value

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/iancoleman/orderedmap"
)

// FromGo converts a plain Go value into a Value tree. It accepts the types
// produced by the stock decoders: nil, bool, integer and float variants,
// string, time.Time (rendered as RFC 3339 text), []any, map[string]any,
// ordered maps, and []map[string]any. Map iteration order for plain
// map[string]any is not defined, so prefer ordered maps when order matters.
func FromGo(raw any) (*Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case *Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return fromUint64(uint64(x))
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return fromUint64(x)
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case string:
		return Text(x), nil
	case time.Time:
		return Text(x.Format(time.RFC3339)), nil
	case []any:
		out := NewSequence()
		for _, item := range x {
			child, err := FromGo(item)
			if err != nil {
				return nil, err
			}
			out.Append(child)
		}
		return out, nil
	case []map[string]any:
		out := NewSequence()
		for _, item := range x {
			child, err := FromGo(item)
			if err != nil {
				return nil, err
			}
			out.Append(child)
		}
		return out, nil
	case map[string]any:
		out := NewMapping()
		for _, k := range sortedKeys(x) {
			child, err := FromGo(x[k])
			if err != nil {
				return nil, err
			}
			out.Set(k, child)
		}
		return out, nil
	case *orderedmap.OrderedMap:
		out := NewMapping()
		for _, k := range x.Keys() {
			raw, _ := x.Get(k)
			child, err := FromGo(raw)
			if err != nil {
				return nil, err
			}
			out.Set(k, child)
		}
		return out, nil
	case orderedmap.OrderedMap:
		return FromGo(&x)
	default:
		return nil, fmt.Errorf("cannot represent %T as a config value", raw)
	}
}

// Interface converts a Value tree back into plain Go values: nil, bool,
// int64, float64, string, []any, and map[string]any. Mapping key order is
// lost; use the tree directly when order matters.
func (v *Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.boolv
	case KindInt:
		return v.intv
	case KindFloat:
		return v.flov
	case KindText:
		return v.text
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Interface()
		}
		return out
	case KindMapping:
		out := make(map[string]any, v.Len())
		for _, k := range v.Keys() {
			child, _ := v.Get(k)
			out[k] = child.Interface()
		}
		return out
	}
	return nil
}

// fromUint64 converts an unsigned value, rejecting magnitudes the signed
// integer kind cannot hold rather than wrapping them negative.
func fromUint64(x uint64) (*Value, error) {
	if x > math.MaxInt64 {
		return nil, fmt.Errorf("integer %d overflows the representable range", x)
	}
	return Int(int64(x)), nil
}

// sortedKeys returns map keys sorted lexically. Insertion order is
// unavailable for plain maps, so sorting keeps conversion deterministic.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
