package value

// Template describes the shape a configuration tree must have. Scalar
// templates compare by equality, kind, or an arbitrary predicate;
// container templates recurse pairwise and require an exact length, with
// mapping keys matched in order. Templates are matched with Match and can
// be nested freely.
type Template struct {
	match func(*Value) bool
}

// Any matches every value.
func Any() *Template {
	return &Template{match: func(v *Value) bool { return v != nil }}
}

// Exact matches values structurally equal to v.
func Exact(v *Value) *Template {
	return &Template{match: func(x *Value) bool { return x.Equal(v) }}
}

// OfKind matches any value of the given kind.
func OfKind(k Kind) *Template {
	return &Template{match: func(v *Value) bool { return v != nil && v.Kind() == k }}
}

// AnyNumber matches both integer and float values.
func AnyNumber() *Template {
	return &Template{match: func(v *Value) bool { return v != nil && v.Kind().IsNumber() }}
}

// Check matches values the predicate accepts.
func Check(pred func(*Value) bool) *Template {
	return &Template{match: func(v *Value) bool { return v != nil && pred(v) }}
}

// SequenceOf matches a sequence of exactly len(items) elements, each
// matching the template at its position.
func SequenceOf(items ...*Template) *Template {
	return &Template{match: func(v *Value) bool {
		if v == nil || v.Kind() != KindSequence || v.Len() != len(items) {
			return false
		}
		for i, t := range items {
			item, _ := v.At(i)
			if !t.Match(item) {
				return false
			}
		}
		return true
	}}
}

// Entry pairs a mapping key with the template its value must satisfy.
type Entry struct {
	Key   string
	Value *Template
}

// MappingOf matches a mapping holding exactly the given keys in the given
// order, each value matching its template. A nil entry template matches
// any value.
func MappingOf(entries ...Entry) *Template {
	return &Template{match: func(v *Value) bool {
		if v == nil || v.Kind() != KindMapping {
			return false
		}
		keys := v.Keys()
		if len(keys) != len(entries) {
			return false
		}
		for i, e := range entries {
			if keys[i] != e.Key {
				return false
			}
			child, _ := v.Get(e.Key)
			if e.Value != nil && !e.Value.Match(child) {
				return false
			}
		}
		return true
	}}
}

// Match reports whether v satisfies the template.
func (t *Template) Match(v *Value) bool {
	if t == nil || t.match == nil {
		return false
	}
	return t.match(v)
}
