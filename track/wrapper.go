package track

import (
	"github.com/cfgkit/cfgkit/value"
)

// Wrapper owns a live configuration tree and a frozen snapshot of it.
// Edits go through the wrapper; Diff compares the live tree against the
// snapshot. A Wrapper must not be shared across concurrent mutators
// without external synchronization.
type Wrapper struct {
	root *value.Value
	base *value.Value
}

// New wraps v and snapshots its current state as the diff baseline.
// The wrapper takes ownership of v.
func New(v *value.Value) *Wrapper {
	if v == nil {
		v = value.Null()
	}
	return &Wrapper{root: v, base: v.Clone()}
}

// Value returns the live tree.
func (w *Wrapper) Value() *value.Value {
	return w.root
}

// Get returns the node at path. It returns ErrNotFound for an absent path
// and ErrTypeMismatch when an intermediate node cannot be navigated into.
func (w *Wrapper) Get(path ...string) (*value.Value, error) {
	cur := w.root
	for i, segment := range path {
		switch cur.Kind() {
		case value.KindMapping:
			next, ok := cur.Get(segment)
			if !ok {
				return nil, notFound(Path(path[:i+1]))
			}
			cur = next
		case value.KindSequence:
			idx, ok := asIndex(segment)
			if !ok {
				return nil, typeMismatch(Path(path[:i+1]), "index", "key "+segment)
			}
			next, ok := cur.At(idx)
			if !ok {
				return nil, notFound(Path(path[:i+1]))
			}
			cur = next
		default:
			return nil, notFound(Path(path[:i+1]))
		}
	}
	return cur, nil
}

// Set stores v at path, creating intermediate mappings as needed. An
// existing scalar on the way is replaced by a mapping: the tree is
// advisory configuration data, so tolerant editing beats strict
// validation. Setting into a sequence requires a numeric segment; an
// index equal to the length appends, anything past that is an error.
// An empty path replaces the root.
func (w *Wrapper) Set(path Path, v *value.Value) error {
	if v == nil {
		v = value.Null()
	}
	if len(path) == 0 {
		w.root = v
		return nil
	}

	// Sequences cannot be created implicitly (a numeric segment is a
	// valid mapping key), so only an existing sequence is indexed.
	cur := w.root
	if cur.Kind() != value.KindMapping && cur.Kind() != value.KindSequence {
		cur = value.NewMapping()
		w.root = cur
	}

	for i, segment := range path[:len(path)-1] {
		next, err := stepInto(cur, segment, Path(path[:i+1]))
		if err != nil {
			return err
		}
		cur = next
	}

	last := path[len(path)-1]
	switch cur.Kind() {
	case value.KindMapping:
		cur.Set(last, v)
		return nil
	case value.KindSequence:
		idx, ok := asIndex(last)
		if !ok {
			return typeMismatch(path, "index", "key "+last)
		}
		if !cur.SetAt(idx, v) {
			return typeMismatch(path, "index <= length", last)
		}
		return nil
	default:
		// Unreachable: stepInto only returns containers.
		return typeMismatch(path, "container", cur.Kind().String())
	}
}

// stepInto resolves one intermediate segment for Set, creating or
// replacing nodes so the result is always a container.
func stepInto(cur *value.Value, segment string, at Path) (*value.Value, error) {
	switch cur.Kind() {
	case value.KindMapping:
		next, ok := cur.Get(segment)
		if !ok || (next.Kind() != value.KindMapping && next.Kind() != value.KindSequence) {
			next = value.NewMapping()
			cur.Set(segment, next)
		}
		return next, nil
	case value.KindSequence:
		idx, ok := asIndex(segment)
		if !ok {
			return nil, typeMismatch(at, "index", "key "+segment)
		}
		next, ok := cur.At(idx)
		if !ok {
			if idx != cur.Len() {
				return nil, typeMismatch(at, "index <= length", segment)
			}
			next = value.NewMapping()
			cur.Append(next)
			return next, nil
		}
		if next.Kind() != value.KindMapping && next.Kind() != value.KindSequence {
			next = value.NewMapping()
			cur.SetAt(idx, next)
		}
		return next, nil
	default:
		return nil, typeMismatch(at, "container", cur.Kind().String())
	}
}

// Delete removes the node at path. A path that does not resolve is a
// no-op, never an error.
func (w *Wrapper) Delete(path ...string) {
	if len(path) == 0 {
		w.root = value.Null()
		return
	}

	cur := w.root
	for _, segment := range path[:len(path)-1] {
		switch cur.Kind() {
		case value.KindMapping:
			next, ok := cur.Get(segment)
			if !ok {
				return
			}
			cur = next
		case value.KindSequence:
			idx, ok := asIndex(segment)
			if !ok {
				return
			}
			next, ok := cur.At(idx)
			if !ok {
				return
			}
			cur = next
		default:
			return
		}
	}

	last := path[len(path)-1]
	switch cur.Kind() {
	case value.KindMapping:
		cur.Delete(last)
	case value.KindSequence:
		if idx, ok := asIndex(last); ok {
			cur.RemoveAt(idx)
		}
	}
}

// Diff returns the ordered changes between the snapshot and the live tree.
func (w *Wrapper) Diff() []Change {
	return Diff(w.base, w.root)
}

// Rebase replaces the snapshot with a deep copy of the live tree, clearing
// all pending changes. Typical use is right after a save, so later diffs
// reflect only new edits.
func (w *Wrapper) Rebase() {
	w.base = w.root.Clone()
}

// Match reports whether the live tree satisfies the template.
func (w *Wrapper) Match(t *value.Template) bool {
	return t.Match(w.root)
}

// AsMapping returns the root as a mapping, or ErrTypeMismatch.
func (w *Wrapper) AsMapping() (*value.Value, error) {
	if w.root.Kind() != value.KindMapping {
		return nil, typeMismatch(nil, "mapping", w.root.Kind().String())
	}
	return w.root, nil
}

// AsSequence returns the root as a sequence, or ErrTypeMismatch.
func (w *Wrapper) AsSequence() (*value.Value, error) {
	if w.root.Kind() != value.KindSequence {
		return nil, typeMismatch(nil, "sequence", w.root.Kind().String())
	}
	return w.root, nil
}
