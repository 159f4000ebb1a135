package track

import (
	"fmt"

	"github.com/cfgkit/cfgkit/value"
)

// Op classifies one structural change.
type Op int

const (
	OpAdded Op = iota
	OpRemoved
	OpModified
)

func (o Op) String() string {
	switch o {
	case OpAdded:
		return "added"
	case OpRemoved:
		return "removed"
	case OpModified:
		return "modified"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Change describes one difference at a path: a value only in the current
// tree (Added), only in the baseline (Removed), or present in both with
// different content (Modified). Old and New are the baseline and current
// subtrees; Added has no Old, Removed has no New.
type Change struct {
	Op   Op
	Path Path
	Old  *value.Value
	New  *value.Value
}

// String renders the change on one line for logs and CLI output.
func (c Change) String() string {
	switch c.Op {
	case OpAdded:
		return fmt.Sprintf("added    %s = %s", c.Path, c.New)
	case OpRemoved:
		return fmt.Sprintf("removed  %s (was %s)", c.Path, c.Old)
	default:
		return fmt.Sprintf("modified %s: %s -> %s", c.Path, c.Old, c.New)
	}
}

// Diff walks base and cur in lockstep and returns their differences in a
// deterministic order: within a mapping, Added and Modified entries follow
// the current tree's key order, then Removed entries follow the baseline's
// key order. Sequences compare index-wise; an index present on only one
// side is Added or Removed at that index. No list alignment is attempted,
// so a shifted sequence diffs as modifications, trading minimality for
// determinism.
func Diff(base, cur *value.Value) []Change {
	var out []Change
	diffValue(base, cur, nil, &out)
	return out
}

func diffValue(base, cur *value.Value, path Path, out *[]Change) {
	switch {
	case base.Kind() == value.KindMapping && cur.Kind() == value.KindMapping:
		diffMapping(base, cur, path, out)
	case base.Kind() == value.KindSequence && cur.Kind() == value.KindSequence:
		diffSequence(base, cur, path, out)
	default:
		if !base.Equal(cur) {
			*out = append(*out, Change{Op: OpModified, Path: path, Old: base, New: cur})
		}
	}
}

func diffMapping(base, cur *value.Value, path Path, out *[]Change) {
	for _, k := range cur.Keys() {
		curChild, _ := cur.Get(k)
		baseChild, inBase := base.Get(k)
		if !inBase {
			*out = append(*out, Change{Op: OpAdded, Path: path.Child(k), New: curChild})
			continue
		}
		diffValue(baseChild, curChild, path.Child(k), out)
	}
	for _, k := range base.Keys() {
		if _, inCur := cur.Get(k); !inCur {
			baseChild, _ := base.Get(k)
			*out = append(*out, Change{Op: OpRemoved, Path: path.Child(k), Old: baseChild})
		}
	}
}

func diffSequence(base, cur *value.Value, path Path, out *[]Change) {
	n := base.Len()
	if cur.Len() > n {
		n = cur.Len()
	}
	for i := 0; i < n; i++ {
		baseItem, inBase := base.At(i)
		curItem, inCur := cur.At(i)
		switch {
		case !inBase:
			*out = append(*out, Change{Op: OpAdded, Path: path.Index(i), New: curItem})
		case !inCur:
			*out = append(*out, Change{Op: OpRemoved, Path: path.Index(i), Old: baseItem})
		default:
			diffValue(baseItem, curItem, path.Index(i), out)
		}
	}
}
