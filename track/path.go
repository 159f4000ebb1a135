// Package track wraps a configuration tree together with a frozen
// baseline snapshot, providing path-addressed editing and a structural
// diff of everything changed since the snapshot was taken.
package track

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Path addresses a node in a configuration tree as a sequence of segments
// from the root. Mapping segments are keys; sequence segments are decimal
// indices.
type Path []string

// ParsePath parses a path from either a JSON array of strings
// (`["server", "port"]`) or a dotted form (`server.port`). The empty
// string is the root path.
func ParsePath(s string) (Path, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var segments []string
		if err := json.Unmarshal([]byte(trimmed), &segments); err != nil {
			return nil, fmt.Errorf("invalid path array: %w", err)
		}
		return Path(segments), nil
	}
	return Path(strings.Split(trimmed, ".")), nil
}

// Child returns a new path extended by one mapping key.
func (p Path) Child(key string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, key)
}

// Index returns a new path extended by one sequence index.
func (p Path) Index(i int) Path {
	return p.Child(strconv.Itoa(i))
}

// String returns the path as a JSON array of segments, the canonical form
// used in errors and diff rendering.
func (p Path) String() string {
	if len(p) == 0 {
		return "[]"
	}
	data, _ := json.Marshal([]string(p))
	return string(data)
}

// asIndex interprets a segment as a sequence index.
func asIndex(segment string) (int, bool) {
	i, err := strconv.Atoi(segment)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}
