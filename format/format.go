// Package format provides the serialization registry and the format
// sniffer for structured configuration data. Each supported format
// registers a decode/encode pair together with its place in the sniffing
// cascade; the registry dispatches by identifier and the sniffer picks the
// most probable format for raw bytes.
package format

import "github.com/cfgkit/cfgkit/value"

// Format identifies a serialization format.
type Format string

// Built-in format identifiers.
const (
	JSON   Format = "json"
	YAML   Format = "yaml"
	TOML   Format = "toml"
	INI    Format = "ini"
	Binary Format = "binary"
	Text   Format = "text"

	// Unknown is the sniffer's terminal result when no candidate is
	// plausible. It is never a registered format.
	Unknown Format = "unknown"
)

// Handler decodes bytes into a configuration tree and encodes a tree back
// to bytes. Text-based handlers receive and produce UTF-8; any transcoding
// happens in the caller before bytes reach a handler.
type Handler interface {
	Decode(data []byte) (*value.Value, error)
	Encode(v *value.Value) ([]byte, error)
}

// Prober is an optional Handler extension used by the sniffer. Probe
// reports whether data is a plausible document of the handler's format
// under a strict reading. Handlers that do not implement Prober are probed
// by attempting a full Decode.
type Prober interface {
	Probe(data []byte) bool
}

// Registration ties a format identifier to its handler and describes how
// the sniffer should treat it.
type Registration struct {
	Format  Format
	Handler Handler

	// Priority orders the structural-parse cascade from most restrictive
	// (lowest) to most permissive. Formats overlap syntactically, so the
	// restrictive parser must run first: JSON before YAML, for instance,
	// since every JSON document is also valid YAML.
	Priority int

	// Magic, when non-empty, is a byte signature that classifies input
	// immediately, before any text-level probing. Used by binary formats.
	Magic []byte

	// Suffixes lists filename suffixes (with or without the leading dot)
	// that act as a prior during sniffing and drive format selection when
	// saving to a named file.
	Suffixes []string
}
