// Package cfgkit reads, writes, and interactively edits structured
// configuration files without knowing their format in advance. Formats
// and text encodings are sniffed from content; loaded documents can be
// wrapped for change-tracked editing and saved back in any supported
// format.
package cfgkit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/cfgkit/cfgkit/detect"
	"github.com/cfgkit/cfgkit/format"
	"github.com/cfgkit/cfgkit/format/binary"
	"github.com/cfgkit/cfgkit/format/ini"
	"github.com/cfgkit/cfgkit/format/json"
	"github.com/cfgkit/cfgkit/format/text"
	"github.com/cfgkit/cfgkit/format/toml"
	"github.com/cfgkit/cfgkit/format/yaml"
	"github.com/cfgkit/cfgkit/value"
)

// ErrUnknownFormat is returned when sniffing cannot classify the input and
// auto-loading therefore refuses to guess.
var ErrUnknownFormat = errors.New("unable to determine config format")

// DefaultRegistry returns a registry with every built-in format wired into
// its cascade slot. Priorities run from most to least syntactically
// restrictive so the sniffer tries strict parsers first.
//
// Known sniffing overlap: INI and TOML share the [section] plus key=value
// surface syntax, so INI output whose values are all TOML-parseable
// scalars (numbers, booleans, quoted strings) sniffs as toml. A bare
// string value, which TOML rejects, keeps such a document on the INI side.
func DefaultRegistry() *format.Registry {
	r := format.NewRegistry()
	register := func(reg format.Registration) {
		if err := r.Register(reg); err != nil {
			panic(fmt.Sprintf("cfgkit: default registry: %v", err))
		}
	}

	register(format.Registration{
		Format:   format.Binary,
		Handler:  binary.New(),
		Magic:    binary.Magic,
		Suffixes: []string{".bin", ".msgpack"},
	})
	register(format.Registration{
		Format:   format.JSON,
		Handler:  json.New(),
		Priority: 10,
		Suffixes: []string{".json"},
	})
	register(format.Registration{
		Format:   format.TOML,
		Handler:  toml.New(),
		Priority: 20,
		Suffixes: []string{".toml"},
	})
	register(format.Registration{
		Format:   format.INI,
		Handler:  ini.New(),
		Priority: 30,
		Suffixes: []string{".ini", ".cfg", ".conf"},
	})
	register(format.Registration{
		Format:   format.YAML,
		Handler:  yaml.New(),
		Priority: 40,
		Suffixes: []string{".yaml", ".yml"},
	})
	register(format.Registration{
		Format:   format.Text,
		Handler:  text.New(),
		Priority: 90,
		Suffixes: []string{".txt", ".text"},
	})
	return r
}

var defaultRegistry = DefaultRegistry()

// Registry returns the shared default registry.
func Registry() *format.Registry {
	return defaultRegistry
}

// Decode auto-detects the encoding and format of raw bytes and parses them
// into a Document. suffixHint is an optional filename suffix used as a
// sniffing prior; pass "" when none is available. Returns ErrUnknownFormat
// when no candidate is plausible.
func Decode(data []byte, suffixHint string) (*Document, error) {
	// Binary signatures are checked against the raw bytes: transcoding
	// binary data would destroy it.
	if f := defaultRegistry.Sniff(data, ""); f == format.Binary {
		v, err := defaultRegistry.Decode(f, data)
		if err != nil {
			return nil, err
		}
		return &Document{Value: v, Format: f}, nil
	}

	enc := detect.DetectEncoding(data)
	decoded, err := enc.Decode(data)
	if err != nil {
		// Detection never picks an encoding the input violates, but a
		// truncated multi-byte tail can still fail here.
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
	}

	f := defaultRegistry.Sniff(decoded, suffixHint)
	if f == format.Unknown {
		return nil, ErrUnknownFormat
	}
	// The 8-bit fallback encoding decodes any byte sequence, so input that
	// was not valid text to begin with and parsed as nothing structured is
	// unknown, not mojibake plain text.
	if f == format.Text && enc.Confidence == detect.Low && !utf8.Valid(data) {
		return nil, ErrUnknownFormat
	}
	v, err := defaultRegistry.Decode(f, decoded)
	if err != nil {
		return nil, err
	}
	logger().V(1).Info("decoded config", "format", string(f), "encoding", enc.Name, "confidence", enc.Confidence.String())
	return &Document{Value: v, Format: f, Encoding: enc.Name}, nil
}

// Load reads and auto-detects a config file. The filename suffix serves as
// the sniffing prior; content still wins when they disagree.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	doc, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Path = path
	logger().Info("loaded config", "path", path, "format", string(doc.Format))
	return doc, nil
}

// Wrap builds a Document around an in-memory tree with no provenance.
func Wrap(v *value.Value) *Document {
	if v == nil {
		v = value.Null()
	}
	return &Document{Value: v, Format: format.Unknown}
}
