package cfgkit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cfgkit/cfgkit/detect"
	"github.com/cfgkit/cfgkit/format"
	"github.com/cfgkit/cfgkit/track"
	"github.com/cfgkit/cfgkit/value"
)

// Document is a parsed configuration tree plus its provenance: the format
// it was decoded from, the file it came from, and the text encoding that
// was detected or requested. Mutate the tree through Track rather than
// directly, so edits stay diffable.
type Document struct {
	Value    *value.Value
	Format   format.Format
	Path     string
	Encoding string
}

// Track wraps the document's tree for change-tracked editing. The wrapper
// and the document share the tree; take the snapshot before editing.
func (d *Document) Track() *track.Wrapper {
	return track.New(d.Value)
}

// Encode serializes the document in its own format. Documents with no
// known format (programmatically wrapped trees) encode as JSON, the
// most portable of the supported formats.
func (d *Document) Encode() ([]byte, error) {
	return d.encodeAs(d.effectiveFormat(""))
}

// Save writes the document to path, or to its own Path when path is "".
// The target filename's suffix picks the output format when it names one;
// otherwise the document's format is kept. Text output is re-encoded into
// the document's original encoding.
func (d *Document) Save(path string) error {
	if path == "" {
		path = d.Path
	}
	if path == "" {
		return fmt.Errorf("no file path: document was not loaded from a file and none was given")
	}

	f := d.effectiveFormat(filepath.Ext(path))
	data, err := d.encodeAs(f)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	logger().Info("saved config", "path", path, "format", string(f))
	return nil
}

// effectiveFormat resolves the output format: target suffix first, then
// the document's own format, then JSON.
func (d *Document) effectiveFormat(suffix string) format.Format {
	if suffix != "" {
		if f, ok := defaultRegistry.FormatForSuffix(suffix); ok {
			return f
		}
	}
	if d.Format != "" && d.Format != format.Unknown {
		return d.Format
	}
	return format.JSON
}

func (d *Document) encodeAs(f format.Format) ([]byte, error) {
	data, err := defaultRegistry.Encode(f, d.Value)
	if err != nil {
		return nil, err
	}

	// Binary output and UTF-8 text need no transcoding.
	if f == format.Binary || d.Encoding == "" || d.Encoding == detect.UTF8 {
		return data, nil
	}
	enc, ok := detect.Lookup(d.Encoding)
	if !ok {
		return nil, fmt.Errorf("unknown encoding %q", d.Encoding)
	}
	out, err := enc.Encode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode as %s: %w", enc.Name, err)
	}
	return out, nil
}
