// Package detect infers text encodings from raw bytes. Detection is
// best-effort and never fails: absence of evidence falls back to
// Windows-1252, under which every byte sequence decodes.
package detect

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Confidence grades how certain a detection result is.
type Confidence int

const (
	// Low means the fallback was used with no supporting evidence.
	Low Confidence = iota
	// Medium means a statistical or validity scan matched.
	Medium
	// High means an unambiguous byte-order mark was found.
	High
)

func (c Confidence) String() string {
	switch c {
	case High:
		return "high"
	case Medium:
		return "medium"
	default:
		return "low"
	}
}

// Encoding is a detection result: a label, a confidence grade, and the
// transformer needed to decode the bytes to UTF-8.
type Encoding struct {
	Name       string
	Confidence Confidence

	enc encoding.Encoding
}

// Canonical encoding labels returned by DetectEncoding.
const (
	UTF8    = "utf-8"
	UTF8Sig = "utf-8-sig" // UTF-8 with a leading byte-order mark
	UTF16LE = "utf-16le"
	UTF16BE = "utf-16be"
	UTF32LE = "utf-32le"
	UTF32BE = "utf-32be"
	Latin   = "windows-1252"
)

// bom associates a byte-order mark with an encoding label. UTF-32 entries
// must precede UTF-16 ones: the UTF-32LE mark begins with the UTF-16LE mark.
var boms = []struct {
	prefix []byte
	name   string
}{
	{[]byte{0xFF, 0xFE, 0x00, 0x00}, UTF32LE},
	{[]byte{0x00, 0x00, 0xFE, 0xFF}, UTF32BE},
	{[]byte{0xFF, 0xFE}, UTF16LE},
	{[]byte{0xFE, 0xFF}, UTF16BE},
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8Sig},
}

// DetectEncoding returns the most likely text encoding of data.
// The scan is side-effect-free and never fails; malformed input is itself
// evidence and selects the fallback rather than raising an error.
func DetectEncoding(data []byte) Encoding {
	for _, b := range boms {
		if bytes.HasPrefix(data, b.prefix) {
			return Encoding{Name: b.name, Confidence: High, enc: byName(b.name)}
		}
	}

	// BOM-less wide encodings show up as zero-byte patterns in the first
	// characters of any ASCII-led document (the usual case for config
	// files, whose first character is almost always ASCII).
	if name, ok := sniffZeroPattern(data); ok {
		return Encoding{Name: name, Confidence: Medium, enc: byName(name)}
	}

	if utf8.Valid(data) {
		return Encoding{Name: UTF8, Confidence: Medium, enc: byName(UTF8)}
	}

	return Encoding{Name: Latin, Confidence: Low, enc: byName(Latin)}
}

// sniffZeroPattern applies the zero-byte heuristics for BOM-less UTF-16 and
// UTF-32 input, assuming the first code point is ASCII and not NUL.
func sniffZeroPattern(data []byte) (string, bool) {
	if len(data) >= 4 {
		switch {
		case data[0] == 0 && data[1] == 0 && data[2] == 0 && data[3] != 0:
			return UTF32BE, true
		case data[0] != 0 && data[1] == 0 && data[2] == 0 && data[3] == 0:
			return UTF32LE, true
		}
	}
	if len(data) >= 2 {
		switch {
		case data[0] == 0 && data[1] != 0:
			return UTF16BE, true
		case data[0] != 0 && data[1] == 0:
			return UTF16LE, true
		}
	}
	return "", false
}

// Decode converts data to UTF-8 using the detected encoding, stripping any
// byte-order mark.
func (e Encoding) Decode(data []byte) ([]byte, error) {
	enc := e.enc
	if enc == nil {
		enc = byName(e.Name)
	}
	if enc == nil {
		enc = charmap.Windows1252
	}
	return enc.NewDecoder().Bytes(data)
}

// Lookup resolves an encoding label to the Encoding used to decode or
// re-encode bytes. Labels are matched case-insensitively and with or
// without hyphens (both "utf-8" and "UTF8" work).
func Lookup(name string) (Encoding, bool) {
	canonical := canonicalName(name)
	enc := byName(canonical)
	if enc == nil {
		return Encoding{}, false
	}
	return Encoding{Name: canonical, Confidence: High, enc: enc}, true
}

// Encode converts UTF-8 data into the target encoding.
func (e Encoding) Encode(data []byte) ([]byte, error) {
	enc := e.enc
	if enc == nil {
		enc = byName(e.Name)
	}
	if enc == nil {
		return data, nil
	}
	return enc.NewEncoder().Bytes(data)
}

func canonicalName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "_", "-")
	switch strings.ReplaceAll(n, "-", "") {
	case "utf8", "ascii", "usascii":
		return UTF8
	case "utf8sig", "utf8bom":
		return UTF8Sig
	case "utf16le", "utf16":
		return UTF16LE
	case "utf16be":
		return UTF16BE
	case "utf32le", "utf32":
		return UTF32LE
	case "utf32be":
		return UTF32BE
	case "windows1252", "cp1252", "latin1", "iso88591":
		return Latin
	}
	return n
}

func byName(name string) encoding.Encoding {
	switch name {
	case UTF8:
		return unicode.UTF8
	case UTF8Sig:
		return unicode.UTF8BOM
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case UTF32LE:
		return utf32.UTF32(utf32.LittleEndian, utf32.UseBOM)
	case UTF32BE:
		return utf32.UTF32(utf32.BigEndian, utf32.UseBOM)
	case Latin:
		return charmap.Windows1252
	}
	return nil
}
