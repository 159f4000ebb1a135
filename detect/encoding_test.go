package detect

import (
	"testing"
)

func TestDetectEncodingBOM(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"utf-8 bom", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, UTF8Sig},
		{"utf-16le bom", []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}, UTF16LE},
		{"utf-16be bom", []byte{0xFE, 0xFF, 0x00, 'h', 0x00, 'i'}, UTF16BE},
		{"utf-32le bom", []byte{0xFF, 0xFE, 0x00, 0x00, 'h', 0x00, 0x00, 0x00}, UTF32LE},
		{"utf-32be bom", []byte{0x00, 0x00, 0xFE, 0xFF, 0x00, 0x00, 0x00, 'h'}, UTF32BE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectEncoding(tt.data)
			if got.Name != tt.want {
				t.Errorf("DetectEncoding() = %s, want %s", got.Name, tt.want)
			}
			if got.Confidence != High {
				t.Errorf("Confidence = %s, want high", got.Confidence)
			}
		})
	}
}

// A byte-order-marked UTF-16LE sequence must always detect as UTF-16LE,
// whatever the content after the mark.
func TestDetectEncodingBOMWinsOverContent(t *testing.T) {
	data := append([]byte{0xFF, 0xFE}, []byte("this is otherwise plain ascii")...)
	got := DetectEncoding(data)
	if got.Name != UTF16LE || got.Confidence != High {
		t.Errorf("DetectEncoding() = %s (%s), want %s (high)", got.Name, got.Confidence, UTF16LE)
	}
}

func TestDetectEncodingHeuristics(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
		conf Confidence
	}{
		{"plain ascii", []byte("key = value\n"), UTF8, Medium},
		{"multibyte utf-8", []byte("caf\xc3\xa9"), UTF8, Medium},
		{"bom-less utf-16le", []byte{'{', 0x00, '}', 0x00}, UTF16LE, Medium},
		{"bom-less utf-16be", []byte{0x00, '{', 0x00, '}'}, UTF16BE, Medium},
		{"bom-less utf-32le", []byte{'{', 0x00, 0x00, 0x00}, UTF32LE, Medium},
		{"bom-less utf-32be", []byte{0x00, 0x00, 0x00, '{'}, UTF32BE, Medium},
		{"invalid utf-8 falls back", []byte{'a', 0xFF, 'b'}, Latin, Low},
		{"empty input", nil, UTF8, Medium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectEncoding(tt.data)
			if got.Name != tt.want {
				t.Errorf("DetectEncoding() = %s, want %s", got.Name, tt.want)
			}
			if got.Confidence != tt.conf {
				t.Errorf("Confidence = %s, want %s", got.Confidence, tt.conf)
			}
		})
	}
}

func TestDetectEncodingNeverFails(t *testing.T) {
	inputs := [][]byte{
		nil,
		{0x00},
		{0xFF},
		{0xFF, 0xFE},
		{0x00, 0x00, 0x00, 0x00},
		[]byte("ordinary text"),
	}
	for _, data := range inputs {
		got := DetectEncoding(data)
		if got.Name == "" {
			t.Errorf("DetectEncoding(% x) returned empty name", data)
		}
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		enc  string
		text string
	}{
		{"utf-8", UTF8, "hello = \"world\""},
		{"utf-16le", UTF16LE, "hello: world"},
		{"utf-16be", UTF16BE, "[section]\nkey = value"},
		{"windows-1252", Latin, "plain ascii only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, ok := Lookup(tt.enc)
			if !ok {
				t.Fatalf("Lookup(%s) failed", tt.enc)
			}
			raw, err := enc.Encode([]byte(tt.text))
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}

			detected := DetectEncoding(raw)
			decoded, err := detected.Decode(raw)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if string(decoded) != tt.text {
				t.Errorf("round trip = %q, want %q", decoded, tt.text)
			}
		})
	}
}

func TestLookupAliases(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"UTF-8", UTF8, true},
		{"utf8", UTF8, true},
		{"ascii", UTF8, true},
		{"UTF-16", UTF16LE, true},
		{"latin-1", Latin, true},
		{"cp1252", Latin, true},
		{"klingon", "", false},
	}

	for _, tt := range tests {
		enc, ok := Lookup(tt.in)
		if ok != tt.ok {
			t.Errorf("Lookup(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && enc.Name != tt.want {
			t.Errorf("Lookup(%q) = %s, want %s", tt.in, enc.Name, tt.want)
		}
	}
}
