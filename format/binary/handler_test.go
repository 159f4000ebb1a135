package binary

import (
	"bytes"
	"testing"

	"github.com/cfgkit/cfgkit/value"
)

func TestHandler_RoundTrip(t *testing.T) {
	h := New()

	tests := []struct {
		name string
		v    *value.Value
	}{
		{"null", value.Null()},
		{"bool", value.Bool(true)},
		{"int", value.Int(-42)},
		{"float", value.Float(3.25)},
		{"text", value.Text("héllo\x00world")},
		{"empty mapping", value.NewMapping()},
		{"nested", func() *value.Value {
			m := value.NewMapping()
			m.Set("z", value.Int(1))
			m.Set("a", value.NewSequence(value.Null(), value.Text("x")))
			inner := value.NewMapping()
			inner.Set("deep", value.Float(0.5))
			m.Set("inner", inner)
			return m
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := h.Encode(tt.v)
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			if !bytes.HasPrefix(data, Magic) {
				t.Fatalf("output missing magic header: % x", data[:5])
			}

			back, err := h.Decode(data)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if !back.Equal(tt.v) {
				t.Errorf("round trip mismatch:\n in: %v\nout: %v", tt.v, back)
			}
		})
	}
}

func TestHandler_KeyOrderSurvives(t *testing.T) {
	h := New()
	m := value.NewMapping()
	for _, k := range []string{"zz", "aa", "mm"} {
		m.Set(k, value.Int(1))
	}

	data, err := h.Encode(m)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	back, err := h.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	keys := back.Keys()
	if keys[0] != "zz" || keys[1] != "aa" || keys[2] != "mm" {
		t.Errorf("Keys() = %v, want [zz aa mm]", keys)
	}
}

func TestHandler_DecodeRejections(t *testing.T) {
	h := New()

	if _, err := h.Decode([]byte(`{"a": 1}`)); err == nil {
		t.Error("Decode() without magic should fail")
	}
	if _, err := h.Decode(append(append([]byte{}, Magic...), 0xFF, 0xFF)); err == nil {
		t.Error("Decode() with corrupt payload should fail")
	}
}
