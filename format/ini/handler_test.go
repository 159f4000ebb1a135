package ini

import (
	"strings"
	"testing"

	"github.com/cfgkit/cfgkit/value"
)

func TestHandler_Decode(t *testing.T) {
	h := New()

	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, v *value.Value)
	}{
		{
			name:  "sections and keys",
			input: "[server]\nhost = localhost\nport = 8080\n\n[client]\nretries = 3\n",
			check: func(t *testing.T, v *value.Value) {
				server, ok := v.Get("server")
				if !ok {
					t.Fatalf("no server section: %v", v)
				}
				host, _ := server.Get("host")
				if host.Kind() != value.KindText || host.TextVal() != "localhost" {
					t.Errorf("host = %v (%v)", host, host.Kind())
				}
				// INI values always decode as text.
				port, _ := server.Get("port")
				if port.Kind() != value.KindText || port.TextVal() != "8080" {
					t.Errorf("port = %v (%v)", port, port.Kind())
				}
			},
		},
		{
			name:  "global keys live under empty section",
			input: "top = 1\n\n[s]\nk = v\n",
			check: func(t *testing.T, v *value.Value) {
				global, ok := v.Get("")
				if !ok {
					t.Fatalf("no global section: %v", v)
				}
				top, _ := global.Get("top")
				if top.TextVal() != "1" {
					t.Errorf("top = %v", top)
				}
			},
		},
		{
			name:  "section order preserved",
			input: "[zz]\na=1\n[aa]\nb=2\n",
			check: func(t *testing.T, v *value.Value) {
				keys := v.Keys()
				if len(keys) != 2 || keys[0] != "zz" || keys[1] != "aa" {
					t.Errorf("Keys() = %v, want [zz aa]", keys)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := h.Decode([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.check != nil {
				tt.check(t, v)
			}
		})
	}
}

func TestHandler_RoundTrip(t *testing.T) {
	h := New()

	root := value.NewMapping()
	server := value.NewMapping()
	server.Set("host", value.Text("localhost"))
	server.Set("port", value.Int(8080))   // stringified on encode
	server.Set("debug", value.Bool(true)) // stringified on encode
	server.Set("note", value.Null())      // becomes empty string
	root.Set("server", server)

	data, err := h.Encode(root)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	back, err := h.Decode(data)
	if err != nil {
		t.Fatalf("Decode(%q) error: %v", data, err)
	}

	section, _ := back.Get("server")
	want := map[string]string{"host": "localhost", "port": "8080", "debug": "true", "note": ""}
	for k, wantVal := range want {
		got, ok := section.Get(k)
		if !ok || got.TextVal() != wantVal {
			t.Errorf("server.%s = %v, want %q", k, got, wantVal)
		}
	}
}

func TestHandler_EncodeRejections(t *testing.T) {
	h := New()

	if _, err := h.Encode(value.Text("scalar root")); err == nil {
		t.Error("Encode() with scalar root should fail")
	}

	root := value.NewMapping()
	root.Set("section", value.Text("not a mapping"))
	if _, err := h.Encode(root); err == nil {
		t.Error("Encode() with scalar section should fail")
	}

	nested := value.NewMapping()
	inner := value.NewMapping()
	inner.Set("list", value.NewSequence(value.Int(1)))
	nested.Set("s", inner)
	if _, err := h.Encode(nested); err == nil {
		t.Error("Encode() with a sequence value should fail")
	}
	if _, err := h.Encode(nested); err != nil && !strings.Contains(err.Error(), "sequence") {
		// The error should name the offending shape.
		t.Logf("error: %v", err)
	}
}

func TestHandler_Probe(t *testing.T) {
	h := New()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"with section header", "[s]\nk = v\n", true},
		{"header-less keys", "a = 1\nb = 2\n", false},
		{"yaml-style mapping", "a: 1\nb: 2\n", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.Probe([]byte(tt.input)); got != tt.want {
				t.Errorf("Probe(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
