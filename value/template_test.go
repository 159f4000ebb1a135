package value

import (
	"strings"
	"testing"
)

func TestTemplateScalars(t *testing.T) {
	tests := []struct {
		name string
		tmpl *Template
		v    *Value
		want bool
	}{
		{"exact match", Exact(Int(3)), Int(3), true},
		{"exact mismatch", Exact(Int(3)), Int(4), false},
		{"exact kind mismatch", Exact(Int(1)), Float(1), false},
		{"kind wildcard", OfKind(KindText), Text("anything"), true},
		{"kind wildcard mismatch", OfKind(KindText), Int(1), false},
		{"any", Any(), Null(), true},
		{"number int", AnyNumber(), Int(1), true},
		{"number float", AnyNumber(), Float(0.5), true},
		{"number mismatch", AnyNumber(), Text("1"), false},
		{"predicate", Check(func(v *Value) bool {
			return v.Kind() == KindText && strings.HasPrefix(v.TextVal(), "svc-")
		}), Text("svc-web"), true},
		{"predicate mismatch", Check(func(v *Value) bool {
			return v.Kind() == KindText && strings.HasPrefix(v.TextVal(), "svc-")
		}), Text("web"), false},
		{"nil template", nil, Int(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tmpl.Match(tt.v); got != tt.want {
				t.Errorf("Match(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestTemplateContainers(t *testing.T) {
	server := NewMapping()
	server.Set("host", Text("localhost"))
	server.Set("port", Int(8080))
	root := NewMapping()
	root.Set("server", server)
	root.Set("tags", NewSequence(Text("a"), Text("b")))

	tmpl := MappingOf(
		Entry{"server", MappingOf(
			Entry{"host", OfKind(KindText)},
			Entry{"port", AnyNumber()},
		)},
		Entry{"tags", SequenceOf(OfKind(KindText), OfKind(KindText))},
	)
	if !tmpl.Match(root) {
		t.Fatal("template should match the tree")
	}

	// A missing key fails: lengths must agree.
	short := MappingOf(Entry{"server", Any()})
	if short.Match(root) {
		t.Error("template with fewer keys should not match")
	}

	// Key order is part of the shape.
	reordered := MappingOf(Entry{"tags", Any()}, Entry{"server", Any()})
	if reordered.Match(root) {
		t.Error("template with reordered keys should not match")
	}

	// Sequence length must agree.
	if SequenceOf(OfKind(KindText)).Match(NewSequence(Text("a"), Text("b"))) {
		t.Error("one-element sequence template should not match two elements")
	}

	// A nil entry template is a wildcard.
	wild := MappingOf(Entry{"server", nil}, Entry{"tags", nil})
	if !wild.Match(root) {
		t.Error("nil entry templates should match any value")
	}

	// Container templates reject scalars.
	if tmpl.Match(Text("not a mapping")) {
		t.Error("mapping template should not match a scalar")
	}
}
