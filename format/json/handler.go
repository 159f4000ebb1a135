// Package json provides the JSON format handler.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/cfgkit/cfgkit/format"
	"github.com/cfgkit/cfgkit/value"
)

// Handler implements format.Handler for JSON documents.
type Handler struct{}

// New creates a new JSON handler.
func New() *Handler {
	return &Handler{}
}

// Decode reads JSON bytes into a configuration tree. Object key order from
// the document is preserved, which is why this walks the token stream
// instead of unmarshalling into a map. Numbers without a fraction or
// exponent decode as integers.
func (h *Handler) Decode(data []byte) (*value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	// The document must be a single value followed by end of input.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON document")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (*value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (*value.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := value.NewMapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("failed to parse JSON: %w", err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				child, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, child)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, fmt.Errorf("failed to parse JSON: %w", err)
			}
			return m, nil
		case '[':
			seq := value.NewSequence()
			for dec.More() {
				child, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				seq.Append(child)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, fmt.Errorf("failed to parse JSON: %w", err)
			}
			return seq, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return value.Text(t), nil
	case bool:
		return value.Bool(t), nil
	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return value.Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		return value.Float(f), nil
	case nil:
		return value.Null(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// Encode writes the tree as indented JSON with a trailing newline.
func (h *Handler) Encode(v *value.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v, 0); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

const indentUnit = "  "

func encodeValue(buf *bytes.Buffer, v *value.Value, depth int) error {
	switch v.Kind() {
	case value.KindNull:
		buf.WriteString("null")
	case value.KindBool:
		buf.WriteString(strconv.FormatBool(v.BoolVal()))
	case value.KindInt:
		buf.WriteString(strconv.FormatInt(v.IntVal(), 10))
	case value.KindFloat:
		f := v.FloatVal()
		data, err := json.Marshal(f)
		if err != nil {
			return fmt.Errorf("cannot encode float %v: %w", f, err)
		}
		buf.Write(data)
	case value.KindText:
		data, err := json.Marshal(v.TextVal())
		if err != nil {
			return err
		}
		buf.Write(data)
	case value.KindSequence:
		if v.Len() == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, item := range v.Items() {
			writeIndent(buf, depth+1)
			if err := encodeValue(buf, item, depth+1); err != nil {
				return err
			}
			if i < v.Len()-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte(']')
	case value.KindMapping:
		if v.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		keys := v.Keys()
		for i, k := range keys {
			writeIndent(buf, depth+1)
			keyData, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(keyData)
			buf.WriteString(": ")
			child, _ := v.Get(k)
			if err := encodeValue(buf, child, depth+1); err != nil {
				return err
			}
			if i < len(keys)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode %s as JSON", v.Kind())
	}
	return nil
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString(indentUnit)
	}
}

// Probe reports whether data is a plausible JSON document. Only container
// roots are accepted: a bare scalar like "123" is indistinguishable from
// plain text, so scalar documents fall through the sniffing cascade.
func (h *Handler) Probe(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return false
	}
	_, err := h.Decode(data)
	return err == nil
}

var (
	_ format.Handler = (*Handler)(nil)
	_ format.Prober  = (*Handler)(nil)
)
