package format

import (
	"bytes"
	"unicode/utf8"
)

// Sniff infers the most probable format of data. suffixHint is an optional
// filename suffix (".json", "yaml", ...); pass "" when none is available.
//
// Detection is a priority-ordered cascade:
//
//  1. Magic signatures. A registration with magic bytes matching a prefix
//     of data wins immediately; binary input must never reach the text
//     probes.
//  2. Suffix hint. A hint naming a registered format is a strong prior:
//     that format is probed first. It is not a verdict: a more
//     restrictive format whose strict parse also succeeds still wins, so
//     a JSON document named config.yaml sniffs as json.
//  3. Structural parses, most restrictive format first. The first
//     candidate whose strict probe accepts the full input wins.
//  4. Fallback: valid UTF-8 that parsed as nothing structured is text;
//     anything else is Unknown.
//
// Sniff itself never fails; Unknown is a valid terminal result the caller
// must handle.
func (r *Registry) Sniff(data []byte, suffixHint string) Format {
	for _, e := range r.entries {
		if len(e.Magic) > 0 && bytes.HasPrefix(data, e.Magic) {
			return e.Format
		}
	}

	hinted, hasHint := r.FormatForSuffix(suffixHint)
	if hasHint {
		if e := r.byFormat[hinted]; r.probe(e, data) {
			// Content is authoritative over naming: a stricter
			// candidate that also parses overrides the hint.
			for _, cand := range r.entries {
				if cand.Priority >= e.Priority {
					break
				}
				if r.probe(cand, data) {
					return cand.Format
				}
			}
			return hinted
		}
	}

	for _, e := range r.entries {
		if hasHint && e.Format == hinted {
			continue
		}
		if r.probe(e, data) {
			return e.Format
		}
	}

	if t, ok := r.byFormat[Text]; ok && t != nil && utf8.Valid(data) {
		return Text
	}
	return Unknown
}

// probe runs one cascade step for a registration. Magic-only formats are
// matched by signature; text formats use their Prober; everything else
// falls back to attempting a full decode.
func (r *Registry) probe(e *Registration, data []byte) bool {
	if e == nil {
		return false
	}
	if len(e.Magic) > 0 {
		return bytes.HasPrefix(data, e.Magic)
	}
	if p, ok := e.Handler.(Prober); ok {
		return p.Probe(data)
	}
	_, err := e.Handler.Decode(data)
	return err == nil
}
