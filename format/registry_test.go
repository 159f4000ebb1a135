package format

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfgkit/cfgkit/value"
)

// stubHandler accepts input beginning with its tag byte.
type stubHandler struct {
	tag       byte
	encodeOut []byte
}

func (s *stubHandler) Decode(data []byte) (*value.Value, error) {
	if len(data) == 0 || data[0] != s.tag {
		return nil, fmt.Errorf("not a %q document", s.tag)
	}
	return value.Text(string(data)), nil
}

func (s *stubHandler) Encode(v *value.Value) ([]byte, error) {
	return s.encodeOut, nil
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Registration{
		Format:   "alpha",
		Handler:  &stubHandler{tag: 'a'},
		Priority: 10,
		Suffixes: []string{".alpha", "al"},
	}))

	assert.Error(t, r.Register(Registration{Format: "alpha", Handler: &stubHandler{}}),
		"duplicate format must be rejected")
	assert.Error(t, r.Register(Registration{Format: Unknown, Handler: &stubHandler{}}),
		"the unknown identifier is reserved")
	assert.Error(t, r.Register(Registration{Format: "beta", Handler: nil}),
		"nil handler must be rejected")
	assert.Error(t, r.Register(Registration{
		Format: "beta", Handler: &stubHandler{}, Suffixes: []string{"ALPHA"},
	}), "suffix collisions must be rejected")

	f, ok := r.FormatForSuffix(".AL")
	require.True(t, ok)
	assert.Equal(t, Format("alpha"), f)
}

func TestRegistryCascadeOrder(t *testing.T) {
	r := NewRegistry()
	// Register out of order; Formats() must come back sorted by priority.
	require.NoError(t, r.Register(Registration{Format: "loose", Handler: &stubHandler{tag: 'x'}, Priority: 30}))
	require.NoError(t, r.Register(Registration{Format: "strict", Handler: &stubHandler{tag: 'x'}, Priority: 10}))
	require.NoError(t, r.Register(Registration{Format: "middle", Handler: &stubHandler{tag: 'y'}, Priority: 20}))

	assert.Equal(t, []Format{"strict", "middle", "loose"}, r.Formats())

	// Both strict and loose accept 'x'; the stricter one wins.
	assert.Equal(t, Format("strict"), r.Sniff([]byte("x data"), ""))
	assert.Equal(t, Format("middle"), r.Sniff([]byte("y data"), ""))
}

func TestRegistryDecodeErrors(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Registration{Format: "alpha", Handler: &stubHandler{tag: 'a'}}))

	_, err := r.Decode("nope", []byte("a"))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = r.Decode("alpha", []byte("zzz"))
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, Format("alpha"), decodeErr.Format)

	_, err = r.Encode("nope", value.Null())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestSniffMagicFirst(t *testing.T) {
	r := NewRegistry()
	magic := []byte{0xC1, 'T', 'S', 'T'}
	require.NoError(t, r.Register(Registration{Format: "bin", Handler: &stubHandler{}, Magic: magic}))
	require.NoError(t, r.Register(Registration{Format: "greedy", Handler: &stubHandler{tag: 0xC1}, Priority: 10}))

	data := append(append([]byte{}, magic...), 'p', 'a', 'y', 'l', 'o', 'a', 'd')
	assert.Equal(t, Format("bin"), r.Sniff(data, ""),
		"magic signatures must win before any structural probe")
}

func TestSniffHintIsPriorNotVerdict(t *testing.T) {
	r := NewRegistry()
	// "both" accepts 'x' input; so does "strict", which is more restrictive.
	require.NoError(t, r.Register(Registration{Format: "strict", Handler: &stubHandler{tag: 'x'}, Priority: 10, Suffixes: []string{".st"}}))
	require.NoError(t, r.Register(Registration{Format: "both", Handler: &stubHandler{tag: 'x'}, Priority: 40, Suffixes: []string{".bo"}}))
	require.NoError(t, r.Register(Registration{Format: "other", Handler: &stubHandler{tag: 'o'}, Priority: 20, Suffixes: []string{".ot"}}))

	// Hint names the permissive format, content also satisfies the strict
	// one: content wins.
	assert.Equal(t, Format("strict"), r.Sniff([]byte("x doc"), ".bo"))
	// Hint names a format the content does not satisfy: normal cascade.
	assert.Equal(t, Format("other"), r.Sniff([]byte("o doc"), ".st"))
	// Hint agrees with content and nothing stricter matches: hint holds.
	assert.Equal(t, Format("other"), r.Sniff([]byte("o doc"), ".ot"))
	// Empty input matches nothing and there is no fallback entry.
	assert.Equal(t, Unknown, r.Sniff(nil, ".bo"))
}

func TestSniffUnknown(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Registration{Format: "alpha", Handler: &stubHandler{tag: 'a'}, Priority: 10}))

	// No text fallback is registered here, so unmatched input is unknown.
	assert.Equal(t, Unknown, r.Sniff([]byte("zzz"), ""))
}
