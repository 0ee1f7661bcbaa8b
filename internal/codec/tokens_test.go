package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReaderRejectsInvalidUTF8NodeName(t *testing.T) {
	// Writer itself only ever emits valid node names, so a struct block
	// carrying an invalid UTF-8 BEGIN_NODE name has to be hand-built.
	badName := []byte{0xff, 0xfe, 0x00, 0x00}
	raw := make([]byte, 0, 4+len(badName)+4)
	raw = append(raw, 0, 0, 0, byte(TokenBeginNode))
	raw = append(raw, badName...)
	raw = append(raw, 0, 0, 0, byte(TokenEnd))

	r := NewReader(raw, 0, uint32(len(raw)), 0, 0)
	_, _, err := r.Next()
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	require.Equal(t, ErrUTF8, ce.Kind)
}

func TestLookupStringRejectsInvalidUTF8(t *testing.T) {
	strs := []byte{0xff, 0xfe, 0x00}
	raw := make([]byte, 0, 16)
	raw = append(raw, 0, 0, 0, byte(TokenProp))
	raw = append(raw, 0, 0, 0, 4) // length = 4
	raw = append(raw, 0, 0, 0, 0) // nameoff = 0
	raw = append(raw, 1, 2, 3, 4)

	r := NewReader(append(raw, strs...), 0, uint32(len(raw)), uint32(len(raw)), uint32(len(strs)))
	_, _, err := r.Next()
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	require.Equal(t, ErrUTF8, ce.Kind)
}
