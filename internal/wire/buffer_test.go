package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_ReservePlaceholderAndPatchLength(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Write([]byte{0x1e}))

	pos, err := w.ReservePlaceholder()
	require.NoError(t, err)
	assert.Equal(t, 1, pos)

	start := w.Position()
	require.NoError(t, w.Write([]byte("SELECT 1")))
	length := uint64(w.Position() - start)

	w.PatchLength(pos, length)

	want := []byte{0x1e, 0xFE, 8, 0, 0, 0, 0, 0, 0, 0}
	want = append(want, []byte("SELECT 1")...)
	assert.Equal(t, want, w.Bytes())
}

func TestWriter_TrimEnd(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Write([]byte("hello world")))
	w.TrimEnd(6)
	assert.Equal(t, []byte("hello"), w.Bytes())
}

func TestWriter_TrimEnd_PanicsOnOverflow(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Write([]byte("hi")))
	assert.Panics(t, func() { w.TrimEnd(10) })
}

func TestWriter_Write_ErrBufferOverflow(t *testing.T) {
	w := &Writer{}
	big := make([]byte, MaxPayloadSize+1)
	assert.ErrorIs(t, w.Write(big), ErrBufferOverflow)
}

func TestWriter_SliceFrom_AliasesBuffer(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Write([]byte("abcdef")))
	slice := w.SliceFrom(2)
	slice[0] = 'X'
	assert.Equal(t, []byte("abXdef"), w.Bytes())
}
