// Package wire holds the low-level MySQL wire-protocol primitives shared by
// every payload creator: the growable writer buffer with deferred-length
// patching, length-encoded integer/string codecs, and the command opcodes.
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// MaxPayloadSize is the hard ceiling on a single Writer before Write starts
// failing with ErrBufferOverflow. Set generously above the 16MiB MySQL
// packet-splitting boundary since a batch payload is free to span many wire
// packets once it leaves this package.
const MaxPayloadSize = 1 << 28

// ErrBufferOverflow is returned by Write when MaxPayloadSize would be
// exceeded.
var ErrBufferOverflow = fmt.Errorf("wire: buffer exceeds max payload size %d", MaxPayloadSize)

// PlaceholderWidth is the fixed width, in bytes, of a COM_MULTI sub-command
// header: one marker byte (SubCommandMarker) followed by an 8-byte
// little-endian length.
const PlaceholderWidth = 9

// SubCommandMarker is the leading byte of every COM_MULTI sub-command
// header.
const SubCommandMarker = 0xFE

// Writer is a growable byte buffer with stable absolute positions and
// in-place overwrite of a previously written region. It backs every payload
// creator in this module.
//
// Positions returned by Position are stable as long as no further Write call
// causes a realloc that would invalidate an already-handed-out slice from
// SliceFrom; callers that need to patch a placeholder after further writes
// must use SliceFrom again rather than caching the old slice.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer ready to accept writes.
func NewWriter() *Writer {
	return &Writer{}
}

// Write appends b to the buffer, growing as needed.
func (w *Writer) Write(b []byte) error {
	if w.buf.Len()+len(b) > MaxPayloadSize {
		return ErrBufferOverflow
	}
	w.buf.Write(b)
	return nil
}

// WriteByte appends a single byte.
func (w *Writer) WriteByte(b byte) error {
	if w.buf.Len()+1 > MaxPayloadSize {
		return ErrBufferOverflow
	}
	w.buf.WriteByte(b)
	return nil
}

// Position returns the current write position, i.e. the number of bytes
// written so far.
func (w *Writer) Position() int {
	return w.buf.Len()
}

// SliceFrom returns a mutable view of the bytes from position to the current
// end of the buffer. Writes through the returned slice mutate the buffer in
// place; it does not extend the buffer's length.
func (w *Writer) SliceFrom(position int) []byte {
	return w.buf.Bytes()[position:]
}

// TrimEnd discards the last n bytes written. It panics if n exceeds the
// current length, since that indicates a creator bug, not a runtime
// condition.
func (w *Writer) TrimEnd(n int) {
	if n < 0 || n > w.buf.Len() {
		panic(fmt.Sprintf("wire: TrimEnd(%d) exceeds buffer length %d", n, w.buf.Len()))
	}
	w.buf.Truncate(w.buf.Len() - n)
}

// Bytes returns the accumulated payload. The returned slice aliases the
// Writer's internal storage and must not be retained across further writes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// ReservePlaceholder writes PlaceholderWidth zero bytes at the current
// position and returns the position they start at, so the caller can later
// call PatchLength once the length of the intervening payload is known.
func (w *Writer) ReservePlaceholder() (int, error) {
	pos := w.Position()
	if err := w.Write(make([]byte, PlaceholderWidth)); err != nil {
		return 0, err
	}
	return pos, nil
}

// PatchLength writes SubCommandMarker followed by length as a little-endian
// u64 into the PlaceholderWidth-byte region starting at pos. pos must have
// been returned by a prior ReservePlaceholder call on the same Writer.
func (w *Writer) PatchLength(pos int, length uint64) {
	region := w.SliceFrom(pos)
	region[0] = SubCommandMarker
	binary.LittleEndian.PutUint64(region[1:PlaceholderWidth], length)
}
