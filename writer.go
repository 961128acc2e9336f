package mysqlbatch

import "github.com/meoying/mysqlbatch/internal/wire"

// Writer is the Payload Writer (SPEC_FULL.md §4.1): a growable byte buffer
// with stable absolute positions and in-place overwrite of a previously
// written region, passed to PayloadCreator.WriteQuery by the Session so a
// creator can frame commands without the Session knowing the wire format of
// any individual command.
type Writer struct {
	w *wire.Writer
}

// NewWriter returns an empty Writer. Sessions construct a fresh one for
// each WriteQuery invocation on the chosen PayloadCreator, transmitting its
// bytes as one wire packet when the call returns true, and stop once
// WriteQuery returns false.
func NewWriter() *Writer {
	return &Writer{w: wire.NewWriter()}
}

// Write appends b, growing as needed. Fails with wire.ErrBufferOverflow only
// if the hard size ceiling is exceeded.
func (w *Writer) Write(b []byte) error { return w.w.Write(b) }

// WriteByte appends a single byte.
func (w *Writer) WriteByte(b byte) error { return w.w.WriteByte(b) }

// Position returns the current write position.
func (w *Writer) Position() int { return w.w.Position() }

// SliceFrom returns a mutable view from position to the current end.
func (w *Writer) SliceFrom(position int) []byte { return w.w.SliceFrom(position) }

// TrimEnd discards the last n bytes written.
func (w *Writer) TrimEnd(n int) { w.w.TrimEnd(n) }

// Bytes returns the accumulated payload. Aliases internal storage; callers
// transmitting it must copy before the Writer is reused.
func (w *Writer) Bytes() []byte { return w.w.Bytes() }

// ReservePlaceholder writes the 9-byte COM_MULTI sub-command header
// placeholder and returns its position for a later PatchLength call.
func (w *Writer) ReservePlaceholder() (int, error) { return w.w.ReservePlaceholder() }

// PatchLength patches the marker byte and little-endian u64 length into the
// placeholder reserved at pos.
func (w *Writer) PatchLength(pos int, length uint64) { w.w.PatchLength(pos, length) }

// writeCommandBody writes the protocol opcode and body for cmd, in either
// plain-text (COM_QUERY) or prepared (COM_STMT_EXECUTE + parameter payload)
// form depending on whether cmd has been prepared.
func writeCommandBody(w *Writer, cmd *BatchCommand) error {
	if cmd.prepared != nil {
		return writeStmtExecute(w, *cmd.prepared, cmd.Params)
	}
	return writeQueryText(w, cmd.Text)
}

func writeQueryText(w *Writer, text string) error {
	if err := w.WriteByte(wire.CmdQuery.Byte()); err != nil {
		return err
	}
	return w.Write([]byte(text))
}

func writeStmtExecute(w *Writer, handle StatementHandle, params []Parameter) error {
	if err := w.WriteByte(wire.CmdStmtExecute.Byte()); err != nil {
		return err
	}
	if err := w.Write(wire.FixedLengthInteger(uint64(handle.ID), 4)); err != nil {
		return err
	}
	// flags: CURSOR_TYPE_NO_CURSOR
	if err := w.WriteByte(0x00); err != nil {
		return err
	}
	// iteration_count, always 1
	if err := w.Write(wire.FixedLengthInteger(1, 4)); err != nil {
		return err
	}
	paramBytes, err := BindParameters(params)
	if err != nil {
		return err
	}
	return w.Write(paramBytes)
}
