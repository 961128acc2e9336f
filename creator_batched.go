package mysqlbatch

import (
	"context"

	"github.com/meoying/mysqlbatch/internal/wire"
)

// batchedCreator implements COM_MULTI: it writes the CmdMulti opcode once,
// then repeatedly reserves a 9-byte placeholder, delegates to singleCreator
// for one logical command, and patches the placeholder with the length of
// what singleCreator just wrote. Selected whenever the session reports
// SupportsComMulti, regardless of preparation state.
//
// Like concatenatedCreator, the whole batch is written on the first
// WriteQuery call; subsequent calls report false.
type batchedCreator struct {
	cursor *CommandListCursor
	inner  *singleCreator
}

var _ PayloadCreator = (*batchedCreator)(nil)

func newBatchedCreator(cursor *CommandListCursor) *batchedCreator {
	return &batchedCreator{cursor: cursor, inner: &singleCreator{cursor: cursor}}
}

func (c *batchedCreator) WriteQuery(ctx context.Context, w *Writer) (bool, error) {
	if c.cursor.done(c.cursor.commands) {
		return false, nil
	}

	if err := w.WriteByte(wire.CmdMulti.Byte()); err != nil {
		return false, err
	}

	wroteAny := false
	for {
		placeholderPos, err := w.ReservePlaceholder()
		if err != nil {
			return false, err
		}
		bodyStart := w.Position()

		wrote, err := c.inner.WriteQuery(ctx, w)
		if err != nil {
			return false, err
		}
		if !wrote {
			// No trailing command: give back the placeholder we just
			// reserved for it.
			w.TrimEnd(w.Position() - placeholderPos)
			break
		}

		length := uint64(w.Position() - bodyStart)
		w.PatchLength(placeholderPos, length)
		wroteAny = true
	}

	return wroteAny, nil
}
