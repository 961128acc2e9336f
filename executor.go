package mysqlbatch

import "context"

// selectCreator implements the precedence rule from SPEC_FULL.md §4.5 step 4
// and the selection-rule invariant in §8: Batched if the session supports
// COM_MULTI; else Single if every command is already prepared; else
// Concatenated. The returned creator is bound to cursor (and, transitively,
// the batch's command list) and is good for exactly one ExecuteReader call.
func selectCreator(conn *Connection, batch *Batch, cursor *CommandListCursor) PayloadCreator {
	if conn.session.SupportsComMulti() {
		return newBatchedCreator(cursor)
	}
	if batch.allPrepared() {
		return &singleCreator{cursor: cursor}
	}
	return &concatenatedCreator{cursor: cursor}
}

// ExecuteReader is the Batch Executor's single entry point (SPEC_FULL.md
// §4.5): validate, bind commands back to the batch, select a payload
// creator, and delegate to the Session to transmit and open a streaming
// multi-result reader.
//
// io is the IOMode to use for this call; most callers should use
// ExecuteReaderDefault, which uses the Connection's configured
// AsyncIOBehavior.
func ExecuteReader(ctx context.Context, batch *Batch, io IOMode) (ResultReader, error) {
	if err := batch.validate(); err != nil {
		return nil, err
	}
	batch.bindCommands()

	release, registered := RegisterCancel(ctx, batch)
	if registered {
		defer release()
	}

	if err := batch.Conn.acquire(); err != nil {
		return nil, err
	}

	cursor := newCursor(batch.Commands)
	creator := selectCreator(batch.Conn, batch, cursor)
	batch.Conn.logger.DebugContext(ctx, "executing batch", "batch_id", batch.id, "creator", creatorName(creator), "commands", len(batch.Commands))

	reader, err := batch.Conn.session.OpenReader(ctx, io, creator, BehaviorDefault)
	if err != nil {
		// No reader was constructed, so nothing will ever call Close to
		// release the acquisition made above.
		batch.Conn.release()
		if _, batched := creator.(*batchedCreator); batched {
			// Once a COM_MULTI frame has started transmitting there is no
			// way to recover a consistent wire position, so any session
			// error at this point (including "COM_MULTI unsupported",
			// reported too late by a misbehaving server) poisons the
			// connection rather than leaving it open for reuse.
			batch.Conn.poison()
			return nil, wrapError(KindProtocol, "batched transmission failed", err)
		}
		return nil, err
	}
	batch.Conn.setReaderOpen(true)
	// The Connection stays acquired until closeTrackingReader.Close runs:
	// a reader borrows the Connection exclusively for its whole lifetime
	// (SPEC_FULL.md §3, §5), not just for the call that opened it.
	return &closeTrackingReader{ResultReader: reader, conn: batch.Conn}, nil
}

// ExecuteReaderDefault calls ExecuteReader with the Connection's configured
// AsyncIOBehavior.
func ExecuteReaderDefault(ctx context.Context, batch *Batch) (ResultReader, error) {
	if batch.Conn == nil {
		return nil, wrapf(ErrInvalidOperation, "connection required")
	}
	return ExecuteReader(ctx, batch, batch.Conn.defaultIOMode())
}

func creatorName(c PayloadCreator) string {
	switch c.(type) {
	case *batchedCreator:
		return "batched"
	case *singleCreator:
		return "single"
	case *concatenatedCreator:
		return "concatenated"
	default:
		return "unknown"
	}
}

// closeTrackingReader clears Connection.readerOpen and releases the
// Connection's exclusive-use guard when the underlying reader is closed, so
// a subsequent PrepareBatch's "no open reader" guard sees the connection as
// free again and a subsequent ExecuteReader can acquire it.
type closeTrackingReader struct {
	ResultReader
	conn *Connection
}

func (r *closeTrackingReader) Close() error {
	err := r.ResultReader.Close()
	r.conn.setReaderOpen(false)
	r.conn.release()
	return err
}

// ExecuteNonQuery drains every result set of the batch's reader, discarding
// rows, and returns the sum of RecordsAffected across all result sets
// (SPEC_FULL.md §8 invariant via scenario S5).
func ExecuteNonQuery(ctx context.Context, batch *Batch) (int64, error) {
	reader, err := ExecuteReaderDefault(ctx, batch)
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	io := batch.Conn.defaultIOMode()
	var total int64
	for {
		more, err := reader.NextResultSet(ctx, io)
		if err != nil {
			return total, err
		}
		if !more {
			break
		}
		for {
			moreRows, err := reader.NextRow(ctx, io)
			if err != nil {
				return total, err
			}
			if !moreRows {
				break
			}
		}
		total += reader.RecordsAffected()
	}
	return total, nil
}

// NullScalar is the sentinel ExecuteScalar returns when the batch's first
// result set produced no rows, distinguishing "no rows" from a NULL column
// value (SPEC_FULL.md §9, open question (b)). Compare with ==; a genuine
// NULL column value comes back as a bare Go nil, never as this pointer.
var NullScalar = &struct{ _ byte }{}

// ExecuteScalar returns column 0 of the first row of the batch's first
// result set (or NullScalar if that result set has no rows), then fully
// drains the remaining rows and result sets before returning. The scalar
// value is captured exactly once, on the first row seen.
func ExecuteScalar(ctx context.Context, batch *Batch) (any, error) {
	reader, err := ExecuteReaderDefault(ctx, batch)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	io := batch.Conn.defaultIOMode()
	var scalar any = NullScalar
	captured := false

	resultSetIdx := 0
	for {
		more, err := reader.NextResultSet(ctx, io)
		if err != nil {
			return scalar, err
		}
		if !more {
			break
		}
		for {
			moreRows, err := reader.NextRow(ctx, io)
			if err != nil {
				return scalar, err
			}
			if !moreRows {
				break
			}
			if resultSetIdx == 0 && !captured {
				var col0 any
				if err := reader.Scan(&col0); err != nil {
					return scalar, err
				}
				scalar = col0
				captured = true
			}
		}
		resultSetIdx++
	}
	return scalar, nil
}
