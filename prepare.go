package mysqlbatch

import "context"

// PrepareBatch registers each distinct command text in batch with the
// session's prepared-statement cache, in order. A text already present in
// the cache (TryGetPrepared) is reused without a wire round trip; otherwise
// Session.Prepare is called, which transmits COM_STMT_PREPARE and awaits the
// response — serialized with respect to the other commands in this batch,
// so calling PrepareBatch twice on an identical batch issues at most one
// COM_STMT_PREPARE per distinct text (SPEC_FULL.md §8 invariant 5).
//
// A no-op, but still fully validated, when conn.IgnorePrepare is set.
// Rejects any command whose Kind isn't CommandKindText with ErrUnsupported.
func PrepareBatch(ctx context.Context, batch *Batch, io IOMode) error {
	if err := batch.validateForPrepare(); err != nil {
		return err
	}
	if batch.Conn.ignorePrepare {
		return nil
	}

	seen := make(map[string]StatementHandle, len(batch.Commands))
	for _, cmd := range batch.Commands {
		if cmd.Kind != CommandKindText {
			return wrapf(ErrUnsupported, "cannot prepare non-text command")
		}
		if handle, ok := seen[cmd.Text]; ok {
			cmd.prepared = &handle
			continue
		}
		if handle, ok := batch.Conn.session.TryGetPrepared(cmd.Text); ok {
			seen[cmd.Text] = handle
			cmd.prepared = &handle
			continue
		}
		batch.Conn.logger.DebugContext(ctx, "preparing statement", "batch_id", batch.id, "text", cmd.Text)
		handle, err := batch.Conn.session.Prepare(ctx, io, cmd.Text)
		if err != nil {
			return err
		}
		seen[cmd.Text] = handle
		cmd.prepared = &handle
	}
	return nil
}
