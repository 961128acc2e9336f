package mysqlbatch

// validate runs the pre-execute guards from SPEC_FULL.md §4.7 in order,
// returning the first failure. Called by ExecuteReader before any byte is
// transmitted.
func (b *Batch) validate() error {
	if b.isDisposed() {
		return ErrObjectDisposed
	}
	if b.Conn == nil {
		return wrapf(ErrInvalidOperation, "connection required")
	}
	switch b.Conn.State() {
	case StateOpen, StateConnecting:
	default:
		return wrapf(ErrInvalidOperation, "connection is not open (state=%s)", b.Conn.State())
	}
	if !b.Conn.ignoreCommandTransaction && b.Tx != b.Conn.Transaction() {
		return wrapf(ErrInvalidOperation, "transaction mismatch")
	}
	if len(b.Commands) == 0 {
		return wrapf(ErrInvalidOperation, "batch has no commands")
	}
	for _, cmd := range b.Commands {
		if err := cmd.validate(); err != nil {
			return err
		}
	}
	return nil
}

// validateForPrepare runs the pre-prepare guards: the pre-execute guards
// with the connection-state check tightened to StateOpen strictly, plus "no
// open reader on the connection". Callers should skip calling PrepareBatch
// entirely when IgnorePrepare is set; PrepareBatch itself also no-ops in
// that case for defense in depth.
func (b *Batch) validateForPrepare() error {
	if b.isDisposed() {
		return ErrObjectDisposed
	}
	if b.Conn == nil {
		return wrapf(ErrInvalidOperation, "connection required")
	}
	if b.Conn.State() != StateOpen {
		return wrapf(ErrInvalidOperation, "connection is not open (state=%s)", b.Conn.State())
	}
	if b.Conn.hasOpenReader() {
		return wrapf(ErrInvalidOperation, "connection has an open reader")
	}
	if !b.Conn.ignoreCommandTransaction && b.Tx != b.Conn.Transaction() {
		return wrapf(ErrInvalidOperation, "transaction mismatch")
	}
	if len(b.Commands) == 0 {
		return wrapf(ErrInvalidOperation, "batch has no commands")
	}
	for _, cmd := range b.Commands {
		if err := cmd.validate(); err != nil {
			return err
		}
	}
	return nil
}

// allPrepared reports whether every command in the batch already has a
// cached StatementHandle (set by PrepareBatch), which is the precondition
// for selecting the Single creator over Concatenated when COM_MULTI isn't
// supported.
func (b *Batch) allPrepared() bool {
	for _, cmd := range b.Commands {
		if cmd.prepared == nil {
			return false
		}
	}
	return true
}
