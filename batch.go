package mysqlbatch

import (
	"context"
	"sync/atomic"
)

// nextCommandID is the process-unique monotonically increasing counter
// backing Batch.id, mirroring the stmtId counters the prepare executor in
// the surrounding driver package keeps for prepared-statement handles.
var nextCommandID uint64

// Batch is an ordered, atomically submitted sequence of BatchCommands
// sharing one round trip (modulo preparation), executed against a
// Connection and optionally scoped to a Transaction.
type Batch struct {
	Commands []*BatchCommand
	Conn     *Connection
	Tx       *Transaction
	// TimeoutSeconds is stored on the Batch only: ExecuteReader neither
	// resets it nor passes it to the Session, and this package enforces no
	// timeout.
	TimeoutSeconds int

	id uint64

	disposed       int32
	cancelAttempts int32
	cancelGuard    *cancelGuard
}

// NewBatch returns an empty Batch bound to conn, with Tx left nil (no
// transaction scoping) and a freshly assigned command id.
func NewBatch(conn *Connection) *Batch {
	return &Batch{
		Conn: conn,
		id:   atomic.AddUint64(&nextCommandID, 1),
	}
}

// ID returns the batch's process-unique command id, assigned at
// construction.
func (b *Batch) ID() uint64 { return b.id }

// CancelAttempts returns how many times the Connection's cancel path has
// fired for this batch. Observable but not consulted by this core.
func (b *Batch) CancelAttempts() int32 {
	return atomic.LoadInt32(&b.cancelAttempts)
}

// AddCommand appends a text command with optional bound parameters to the
// batch and returns it for further tweaking (e.g. setting Behavior).
func (b *Batch) AddCommand(text string, params ...Parameter) *BatchCommand {
	cmd := &BatchCommand{Text: text, Kind: CommandKindText, Params: params}
	b.Commands = append(b.Commands, cmd)
	return cmd
}

// AddStoredProcedure expands name into a `CALL name(?, ?, ...)` text command
// sized to the procedure's cached arity, binding args positionally against
// the cached parameter names. Returns ErrInvalidOperation if the procedure
// isn't cached (including a tombstone: "looked up, does not exist") or if
// len(args) doesn't match the cached arity.
func (b *Batch) AddStoredProcedure(name string, args ...any) (*BatchCommand, error) {
	if b.Conn == nil {
		return nil, wrapf(ErrInvalidOperation, "connection required")
	}
	desc, ok := b.Conn.session.Procedures()[name]
	if !ok || desc == nil {
		return nil, wrapf(ErrInvalidOperation, "procedure %q is not cached", name)
	}
	if len(args) != len(desc.Params) {
		return nil, wrapf(ErrInvalidOperation, "procedure %q expects %d parameters, got %d", name, len(desc.Params), len(args))
	}
	params := make([]Parameter, len(args))
	placeholders := ""
	for i, arg := range args {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += "?"
		params[i] = Parameter{Name: desc.Params[i].Name, Type: desc.Params[i].Type, Value: arg}
	}
	return b.AddCommand("CALL "+name+"("+placeholders+")", params...), nil
}

// Dispose marks the batch used. Further execution attempts fail with
// ErrObjectDisposed. Idempotent; does not affect the Connection.
func (b *Batch) Dispose() {
	atomic.StoreInt32(&b.disposed, 1)
	if g := b.cancelGuard; g != nil {
		g.Release()
	}
}

func (b *Batch) isDisposed() bool {
	return atomic.LoadInt32(&b.disposed) != 0
}

// bindCommands back-references every command to b, per SPEC_FULL.md's
// "all members have been bound back-referenced to this Batch before
// execution" invariant.
func (b *Batch) bindCommands() {
	for _, cmd := range b.Commands {
		cmd.batch = b
	}
}

// cancel is the entry point the Cancellation Registry's guard invokes when
// the registered context is cancelled. It delegates to the Connection's
// cancel sideband and increments CancelAttempts regardless of the
// sideband's outcome, since an attempt was made.
func (b *Batch) cancel(ctx context.Context) {
	atomic.AddInt32(&b.cancelAttempts, 1)
	if b.Conn == nil {
		return
	}
	if err := b.Conn.cancel(ctx, b); err != nil {
		b.Conn.logger.WarnContext(ctx, "cancel sideband failed", "batch_id", b.id, "error", err)
	}
}
