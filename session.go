package mysqlbatch

import "context"

// StatementHandle identifies a server-side prepared statement returned by a
// successful COM_STMT_PREPARE.
type StatementHandle struct {
	ID         uint32
	ParamCount int
}

// PayloadCreator is the polymorphic capability consumed by Session.OpenReader:
// a creator bound to one batch's CommandListCursor, which the Session calls
// repeatedly, transmitting the accumulated Writer bytes as
// one wire packet after each call, until WriteQuery returns false. Exactly
// one of the three unexported implementations (single, concatenated,
// batched) is selected per ExecuteReader call; see selectCreator.
type PayloadCreator interface {
	// WriteQuery writes zero or more framed commands into w starting at the
	// cursor's current position, advancing it, and reports whether at
	// least one command was written on this call. A false return means the
	// cursor was already exhausted when this call started and the Session
	// should stop calling WriteQuery and finish assembling the reader.
	WriteQuery(ctx context.Context, w *Writer) (bool, error)
}

// Session is the external collaborator this core drives: an
// already-authenticated connection able to transmit framed payloads, read
// packets back, and maintain a prepared-statement cache. Implementations are
// supplied by the surrounding driver package; this core only consumes the
// interface, so it can be exercised in tests against a fake.
type Session interface {
	// SupportsComMulti reports whether the server accepted the MariaDB
	// COM_MULTI capability during the handshake.
	SupportsComMulti() bool

	// TryGetPrepared returns the cached handle for an exact command text,
	// if the session has already prepared it.
	TryGetPrepared(text string) (StatementHandle, bool)

	// Prepare transmits COM_STMT_PREPARE for text and awaits the response.
	// Idempotent from the caller's point of view: the Prepared-Statement
	// Coordinator only calls it once per distinct text per batch, but the
	// Session itself must tolerate being asked to prepare an already-cached
	// text (returning the cached handle without a wire round trip).
	Prepare(ctx context.Context, io IOMode, text string) (StatementHandle, error)

	// Transmit sends a fully framed payload produced by a PayloadCreator.
	Transmit(ctx context.Context, io IOMode, payload []byte) error

	// OpenReader transmits the payload creator's output and returns a
	// streaming multi-result reader over the response.
	OpenReader(ctx context.Context, io IOMode, creator PayloadCreator, behavior CommandBehavior) (ResultReader, error)

	// Procedures returns the read-only cached-procedure map used by
	// Batch.AddStoredProcedure to determine a stored procedure's arity.
	Procedures() ProcedureCache
}

// ProcedureParam describes one formal parameter of a cached stored
// procedure.
type ProcedureParam struct {
	Name string
	Type ParameterType
}

// ProcedureDescriptor is the cached shape of a stored procedure: its formal
// parameter list, in declaration order.
type ProcedureDescriptor struct {
	Params []ProcedureParam
}

// ProcedureCache maps a fully-qualified procedure name to its cached
// descriptor. A present key mapping to a nil value is a tombstone: "looked
// up, does not exist" — distinct from an absent key, which means "never
// looked up".
type ProcedureCache map[string]*ProcedureDescriptor

// ResultReader streams a multi-result-set response back to the caller: an
// outer sequence of result sets, each with an inner sequence of rows. See
// SPEC_FULL.md §4.6 for the exhaust-inner-before-outer contract this core's
// driver (ExecuteNonQuery/ExecuteScalar) relies on.
type ResultReader interface {
	// NextResultSet advances to the next result set, reporting false when
	// the response is exhausted. Callers must have exhausted the current
	// result set's rows (via NextRow returning false) first.
	NextResultSet(ctx context.Context, io IOMode) (bool, error)

	// NextRow advances to the next row of the current result set.
	NextRow(ctx context.Context, io IOMode) (bool, error)

	// Scan copies the current row's column values into dest.
	Scan(dest ...any) error

	// RecordsAffected returns the rows-affected count of the current
	// result set, meaningful once NextResultSet has returned true for a
	// non-query result set.
	RecordsAffected() int64

	// Close releases the reader and the Connection it was borrowing.
	// Idempotent.
	Close() error
}
