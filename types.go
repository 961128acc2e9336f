package mysqlbatch

// IOMode selects whether suspension points in this package honor context
// cancellation mid-flight (IOAsync) or run a step to completion regardless
// (IOSync). Every public entry point threads an explicit IOMode alongside a
// context.Context so callers can opt into the cheaper synchronous path when
// they know cancellation granularity doesn't matter.
type IOMode int

const (
	// IOSync executes each suspension point inline; ctx is still passed to
	// the Session for deadline purposes but is not polled mid-step.
	IOSync IOMode = iota
	// IOAsync polls ctx.Done() at every suspension point documented in
	// SPEC_FULL.md §5.
	IOAsync
)

func (m IOMode) String() string {
	if m == IOSync {
		return "sync"
	}
	return "async"
}

// ConnState is the coarse lifecycle state of a Connection, mirrored from the
// state a real session transitions through during dial/handshake/close.
type ConnState int

const (
	StateClosed ConnState = iota
	StateConnecting
	StateOpen
	StateBroken
)

func (s ConnState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateBroken:
		return "broken"
	default:
		return "unknown"
	}
}

// CommandBehavior is a per-command bit mask mirroring ADO.NET-style command
// behaviors. This core only special-cases BehaviorCloseConnection (rejected
// outright) and passes BehaviorDefault through to Session.OpenReader.
type CommandBehavior uint8

const (
	BehaviorDefault CommandBehavior = 0
	// BehaviorCloseConnection requests the connection close once the reader
	// is closed. Unsupported by this core: requesting it on any command in
	// a batch fails validation with ErrUnsupported before any byte is
	// transmitted.
	BehaviorCloseConnection CommandBehavior = 1 << iota
)

// CommandKind distinguishes the logical form of a BatchCommand. This core is
// text-only: the Prepared-Statement Coordinator rejects any other kind with
// ErrUnsupported. The stored-procedure helper (Batch.AddStoredProcedure)
// expands its CALL syntax into a CommandKindText command rather than
// introducing a second kind.
type CommandKind uint8

const (
	CommandKindText CommandKind = iota
)
