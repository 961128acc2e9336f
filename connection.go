package mysqlbatch

import (
	"context"
	"log/slog"
	"sync"
)

// CancelSideband delivers a best-effort cancel request for batch to the
// server, out of band from the connection currently executing it — e.g. by
// opening a throwaway second connection and issuing COM_PROCESS_KILL, the
// way MySQL client libraries implement query cancellation. Out of scope for
// this core; injected by the caller via WithCancelSideband.
type CancelSideband func(ctx context.Context, batch *Batch) error

// Connection is the facade this core executes batches against: a Session
// plus the mutable state (lifecycle, bound transaction, exclusive-use guard)
// and toggles (IgnorePrepare, IgnoreCommandTransaction, AsyncIOBehavior) that
// govern validation and payload-creator selection.
type Connection struct {
	session Session
	logger  logger

	mu          sync.Mutex
	state       ConnState
	tx          *Transaction
	readerOpen  bool
	inUse       bool

	ignoreCommandTransaction bool
	ignorePrepare            bool
	asyncIOBehavior          IOMode
	cancelSideband           CancelSideband
}

// Option configures a Connection at construction, the same functional-option
// shape as internal/driver/mysql/log's ConnectorOptions/Option pair.
type Option func(*Connection)

// WithLogger overrides the default slog.Default() logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Connection) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithIgnorePrepare sets IgnorePrepare: when true, PrepareBatch becomes a
// validated no-op and ExecuteReader never selects the Single creator for a
// not-yet-prepared batch.
func WithIgnorePrepare(ignore bool) Option {
	return func(c *Connection) { c.ignorePrepare = ignore }
}

// WithIgnoreCommandTransaction sets IgnoreCommandTransaction: when true, the
// transaction-binding guard in validate (SPEC_FULL.md §4.7.4) is skipped.
func WithIgnoreCommandTransaction(ignore bool) Option {
	return func(c *Connection) { c.ignoreCommandTransaction = ignore }
}

// WithAsyncIOBehavior overrides the default IOAsync mode used when a Batch
// method is called without an explicit IOMode override.
func WithAsyncIOBehavior(mode IOMode) Option {
	return func(c *Connection) { c.asyncIOBehavior = mode }
}

// WithCancelSideband injects the out-of-band cancel delivery mechanism used
// by the Cancellation Registry (C4). Without one, RegisterCancel's guard
// still fires on context cancellation but Batch.cancel is a no-op beyond
// incrementing CancelAttempts.
func WithCancelSideband(f CancelSideband) Option {
	return func(c *Connection) { c.cancelSideband = f }
}

// NewConnection wraps session, defaulting to StateOpen, IOAsync, and
// slog.Default() until overridden by opts.
func NewConnection(session Session, opts ...Option) *Connection {
	c := &Connection{
		session:         session,
		logger:          slog.Default(),
		state:           StateOpen,
		asyncIOBehavior: IOAsync,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the connection's current lifecycle state.
func (c *Connection) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetState transitions the connection's lifecycle state. Exposed for the
// surrounding driver package (dial/close) to drive; this core never calls it
// except poison() below.
func (c *Connection) SetState(s ConnState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

// Transaction returns the transaction currently bound to this connection, or
// nil if none is.
func (c *Connection) Transaction() *Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tx
}

// SetTransaction binds tx (or clears the binding, if nil) as the connection's
// current transaction.
func (c *Connection) SetTransaction(tx *Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tx = tx
}

func (c *Connection) defaultIOMode() IOMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.asyncIOBehavior
}

func (c *Connection) hasOpenReader() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readerOpen
}

func (c *Connection) setReaderOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readerOpen = open
}

// acquire claims exclusive use of the connection for the duration of one
// batch execution, mirroring "concurrent commands on the same Connection are
// forbidden" (SPEC_FULL.md §5). Returns ErrInvalidOperation if already held.
func (c *Connection) acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inUse {
		return wrapf(ErrInvalidOperation, "connection already has a command in progress")
	}
	c.inUse = true
	return nil
}

// release gives up exclusive use, acquired by acquire.
func (c *Connection) release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inUse = false
}

// poison transitions the connection to StateBroken after a mid-transmission
// protocol anomaly (SPEC_FULL.md §9, open question (a)): once COM_MULTI
// framing has begun, there is no way to recover a consistent wire position,
// so further use is refused upstream by validate's StateOpen check.
func (c *Connection) poison() {
	c.SetState(StateBroken)
}

func (c *Connection) cancel(ctx context.Context, batch *Batch) error {
	if c.cancelSideband == nil {
		return nil
	}
	return c.cancelSideband(ctx, batch)
}

// Transaction is an opaque handle to a server-side transaction bound to a
// Connection. Equality is by pointer identity: a Batch's Transaction must be
// the exact value current on its Connection (or nil) unless
// IgnoreCommandTransaction is set.
type Transaction struct {
	// ID is a human-readable label only, not used for equality.
	ID string
}
