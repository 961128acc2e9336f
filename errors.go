package mysqlbatch

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies the errors this package returns, so callers can branch on
// errors.Is(err, mysqlbatch.ErrInvalidOperation) rather than string-matching.
type Kind int

const (
	// KindObjectDisposed marks use of a Batch after Dispose.
	KindObjectDisposed Kind = iota + 1
	// KindInvalidOperation marks a violated precondition: missing
	// connection, wrong connection state, transaction mismatch, empty
	// batch, or a malformed command.
	KindInvalidOperation
	// KindUnsupported marks a request this core deliberately refuses:
	// preparing a non-text command, or BehaviorCloseConnection.
	KindUnsupported
	// KindCancelled marks cancellation propagated from the caller's
	// context.Context.
	KindCancelled
	// KindProtocol marks a framing or payload anomaly surfaced by the
	// session that this core does not attempt to recover from.
	KindProtocol
)

func (k Kind) String() string {
	switch k {
	case KindObjectDisposed:
		return "object disposed"
	case KindInvalidOperation:
		return "invalid operation"
	case KindUnsupported:
		return "unsupported"
	case KindCancelled:
		return "cancelled"
	case KindProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by this package's validation and
// execution paths. Its Kind is comparable via errors.Is against the sentinel
// Err* values below.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("mysqlbatch: %s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("mysqlbatch: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is one of the package's sentinel Kind markers
// and matches e's Kind, so errors.Is(err, mysqlbatch.ErrObjectDisposed)
// works without exposing Kind comparisons to callers.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind == 0 {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func wrapError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: errors.WithStack(cause)}
}

// Sentinel errors usable with errors.Is. Only Kind participates in the
// comparison; Message and cause are ignored.
var (
	// ErrObjectDisposed is returned when a disposed Batch is executed again.
	ErrObjectDisposed = &Error{Kind: KindObjectDisposed, Message: "batch has been disposed"}
	// ErrInvalidOperation is the general state/validation-guard failure.
	ErrInvalidOperation = &Error{Kind: KindInvalidOperation}
	// ErrUnsupported marks a deliberately unsupported request.
	ErrUnsupported = &Error{Kind: KindUnsupported}
	// ErrCancelled marks cancellation propagated from a context.Context.
	ErrCancelled = &Error{Kind: KindCancelled}
	// ErrProtocol marks a protocol framing anomaly.
	ErrProtocol = &Error{Kind: KindProtocol}
)
