package mysqlbatch

import (
	"fmt"
	"strings"
)

// BatchCommand is a single logical unit of work inside a Batch: command
// text, its kind (text-only in this core), an optional ordered parameter
// list, and a behavior mask. Validated by Batch.validate before execution
// (SPEC_FULL.md §4.7); never constructed directly by callers except through
// Batch.AddCommand / Batch.AddStoredProcedure.
type BatchCommand struct {
	Text     string
	Kind     CommandKind
	Params   []Parameter
	Behavior CommandBehavior

	// batch is the back-reference bound by Batch.bindCommands immediately
	// before execution. The payload creators do not read it; they use the
	// command's own prepared handle below.
	batch *Batch
	// prepared caches the handle obtained by the Prepared-Statement
	// Coordinator for this command's exact text, set by PrepareBatch and
	// read by the Single creator.
	prepared *StatementHandle
}

func textNonEmpty(text string) bool {
	return len(strings.TrimSpace(text)) > 0
}

// validate enforces the per-command invariant from SPEC_FULL.md §4.7.6:
// non-nil, non-empty non-whitespace text, and no BehaviorCloseConnection
// request.
func (c *BatchCommand) validate() error {
	if c == nil {
		return wrapf(ErrInvalidOperation, "batch command is nil")
	}
	if !textNonEmpty(c.Text) {
		return wrapf(ErrInvalidOperation, "batch command text is empty")
	}
	if c.Behavior&BehaviorCloseConnection != 0 {
		return wrapf(ErrUnsupported, "command %q requests BehaviorCloseConnection", c.Text)
	}
	return nil
}

func wrapf(sentinel *Error, format string, args ...any) *Error {
	return newError(sentinel.Kind, fmt.Sprintf(format, args...))
}
