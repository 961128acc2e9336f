package mysqlbatch

import "context"

// singleCreator writes the command at the cursor's current index as one
// protocol command (COM_QUERY or COM_STMT_EXECUTE) per WriteQuery call,
// advancing the cursor by one. Selected when the session doesn't support
// COM_MULTI but every command in the batch is already prepared; also used
// as the inner step of batchedCreator.
type singleCreator struct {
	cursor *CommandListCursor
}

var _ PayloadCreator = (*singleCreator)(nil)

func (c *singleCreator) WriteQuery(_ context.Context, w *Writer) (bool, error) {
	commands := c.cursor.commands
	if c.cursor.done(commands) {
		return false, nil
	}
	cmd := c.cursor.current(commands)
	if err := writeCommandBody(w, cmd); err != nil {
		return false, err
	}
	c.cursor.advance()
	return true, nil
}
