package mysqlbatch

import (
	"context"
	"strings"

	"github.com/meoying/mysqlbatch/internal/wire"
)

// concatenatedCreator emits a single COM_QUERY whose body is the
// semicolon-joined text of every command in the batch (no trailing
// separator after the last one), with any bound parameters substituted
// inline as SQL literals via LiteralText. Selected when the session doesn't
// support COM_MULTI and the batch isn't (fully) prepared.
//
// WriteQuery writes the whole batch on its first call and reports false on
// every subsequent call, since there is only ever one COM_QUERY to emit.
type concatenatedCreator struct {
	cursor *CommandListCursor
}

var _ PayloadCreator = (*concatenatedCreator)(nil)

func (c *concatenatedCreator) WriteQuery(_ context.Context, w *Writer) (bool, error) {
	commands := c.cursor.commands
	if c.cursor.done(commands) {
		return false, nil
	}

	texts := make([]string, len(commands))
	for i, cmd := range commands {
		text, err := substituteLiterals(cmd)
		if err != nil {
			return false, err
		}
		texts[i] = text
	}

	if err := w.WriteByte(wire.CmdQuery.Byte()); err != nil {
		return false, err
	}
	if err := w.Write([]byte(strings.Join(texts, ";"))); err != nil {
		return false, err
	}

	c.cursor.CommandIndex = len(commands)
	return true, nil
}

// substituteLiterals returns cmd's text unchanged if it has no bound
// parameters (the common case: literal SQL already inline), or with each
// `?` placeholder replaced in order by its parameter's SQL literal form.
func substituteLiterals(cmd *BatchCommand) (string, error) {
	if len(cmd.Params) == 0 {
		return cmd.Text, nil
	}
	var b strings.Builder
	paramIdx := 0
	for _, r := range cmd.Text {
		if r == '?' && paramIdx < len(cmd.Params) {
			lit, err := LiteralText(cmd.Params[paramIdx])
			if err != nil {
				return "", err
			}
			b.WriteString(lit)
			paramIdx++
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}
