package wire

// Cmd is a MySQL/MariaDB wire-protocol command opcode, the first byte of a
// command-phase packet payload.
type Cmd byte

// Byte returns the opcode's wire representation.
func (c Cmd) Byte() byte {
	return byte(c)
}

const (
	// CmdQuery is COM_QUERY: a single plain-text SQL statement.
	// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_query.html
	CmdQuery Cmd = 0x03

	// CmdStmtPrepare is COM_STMT_PREPARE.
	// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_stmt_prepare.html
	CmdStmtPrepare Cmd = 0x16

	// CmdStmtExecute is COM_STMT_EXECUTE.
	// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_stmt_execute.html
	CmdStmtExecute Cmd = 0x17

	// CmdMulti is the MariaDB COM_MULTI extension: a single command-phase
	// packet carrying a sequence of framed sub-commands, each with its own
	// 9-byte length header (see SubCommandMarker in buffer.go). Not part of
	// stock MySQL; the session reports support via SupportsComMulti.
	CmdMulti Cmd = 0x1e
)

// NewParamsBindFlag is written as a single byte ahead of a COM_STMT_EXECUTE
// parameter block whenever parameter types/values are (re)sent, per the
// binary protocol's "new_params_bind_flag" field.
const NewParamsBindFlag byte = 0x01
