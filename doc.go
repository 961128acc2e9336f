// Package mysqlbatch implements the Batch Command Execution Core: turning an
// ordered list of logical SQL commands plus parameters into a sequence of
// framed MySQL/MariaDB wire-protocol payloads, driving the resulting
// multi-result-set streaming read path, and coordinating timeouts and
// cooperative cancellation against a shared per-session Connection.
//
// The package consumes a Session interface (transport, authentication,
// connection pooling, and schema discovery are external collaborators, not
// implemented here) and exposes Batch, Connection, and the three execution
// entry points ExecuteReaderDefault, ExecuteNonQuery, and ExecuteScalar.
package mysqlbatch
