package mysqlbatch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatch_AddStoredProcedure(t *testing.T) {
	session := &fakeSession{
		supportsComMulti: true,
		procedures: ProcedureCache{
			"proc_transfer": &ProcedureDescriptor{Params: []ProcedureParam{
				{Name: "from_id", Type: ParamTypeLongLong},
				{Name: "to_id", Type: ParamTypeLongLong},
			}},
			"proc_gone": nil, // tombstone
		},
	}
	conn := NewConnection(session)
	batch := NewBatch(conn)

	cmd, err := batch.AddStoredProcedure("proc_transfer", int64(1), int64(2))
	require.NoError(t, err)
	assert.Equal(t, "CALL proc_transfer(?, ?)", cmd.Text)
	assert.Len(t, cmd.Params, 2)

	_, err = batch.AddStoredProcedure("proc_gone")
	require.ErrorIs(t, err, ErrInvalidOperation)

	_, err = batch.AddStoredProcedure("proc_unknown")
	require.ErrorIs(t, err, ErrInvalidOperation)

	_, err = batch.AddStoredProcedure("proc_transfer", int64(1))
	require.ErrorIs(t, err, ErrInvalidOperation)
}

func TestBatch_Dispose_ForbidsReexecution(t *testing.T) {
	session := &fakeSession{supportsComMulti: true}
	conn := NewConnection(session)
	batch := newTestBatch(conn, "SELECT 1")

	batch.Dispose()
	_, err := ExecuteReaderDefault(context.Background(), batch)
	require.ErrorIs(t, err, ErrObjectDisposed)
}

func TestBatch_IDsAreUnique(t *testing.T) {
	conn := NewConnection(&fakeSession{})
	a := NewBatch(conn)
	b := NewBatch(conn)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestConnection_AcquireRelease_RejectsConcurrentUse(t *testing.T) {
	conn := NewConnection(&fakeSession{supportsComMulti: true})
	require.NoError(t, conn.acquire())
	err := conn.acquire()
	require.ErrorIs(t, err, ErrInvalidOperation)
	conn.release()
	require.NoError(t, conn.acquire())
	conn.release()
}

// A Connection stays exclusively acquired for the lifetime of a live
// ResultReader: a second ExecuteReaderDefault call must be rejected until
// the first reader's Close runs, after which the Connection is free again.
func TestExecuteReader_BorrowsConnectionUntilClose(t *testing.T) {
	session := &fakeSession{supportsComMulti: true}
	conn := NewConnection(session)
	batch := newTestBatch(conn, "SELECT 1")

	reader, err := ExecuteReaderDefault(context.Background(), batch)
	require.NoError(t, err)

	_, err = ExecuteReaderDefault(context.Background(), newTestBatch(conn, "SELECT 2"))
	require.ErrorIs(t, err, ErrInvalidOperation)

	require.NoError(t, reader.Close())

	_, err = ExecuteReaderDefault(context.Background(), newTestBatch(conn, "SELECT 3"))
	require.NoError(t, err)
}

func TestRegisterCancel_FiresBatchCancel(t *testing.T) {
	var sidebandCalls []uint64
	session := &fakeSession{supportsComMulti: true}
	conn := NewConnection(session, WithCancelSideband(func(_ context.Context, b *Batch) error {
		sidebandCalls = append(sidebandCalls, b.ID())
		return nil
	}))
	batch := NewBatch(conn)

	ctx, cancel := context.WithCancel(context.Background())
	release, ok := RegisterCancel(ctx, batch)
	require.True(t, ok)
	defer release()

	cancel()
	// Give the watcher goroutine a moment; it only does a channel select.
	deadline := time.Now().Add(time.Second)
	for len(sidebandCalls) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	require.Len(t, sidebandCalls, 1)
	assert.Equal(t, batch.ID(), sidebandCalls[0])
	assert.EqualValues(t, 1, batch.CancelAttempts())
}

func TestRegisterCancel_NoDoneChannel(t *testing.T) {
	conn := NewConnection(&fakeSession{})
	batch := NewBatch(conn)
	_, ok := RegisterCancel(context.Background(), batch)
	assert.False(t, ok)
}
