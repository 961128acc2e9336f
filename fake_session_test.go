package mysqlbatch

import "context"

// fakeRow is one row of a fakeResultSet: ordered column values.
type fakeRow []any

// fakeResultSet is one canned result set a fakeReader walks through.
type fakeResultSet struct {
	rows            []fakeRow
	recordsAffected int64
}

// fakeReader is a ResultReader test double driven entirely from
// pre-populated resultSets; it never touches real bytes. cancelAfter, if
// non-negative, makes the NextResultSet call that would advance past that
// index return ErrCancelled instead, simulating S6's mid-stream
// cancellation.
type fakeReader struct {
	resultSets  []fakeResultSet
	rsIdx       int
	rowIdx      int
	cancelAfter int
	closed      bool
	closeCount  int
}

func newFakeReader(resultSets ...fakeResultSet) *fakeReader {
	return &fakeReader{resultSets: resultSets, rsIdx: -1, rowIdx: -1, cancelAfter: -1}
}

func (r *fakeReader) NextResultSet(ctx context.Context, _ IOMode) (bool, error) {
	if ctx.Err() != nil {
		return false, ErrCancelled
	}
	if r.cancelAfter >= 0 && r.rsIdx == r.cancelAfter {
		return false, ErrCancelled
	}
	r.rsIdx++
	r.rowIdx = -1
	return r.rsIdx < len(r.resultSets), nil
}

func (r *fakeReader) NextRow(ctx context.Context, _ IOMode) (bool, error) {
	if ctx.Err() != nil {
		return false, ErrCancelled
	}
	r.rowIdx++
	return r.rowIdx < len(r.resultSets[r.rsIdx].rows), nil
}

func (r *fakeReader) Scan(dest ...any) error {
	row := r.resultSets[r.rsIdx].rows[r.rowIdx]
	for i := range dest {
		if ptr, ok := dest[i].(*any); ok {
			*ptr = row[i]
		}
	}
	return nil
}

func (r *fakeReader) RecordsAffected() int64 {
	return r.resultSets[r.rsIdx].recordsAffected
}

func (r *fakeReader) Close() error {
	r.closeCount++
	r.closed = true
	return nil
}

// fakeSession is a Session test double: it records every payload Transmit
// sees (driving the given PayloadCreator itself, exactly as a real Session's
// OpenReader is documented to) and the text of every Prepare call, one entry
// per call, and returns a canned fakeReader.
type fakeSession struct {
	supportsComMulti bool
	procedures       ProcedureCache

	prepared     map[string]StatementHandle
	nextStmtID   uint32
	prepareCalls []string

	transmits [][]byte
	reader    *fakeReader

	openReaderErr error
}

var _ Session = (*fakeSession)(nil)

func (s *fakeSession) SupportsComMulti() bool { return s.supportsComMulti }

func (s *fakeSession) TryGetPrepared(text string) (StatementHandle, bool) {
	h, ok := s.prepared[text]
	return h, ok
}

func (s *fakeSession) Prepare(_ context.Context, _ IOMode, text string) (StatementHandle, error) {
	s.prepareCalls = append(s.prepareCalls, text)
	s.nextStmtID++
	h := StatementHandle{ID: s.nextStmtID}
	if s.prepared == nil {
		s.prepared = map[string]StatementHandle{}
	}
	s.prepared[text] = h
	return h, nil
}

func (s *fakeSession) Transmit(_ context.Context, _ IOMode, payload []byte) error {
	cp := append([]byte(nil), payload...)
	s.transmits = append(s.transmits, cp)
	return nil
}

func (s *fakeSession) OpenReader(ctx context.Context, io IOMode, creator PayloadCreator, _ CommandBehavior) (ResultReader, error) {
	if s.openReaderErr != nil {
		return nil, s.openReaderErr
	}
	for {
		w := NewWriter()
		wrote, err := creator.WriteQuery(ctx, w)
		if err != nil {
			return nil, err
		}
		if !wrote {
			break
		}
		if err := s.Transmit(ctx, io, w.Bytes()); err != nil {
			return nil, err
		}
	}
	if s.reader == nil {
		s.reader = newFakeReader()
	}
	return s.reader, nil
}

func (s *fakeSession) Procedures() ProcedureCache { return s.procedures }
