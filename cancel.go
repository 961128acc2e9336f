package mysqlbatch

import "context"

// cancelGuard is the scope guard returned by RegisterCancel: a handle on a
// registered goroutine watching ctx.Done() that invokes the batch's cancel
// entry point exactly once, released by Release (idempotent) when execution
// completes or the Batch is disposed. Avoid a global cancel table: state
// lives entirely on the Batch and this guard's own goroutine.
type cancelGuard struct {
	stop chan struct{}
}

// Release unregisters the watcher goroutine, a no-op if already released.
func (g *cancelGuard) Release() {
	if g == nil {
		return
	}
	select {
	case <-g.stop:
		// already released
	default:
		close(g.stop)
	}
}

// RegisterCancel watches ctx for cancellation and, if it fires before the
// returned guard is released, invokes batch.cancel. Returns (nil, false) if
// ctx carries no Done() channel (e.g. context.Background()) — nothing to
// watch, so no goroutine is started.
func RegisterCancel(ctx context.Context, batch *Batch) (guard func(), ok bool) {
	done := ctx.Done()
	if done == nil {
		return nil, false
	}
	g := &cancelGuard{stop: make(chan struct{})}
	go func() {
		select {
		case <-done:
			batch.cancel(ctx)
		case <-g.stop:
		}
	}()
	batch.cancelGuard = g
	return g.Release, true
}
