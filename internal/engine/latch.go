package engine

import "sync/atomic"

// reloadLatch coalesces a storm of external change notifications into a
// single pending-reload flag. It is a pure OR-latch, not a counter: ten
// notifications and one notification schedule the same single rebuild.
//
// The signal channel is buffered with size 1 so repeated Set calls
// coalesce instead of blocking, mirroring how the flag itself latches.
//
// Thread-safety: Set may be called from any goroutine. Consume is called
// only by the rebuild worker.
type reloadLatch struct {
	pending atomic.Bool
	signal  chan struct{}
}

func newReloadLatch() *reloadLatch {
	return &reloadLatch{signal: make(chan struct{}, 1)}
}

// Set latches the pending flag and signals the worker. A Set during an
// in-progress rebuild re-arms the latch so the follow-up pass is never
// lost, even if the running pass already observed a consistent state.
func (l *reloadLatch) Set() {
	l.pending.Store(true)

	// Non-blocking - buffer of 1 coalesces multiple signals
	select {
	case l.signal <- struct{}{}:
	default:
	}
}

// Wait returns the channel the worker blocks on between passes.
func (l *reloadLatch) Wait() <-chan struct{} {
	return l.signal
}

// Consume atomically clears the pending flag and reports whether it was
// set. Exactly one rebuild attempt observes each latched notification.
func (l *reloadLatch) Consume() bool {
	return l.pending.Swap(false)
}
