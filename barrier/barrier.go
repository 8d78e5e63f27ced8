// Package barrier provides a thread (goroutine) barrier that
// rendezvous a known set of participants: every Sync call blocks
// until the configured number of participants have all called Sync,
// then all are released together.
package barrier

import (
	"context"
	"sync"
)

// Barrier coordinates nThreads participants through repeated
// rendezvous points. Unregistering a participant while others are
// waiting can itself trigger a release, if the waiters now meet the
// lowered count; registering one never does.
type Barrier struct {
	mu   sync.Mutex
	cond *sync.Cond

	nThreads   int
	nInvolved  int
	generation uint64
	terminated bool
}

// New creates a barrier expecting n participants per rendezvous.
func New(n int) *Barrier {
	b := &Barrier{nThreads: n}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// ThreadCount returns the number of participants currently expected
// per rendezvous.
func (b *Barrier) ThreadCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nThreads
}

// RegisterThread increases the expected participant count by one. It
// never releases goroutines already waiting, since their number stays
// below the raised count.
func (b *Barrier) RegisterThread() {
	b.mu.Lock()
	b.nThreads++
	b.mu.Unlock()
}

// UnregisterThread decreases the expected participant count by one.
// If goroutines already waiting now meet or exceed the new count,
// they are released.
func (b *Barrier) UnregisterThread() {
	b.mu.Lock()
	b.nThreads--
	if b.nInvolved > 0 && b.nInvolved >= b.nThreads {
		b.nInvolved = 0
		b.generation++
		b.cond.Broadcast()
	}
	b.mu.Unlock()
}

// Terminate wakes every current waiter and makes every subsequent Sync
// return false immediately.
func (b *Barrier) Terminate() {
	b.mu.Lock()
	b.terminated = true
	if b.nInvolved > 0 {
		b.nInvolved = 0
	}
	b.mu.Unlock()
	b.cond.Broadcast()
}

// IsTerminated reports whether Terminate has been called.
func (b *Barrier) IsTerminated() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.terminated
}

// Sync registers the calling goroutine's arrival and blocks until
// every expected participant has arrived, at which point all are
// released together. It returns false immediately if the barrier is
// terminated or mis-configured (nThreads == 0), and false if ctx is
// done before the rendezvous completes — in which case the arrival is
// rolled back to preserve the nInvolved < nThreads invariant.
//
// Waiters block on a generation token captured at arrival time, not on
// nInvolved reaching zero: nInvolved is reused across rounds, so a
// waiter woken for its own round could otherwise re-observe nInvolved
// already incremented by the next round (started by a goroutine that
// raced ahead) and loop back into Wait forever.
func (b *Barrier) Sync(ctx context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.terminated || b.nThreads == 0 {
		return false
	}

	b.nInvolved++
	if b.nInvolved >= b.nThreads {
		b.nInvolved = 0
		b.generation++
		b.cond.Broadcast()
		return !b.terminated
	}

	myGen := b.generation

	if ctx == nil || ctx.Done() == nil {
		for b.generation == myGen && !b.terminated {
			b.cond.Wait()
		}
		return !b.terminated
	}

	return b.waitContext(ctx, myGen)
}

func (b *Barrier) waitContext(ctx context.Context, myGen uint64) bool {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			b.cond.Broadcast()
		case <-stop:
		}
	}()

	for b.generation == myGen && !b.terminated {
		if ctx.Err() != nil {
			// Preserve the invariant: this arrival never completed.
			b.nInvolved--
			return false
		}
		b.cond.Wait()
	}
	if ctx.Err() != nil {
		return false
	}
	return !b.terminated
}
