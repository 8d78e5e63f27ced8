// Package counter provides counter-gated locks used to block and
// unblock producer/consumer goroutines based on a bounded occupancy
// counter, without the caller needing its own condition variable.
package counter

import (
	"context"
	"sync"
	"sync/atomic"
)

// Lock is an occupancy counter in [0, max] with two gates: addLock
// blocks Add while the value is at max, subLock blocks Sub while the
// value is zero. Both Add and Sub are serialized through an internal
// mutex; the value observable via Value is an approximate, lock-free
// snapshot intended for monitoring only.
type Lock struct {
	mu   sync.Mutex
	cond *sync.Cond

	max   uint64
	value uint64

	addLock, subLock bool
	terminated       atomic.Bool

	approx atomic.Uint64
}

// New creates a counter lock bounded at max with the given initial
// value. init must be in [0, max].
func New(max, init uint64) *Lock {
	if init > max {
		panic("counter: initial value must be <= max")
	}

	l := &Lock{
		max:     max,
		value:   init,
		addLock: init == max,
		subLock: init == 0,
	}
	l.cond = sync.NewCond(&l.mu)
	l.approx.Store(init)
	return l
}

// Terminate is a one-way transition: it wakes every current and future
// waiter without altering gate state. Callers must observe
// IsTerminated to stop looping.
func (l *Lock) Terminate() {
	l.mu.Lock()
	l.terminated.Store(true)
	l.mu.Unlock()
	l.cond.Broadcast()
}

// IsTerminated reports whether Terminate has been called.
func (l *Lock) IsTerminated() bool {
	return l.terminated.Load()
}

// Value returns an approximate snapshot of the current occupancy,
// useful for observability; it is not synchronized with Add/Sub.
func (l *Lock) Value() uint64 {
	return l.approx.Load()
}

// Add waits while the add gate is closed, then increments the value.
// If the new value reaches max, the add gate closes; if the sub gate
// was closed, it opens and wakes any waiter blocked in Sub. Add is a
// no-op once the lock is terminated.
func (l *Lock) Add() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for l.addLock && !l.terminated.Load() {
		l.cond.Wait()
	}
	if l.terminated.Load() {
		return
	}

	l.value++
	l.approx.Store(l.value)
	if l.value == l.max {
		l.addLock = true
	}
	if l.subLock {
		l.subLock = false
		l.cond.Broadcast()
	}
}

// Sub waits while the sub gate is closed, then decrements the value.
// If the new value reaches zero, the sub gate closes; if the add gate
// was closed, it opens and wakes any waiter blocked in Add. Sub is a
// no-op once the lock is terminated.
func (l *Lock) Sub() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for l.subLock && !l.terminated.Load() {
		l.cond.Wait()
	}
	if l.terminated.Load() {
		return
	}

	l.value--
	l.approx.Store(l.value)
	if l.value == 0 {
		l.subLock = true
	}
	if l.addLock {
		l.addLock = false
		l.cond.Broadcast()
	}
}

// WaitForAdd blocks while the add gate is closed and the lock is not
// terminated.
func (l *Lock) WaitForAdd() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.addLock && !l.terminated.Load() {
		l.cond.Wait()
	}
}

// WaitForAddContext is the deadline/cancellation-aware variant of
// WaitForAdd. It reports false if ctx is done before the gate opens
// or the lock terminates.
func (l *Lock) WaitForAddContext(ctx context.Context) bool {
	return l.waitGate(ctx, func() bool { return l.addLock })
}

// WaitForSub blocks while the sub gate is closed and the lock is not
// terminated.
func (l *Lock) WaitForSub() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.subLock && !l.terminated.Load() {
		l.cond.Wait()
	}
}

// WaitForSubContext is the deadline/cancellation-aware variant of
// WaitForSub. It reports false if ctx is done before the gate opens
// or the lock terminates.
func (l *Lock) WaitForSubContext(ctx context.Context) bool {
	return l.waitGate(ctx, func() bool { return l.subLock })
}

// waitGate blocks while closed() holds and the lock is not
// terminated, honoring ctx cancellation. A goroutine bridges ctx.Done
// into the condition variable since sync.Cond has no native
// cancellation support.
func (l *Lock) waitGate(ctx context.Context, closed func() bool) bool {
	if ctx.Err() != nil {
		return false
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			l.cond.Broadcast()
		case <-stop:
		}
	}()

	l.mu.Lock()
	defer l.mu.Unlock()
	for closed() && !l.terminated.Load() {
		if ctx.Err() != nil {
			return false
		}
		l.cond.Wait()
	}
	return !l.terminated.Load() && ctx.Err() == nil
}
