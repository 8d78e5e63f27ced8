package counter

import (
	"context"
	"sync"
	"sync/atomic"
)

// HysteresisLock is a Lock variant with two independent release
// thresholds, used to cut notification frequency and avoid gate
// ping-pong under bursty producer/consumer flow.
//
// The sub gate only opens once the value rises to at least
// thresholdDown; the add gate only opens once the value falls to at
// most max-thresholdUp. Gates still close at the extremes (0 and
// max), exactly as in Lock.
type HysteresisLock struct {
	mu   sync.Mutex
	cond *sync.Cond

	max           int
	thresholdDown int
	thresholdUp   int

	value atomic.Int64

	addLock, subLock bool
	terminated       atomic.Bool
}

// NewHysteresis creates a hysteresis counter lock. thresholdDown and
// thresholdUp must each be in [1, max].
func NewHysteresis(max, thresholdDown, thresholdUp, init int) *HysteresisLock {
	if thresholdDown < 1 || thresholdDown > max {
		panic("counter: thresholdDown out of range")
	}
	if thresholdUp < 1 || thresholdUp > max {
		panic("counter: thresholdUp out of range")
	}
	if init < 0 || init > max {
		panic("counter: initial value out of range")
	}

	l := &HysteresisLock{
		max:           max,
		thresholdDown: thresholdDown,
		thresholdUp:   thresholdUp,
		addLock:       init == max,
		subLock:       init == 0,
	}
	l.value.Store(int64(init))
	l.cond = sync.NewCond(&l.mu)
	return l
}

// Terminate is a one-way transition: it wakes every current and future
// waiter without altering gate state.
func (l *HysteresisLock) Terminate() {
	l.mu.Lock()
	l.terminated.Store(true)
	l.mu.Unlock()
	l.cond.Broadcast()
}

// IsTerminated reports whether Terminate has been called.
func (l *HysteresisLock) IsTerminated() bool {
	return l.terminated.Load()
}

// Value returns the current occupancy.
func (l *HysteresisLock) Value() int {
	return int(l.value.Load())
}

// Add waits while the add gate is closed, then increments the value.
// The add gate closes once the value reaches max; the sub gate only
// opens once the new value is >= thresholdDown.
func (l *HysteresisLock) Add() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for l.addLock && !l.terminated.Load() {
		l.cond.Wait()
	}
	if l.terminated.Load() {
		return
	}

	v := int(l.value.Add(1))
	if v == l.max {
		l.addLock = true
	}
	if l.subLock && v >= l.thresholdDown {
		l.subLock = false
		l.cond.Broadcast()
	}
}

// Sub waits while the sub gate is closed, then decrements the value.
// The sub gate closes once the value reaches zero; the add gate only
// opens once the new value is <= max-thresholdUp.
func (l *HysteresisLock) Sub() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for l.subLock && !l.terminated.Load() {
		l.cond.Wait()
	}
	if l.terminated.Load() {
		return
	}

	v := int(l.value.Add(-1))
	if v == 0 {
		l.subLock = true
	}
	if l.addLock && v <= l.max-l.thresholdUp {
		l.addLock = false
		l.cond.Broadcast()
	}
}

// WaitForAdd blocks while the add gate is closed and the lock is not
// terminated, reporting false iff it returned due to termination.
func (l *HysteresisLock) WaitForAdd() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.addLock && !l.terminated.Load() {
		l.cond.Wait()
	}
	return !l.terminated.Load()
}

// WaitForAddContext is the context-cancellable variant of WaitForAdd.
func (l *HysteresisLock) WaitForAddContext(ctx context.Context) bool {
	return l.waitGate(ctx, func() bool { return l.addLock })
}

// WaitForSub blocks while the sub gate is closed and the lock is not
// terminated, reporting false iff it returned due to termination.
func (l *HysteresisLock) WaitForSub() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.subLock && !l.terminated.Load() {
		l.cond.Wait()
	}
	return !l.terminated.Load()
}

// WaitForSubContext is the context-cancellable variant of WaitForSub.
func (l *HysteresisLock) WaitForSubContext(ctx context.Context) bool {
	return l.waitGate(ctx, func() bool { return l.subLock })
}

func (l *HysteresisLock) waitGate(ctx context.Context, closed func() bool) bool {
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
