// Package event provides a resettable, waitable boolean flag used for
// one-directional wake-ups between a single signaller and one or more
// waiters.
package event

import (
	"sync"
	"time"
)

// Event is a resettable boolean signal with two reset policies:
//
//   - manual-reset: Wait returns once the flag is observed true and
//     leaves it set.
//   - auto-reset: Wait atomically consumes the flag (clearing it) when
//     it returns true, so only one waiter per Set succeeds.
//
// Every false→true transition wakes all current waiters; Reset never
// wakes anyone.
type Event struct {
	mu    sync.Mutex
	cond  *sync.Cond
	state bool
	auto  bool
}

// NewManual creates a manual-reset event with the given initial state.
func NewManual(initial bool) *Event {
	e := &Event{state: initial, auto: false}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// NewAuto creates an auto-reset event with the given initial state.
func NewAuto(initial bool) *Event {
	e := &Event{state: initial, auto: true}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// IsSet reports the current state without consuming it, regardless of
// reset policy.
func (e *Event) IsSet() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Set transitions the state to true. If the state actually flipped
// (it was previously false), every current waiter is woken.
func (e *Event) Set() {
	e.mu.Lock()
	flipped := !e.state
	e.state = true
	e.mu.Unlock()

	if flipped {
		e.cond.Broadcast()
	}
}

// Reset forces the state back to false without waking anyone.
func (e *Event) Reset() {
	e.mu.Lock()
	e.state = false
	e.mu.Unlock()
}

// Wait blocks until the event is set. For an auto-reset event, a
// successful Wait atomically consumes the signal.
func (e *Event) Wait() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for !e.tryConsumeLocked() {
		e.cond.Wait()
	}
}

// WaitFor blocks until the event is set or the duration elapses. It
// reports true iff it observed (and, for an auto-reset event,
// consumed) a set state. On timeout it makes one last-chance
// consumption attempt before reporting the observed state.
func (e *Event) WaitFor(d time.Duration) bool {
	return e.WaitUntil(time.Now().Add(d))
}

// WaitUntil blocks until the event is set or the deadline passes, with
// the same return-value contract as WaitFor.
func (e *Event) WaitUntil(deadline time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for !e.tryConsumeLocked() {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return e.tryConsumeLocked()
		}
		e.waitTimeoutLocked(remaining)
	}

	return true
}

// tryConsumeLocked must be called with mu held. It reports whether the
// event was observed set, consuming it for auto-reset events.
func (e *Event) tryConsumeLocked() bool {
	if e.auto {
		if e.state {
			e.state = false
			return true
		}
		return false
	}
	return e.state
}

// waitTimeoutLocked blocks on the condition variable for at most d,
// re-acquiring mu before returning, regardless of whether the deadline
// was reached or a Broadcast woke it early.
func (e *Event) waitTimeoutLocked(d time.Duration) {
	done := make(chan struct{})
	timer := time.AfterFunc(d, func() {
		e.cond.Broadcast()
		close(done)
	})
	defer timer.Stop()

	e.cond.Wait()

	select {
	case <-done:
	default:
	}
}
