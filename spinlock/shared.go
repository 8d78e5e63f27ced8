package spinlock

import "sync/atomic"

// SharedSpinLock is a busy-waiting reader/writer lock. Internally it
// is a single signed counter: 0 means idle, n>0 means n readers hold
// the lock, -1 means a writer holds it. Ported from the original
// shared_spin_lock's CAS-loop state machine.
//
// A writer request starves while any reader holds the lock, and a
// reader request busy-waits while a writer holds it; neither
// direction makes a fairness guarantee.
type SharedSpinLock struct {
	state atomic.Int32
}

// Lock busy-waits for exclusive (writer) access.
func (s *SharedSpinLock) Lock() {
	for {
		if s.state.CompareAndSwap(0, -1) {
			return
		}
	}
}

// TryLock attempts to claim exclusive access without waiting.
func (s *SharedSpinLock) TryLock() bool {
	return s.state.CompareAndSwap(0, -1)
}

// Unlock releases exclusive access.
func (s *SharedSpinLock) Unlock() {
	s.state.CompareAndSwap(-1, 0)
}

// LockShared busy-waits for shared (reader) access.
func (s *SharedSpinLock) LockShared() {
	cur := s.state.Load()
	for {
		if cur == -1 {
			cur = 0
			continue
		}
		if s.state.CompareAndSwap(cur, cur+1) {
			return
		}
		cur = s.state.Load()
	}
}

// TryLockShared attempts to claim shared access without waiting.
func (s *SharedSpinLock) TryLockShared() bool {
	cur := s.state.Load()
	for {
		if cur == -1 {
			return false
		}
		if s.state.CompareAndSwap(cur, cur+1) {
			return true
		}
		cur = s.state.Load()
	}
}

// UnlockShared releases one shared (reader) hold.
func (s *SharedSpinLock) UnlockShared() {
	cur := s.state.Load()
	for {
		if cur <= 0 {
			return
		}
		if s.state.CompareAndSwap(cur, cur-1) {
			return
		}
		cur = s.state.Load()
	}
}
