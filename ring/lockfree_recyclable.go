package ring

import (
	"sync/atomic"

	"github.com/gosync-labs/cyclicring/event"
	"github.com/gosync-labs/cyclicring/spinlock"
)

// LockFreeRecyclable is the swap-semantics counterpart to LockFree:
// PushSwap/PopSwap exchange a caller-supplied cell with the slot
// contents instead of overwriting/copying, the direct Go translation
// of the original cyclic_buffer<true>'s std::swap-based push/pop.
type LockFreeRecyclable[T any] struct {
	capacity        uint64
	unlockThreshold int64
	overwritingStep uint64

	data []T

	writePoint uint64
	readPoint  atomic.Uint64

	sync spinlock.SpinLock

	size       atomic.Int64
	terminated atomic.Bool
	readEnable *event.Event
}

// NewLockFreeRecyclable creates a lock-free, swap-semantics ring
// buffer. See NewLockFree for the unlockThreshold/overwritingStep
// defaulting rules.
func NewLockFreeRecyclable[T any](capacity uint64, unlockThreshold int, overwritingStep uint64) *LockFreeRecyclable[T] {
	validateCapacity(capacity)
	if unlockThreshold <= 0 {
		unlockThreshold = 1
	}
	if overwritingStep == 0 {
		overwritingStep = 1
	}

	return &LockFreeRecyclable[T]{
		capacity:        capacity,
		unlockThreshold: int64(unlockThreshold),
		overwritingStep: overwritingStep,
		data:            make([]T, capacity),
		readEnable:      event.NewManual(false),
	}
}

// PushSwap exchanges *cell with the write slot's contents and advances
// the write cursor. It never blocks; if the buffer is full it first
// discards the oldest overwritingStep entries, exactly like LockFree.Push. The value
// previously in the slot ends up in *cell and is also returned.
func (l *LockFreeRecyclable[T]) PushSwap(cell *T) (displaced T) {
	if l.size.Load() >= int64(l.capacity) {
		l.sync.Lock()
		if l.readPoint.Load() == l.writePoint {
			newRead := (l.readPoint.Load() + l.overwritingStep) % l.capacity
			l.readPoint.Store(newRead)
			l.size.Add(-int64(l.overwritingStep))
		}
		l.sync.Unlock()
	}

	prev := l.data[l.writePoint]
	l.data[l.writePoint] = *cell
	*cell = prev

	l.writePoint++
	if l.writePoint == l.capacity {
		l.writePoint = 0
	}
	l.size.Add(1)

	if !l.readEnable.IsSet() && l.size.Load() >= l.unlockThreshold {
		l.readEnable.Set()
	}

	return prev
}

// PopSwap blocks while the buffer is empty, then exchanges *cell with
// the read slot's contents and advances the read cursor. ok is false
// only when the buffer is both terminated and drained, in which case
// *cell is untouched.
func (l *LockFreeRecyclable[T]) PopSwap(cell *T) (displaced T, ok bool) {
	l.wait()

	if l.size.Load() <= 0 {
		return displaced, false
	}

	l.sync.Lock()
	rp := l.readPoint.Load()
	prev := l.data[rp]
	l.data[rp] = *cell
	*cell = prev
	rp++
	if rp == l.capacity {
		rp = 0
	}
	l.readPoint.Store(rp)
	l.sync.Unlock()

	if l.size.Add(-1) == 0 && !l.terminated.Load() {
		l.readEnable.Reset()
	}
	return prev, true
}

func (l *LockFreeRecyclable[T]) wait() {
	if !l.readEnable.IsSet() && !l.terminated.Load() {
		l.readEnable.Wait()
	}
}

// WaitForData blocks until the buffer has data available or the
// buffer is terminated, without consuming anything.
func (l *LockFreeRecyclable[T]) WaitForData() {
	l.wait()
}

// Terminate unblocks a consumer currently parked in PopSwap.
func (l *LockFreeRecyclable[T]) Terminate() {
	l.terminated.Store(true)
	l.readEnable.Set()
}

// IsTerminated reports whether Terminate has been called.
func (l *LockFreeRecyclable[T]) IsTerminated() bool {
	return l.terminated.Load()
}

// Size returns the current occupancy (approximate, see LockFree.Size).
func (l *LockFreeRecyclable[T]) Size() int64 {
	return l.size.Load()
}

// Capacity returns the fixed buffer capacity.
func (l *LockFreeRecyclable[T]) Capacity() uint64 {
	return l.capacity
}
