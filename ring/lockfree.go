package ring

import (
	"sync/atomic"

	"github.com/gosync-labs/cyclicring/event"
	"github.com/gosync-labs/cyclicring/spinlock"
)

// LockFree is the overwriting, non-recyclable SPSC ring buffer: Push
// never blocks. On collision with the consumer it advances the read
// cursor by overwritingStep, discarding the oldest entries instead of
// waiting. Pop blocks only while the buffer is empty.
//
// Under sustained overrun the consumer may observe a contiguous
// prefix being dropped; this is accepted by design (spec's lossy
// overrun contract), not a bug to fix.
//
// Memory ordering: every slot write happens in the producer goroutine
// strictly before the atomic operations (size.Add, readEnable.Set)
// that publish it; the consumer's matching
// atomic loads/waits happen before its slot read. Go's memory model
// guarantees a goroutine's own prior plain writes are visible to
// anyone who observes its subsequent atomic store, so no additional
// barriers are needed beyond the atomics already present.
type LockFree[T any] struct {
	capacity        uint64
	unlockThreshold int64
	overwritingStep uint64

	data []T

	writePoint uint64 // producer-owned
	readPoint  atomic.Uint64

	sync spinlock.SpinLock // arbitrates the lap-detection path only

	size       atomic.Int64
	terminated atomic.Bool
	readEnable *event.Event
}

// NewLockFree creates a lock-free, overwriting ring buffer.
// unlockThreshold (how many buffered items before Pop is woken) and
// overwritingStep (how many entries to drop at once on overrun)
// default to 1 when given as 0.
func NewLockFree[T any](capacity uint64, unlockThreshold int, overwritingStep uint64) *LockFree[T] {
	validateCapacity(capacity)
	if unlockThreshold <= 0 {
		unlockThreshold = 1
	}
	if overwritingStep == 0 {
		overwritingStep = 1
	}

	return &LockFree[T]{
		capacity:        capacity,
		unlockThreshold: int64(unlockThreshold),
		overwritingStep: overwritingStep,
		data:            make([]T, capacity),
		readEnable:      event.NewManual(false),
	}
}

// Push writes v at the write cursor and advances it. It never blocks:
// if the buffer is full, the oldest overwritingStep entries are
// discarded first to make room.
func (l *LockFree[T]) Push(v T) {
	if l.size.Load() >= int64(l.capacity) {
		l.sync.Lock()
		if l.readPoint.Load() == l.writePoint {
			newRead := (l.readPoint.Load() + l.overwritingStep) % l.capacity
			l.readPoint.Store(newRead)
			l.size.Add(-int64(l.overwritingStep))
		}
		l.sync.Unlock()
	}

	l.data[l.writePoint] = v
	l.writePoint++
	if l.writePoint == l.capacity {
		l.writePoint = 0
	}
	l.size.Add(1)

	if !l.readEnable.IsSet() && l.size.Load() >= l.unlockThreshold {
		l.readEnable.Set()
	}
}

// Pop blocks while the buffer is empty, then reads the element at the
// read cursor and advances it. ok is false only when the buffer is
// both terminated and drained.
func (l *LockFree[T]) Pop() (v T, ok bool) {
	l.wait()

	if l.size.Load() <= 0 {
		var zero T
		return zero, false
	}

	l.sync.Lock()
	rp := l.readPoint.Load()
	result := l.data[rp]
	rp++
	if rp == l.capacity {
		rp = 0
	}
	l.readPoint.Store(rp)
	l.sync.Unlock()

	if l.size.Add(-1) == 0 && !l.terminated.Load() {
		l.readEnable.Reset()
	}
	return result, true
}

func (l *LockFree[T]) wait() {
	if !l.readEnable.IsSet() && !l.terminated.Load() {
		l.readEnable.Wait()
	}
}

// WaitForData blocks until the buffer has data available or the
// buffer is terminated, without consuming anything — a standalone
// version of the wait Pop performs internally, for callers that want
// to separate "wait" from "read" (e.g. to poll several buffers).
func (l *LockFree[T]) WaitForData() {
	l.wait()
}

// Terminate unblocks a consumer currently parked in Pop. Push remains
// callable afterward (it never blocked in the first place) but has no
// useful consumer left to observe it.
func (l *LockFree[T]) Terminate() {
	l.terminated.Store(true)
	l.readEnable.Set()
}

// IsTerminated reports whether Terminate has been called.
func (l *LockFree[T]) IsTerminated() bool {
	return l.terminated.Load()
}

// Size returns the current occupancy (approximate: the lock-free
// variant's size is read without synchronizing with an in-flight Push
// or Pop).
func (l *LockFree[T]) Size() int64 {
	return l.size.Load()
}

// Capacity returns the fixed buffer capacity.
func (l *LockFree[T]) Capacity() uint64 {
	return l.capacity
}
