package ring

import (
	"context"

	"github.com/gosync-labs/cyclicring/counter"
)

// Blocking is a fixed-capacity SPSC ring buffer where Push blocks
// while the buffer is full and Pop blocks while it is empty.
// Occupancy is owned by a counter.HysteresisLock so wake-up frequency
// is governed by the configured thresholds instead of firing on every
// single element.
type Blocking[T any] struct {
	capacity uint64
	data     []T

	writePoint uint64 // producer-owned
	readPoint  uint64 // consumer-owned

	size *counter.HysteresisLock
}

// NewBlocking creates a blocking ring buffer. thresholdDown/thresholdUp
// default to 1 when given as 0, matching the original cyclic_buffer's
// default constructor arguments.
func NewBlocking[T any](capacity uint64, thresholdDown, thresholdUp int) *Blocking[T] {
	validateCapacity(capacity)
	if thresholdDown == 0 {
		thresholdDown = 1
	}
	if thresholdUp == 0 {
		thresholdUp = 1
	}

	return &Blocking[T]{
		capacity: capacity,
		data:     make([]T, capacity),
		size:     counter.NewHysteresis(int(capacity), thresholdDown, thresholdUp, 0),
	}
}

// Push blocks while the buffer is full, then writes v at the write
// cursor and advances it. It reports false, leaving the buffer
// untouched, if the buffer is terminated.
func (b *Blocking[T]) Push(v T) bool {
	if !b.size.WaitForAdd() {
		return false
	}

	b.data[b.writePoint] = v
	b.writePoint++
	if b.writePoint == b.capacity {
		b.writePoint = 0
	}

	b.size.Add()
	return true
}

// Pop blocks while the buffer is empty, then reads the element at the
// read cursor and advances it. It reports ok=false, with a zero value,
// once the buffer is terminated, even if elements remain buffered.
func (b *Blocking[T]) Pop() (T, bool) {
	if !b.size.WaitForSub() {
		var zero T
		return zero, false
	}

	v := b.data[b.readPoint]
	b.readPoint++
	if b.readPoint == b.capacity {
		b.readPoint = 0
	}

	b.size.Sub()
	return v, true
}

// WaitForSpace blocks until the buffer has room for another element,
// the context is done, or the buffer is terminated, reporting which
// happened via the usual context-aware boolean contract.
func (b *Blocking[T]) WaitForSpace(ctx context.Context) bool {
	return b.size.WaitForAddContext(ctx)
}

// WaitForData blocks until the buffer has an element available, the
// context is done, or the buffer is terminated.
func (b *Blocking[T]) WaitForData(ctx context.Context) bool {
	return b.size.WaitForSubContext(ctx)
}

// Terminate unblocks every current and future waiter. Push and Pop
// become no-ops that report false once terminated.
func (b *Blocking[T]) Terminate() {
	b.size.Terminate()
}

// IsTerminated reports whether Terminate has been called.
func (b *Blocking[T]) IsTerminated() bool {
	return b.size.IsTerminated()
}

// Size returns the current occupancy.
func (b *Blocking[T]) Size() int {
	return b.size.Value()
}

// Capacity returns the fixed buffer capacity.
func (b *Blocking[T]) Capacity() uint64 {
	return b.capacity
}
