package ring

import (
	"context"

	"github.com/gosync-labs/cyclicring/counter"
)

// BlockingRecyclable is the swap-semantics counterpart to Blocking:
// PushSwap exchanges the caller's cell with the slot contents instead
// of overwriting them, so both producer and consumer can recycle
// buffers without allocating.
type BlockingRecyclable[T any] struct {
	capacity uint64
	data     []T

	writePoint uint64
	readPoint  uint64

	size *counter.HysteresisLock
}

// NewBlockingRecyclable creates a blocking, swap-semantics ring
// buffer with the given capacity and hysteresis thresholds.
func NewBlockingRecyclable[T any](capacity uint64, thresholdDown, thresholdUp int) *BlockingRecyclable[T] {
	validateCapacity(capacity)
	if thresholdDown == 0 {
		thresholdDown = 1
	}
	if thresholdUp == 0 {
		thresholdUp = 1
	}

	return &BlockingRecyclable[T]{
		capacity: capacity,
		data:     make([]T, capacity),
		size:     counter.NewHysteresis(int(capacity), thresholdDown, thresholdUp, 0),
	}
}

// PushSwap blocks while the buffer is full, then exchanges *cell with
// the write slot's contents: *cell ends up holding whatever previously
// occupied that slot, which is also returned as displaced. ok is false
// if the buffer is terminated, in which case *cell is untouched.
func (b *BlockingRecyclable[T]) PushSwap(cell *T) (displaced T, ok bool) {
	if !b.size.WaitForAdd() {
		return displaced, false
	}

	prev := b.data[b.writePoint]
	b.data[b.writePoint] = *cell
	*cell = prev

	b.writePoint++
	if b.writePoint == b.capacity {
		b.writePoint = 0
	}

	b.size.Add()
	return prev, true
}

// PopSwap blocks while the buffer is empty, then exchanges *cell with
// the read slot's contents, delivering the consumed value into *cell
// (and as displaced) while leaving the caller's previous cell contents
// behind for the producer to recycle.
func (b *BlockingRecyclable[T]) PopSwap(cell *T) (displaced T, ok bool) {
	if !b.size.WaitForSub() {
		return displaced, false
	}

	prev := b.data[b.readPoint]
	b.data[b.readPoint] = *cell
	*cell = prev

	b.readPoint++
	if b.readPoint == b.capacity {
		b.readPoint = 0
	}

	b.size.Sub()
	return prev, true
}

// WaitForSpace blocks until the buffer has room, the context is done,
// or the buffer is terminated.
func (b *BlockingRecyclable[T]) WaitForSpace(ctx context.Context) bool {
	return b.size.WaitForAddContext(ctx)
}

// WaitForData blocks until the buffer has an element, the context is
// done, or the buffer is terminated.
func (b *BlockingRecyclable[T]) WaitForData(ctx context.Context) bool {
	return b.size.WaitForSubContext(ctx)
}

// Terminate unblocks every current and future waiter.
func (b *BlockingRecyclable[T]) Terminate() {
	b.size.Terminate()
}

// IsTerminated reports whether Terminate has been called.
func (b *BlockingRecyclable[T]) IsTerminated() bool {
	return b.size.IsTerminated()
}

// Size returns the current occupancy.
func (b *BlockingRecyclable[T]) Size() int {
	return b.size.Value()
}

// Capacity returns the fixed buffer capacity.
func (b *BlockingRecyclable[T]) Capacity() uint64 {
	return b.capacity
}
