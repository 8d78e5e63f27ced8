// Package reassembler implements a cyclic reassembler: a bounded
// window over a modular index space that admits out-of-order arrivals
// and releases them in order once the low end of the window is ready.
package reassembler

import (
	"sync"

	"github.com/gosync-labs/cyclicring/modint"
)

// Reassembler holds a window of size slots over a modular index space
// of mod, keyed by a global modular index. Ready elements form a
// contiguous prefix from readPoint; popping a slot that is not present
// is a caller error (see MustPop).
type Reassembler[T any] struct {
	mod  uint64
	size uint64

	data  []T
	exist []bool

	readPoint uint64 // local index into data/exist, rotating mod size
	offset    uint64 // global modular index of window slot 0

	blocking bool
	mu       sync.Mutex
	cond     *sync.Cond
	closed   bool
}

// New creates a non-blocking reassembler: Push on an index ahead of
// the window panics instead of waiting (ValidIndex should be checked
// first). mod must be >= size and size must be > 1.
func New[T any](mod, size uint64) *Reassembler[T] {
	return newReassembler[T](mod, size, false)
}

// NewBlocking creates a reassembler whose Push blocks until the index
// falls inside the window (via intervening Pops) or the reassembler is
// closed.
func NewBlocking[T any](mod, size uint64) *Reassembler[T] {
	return newReassembler[T](mod, size, true)
}

func newReassembler[T any](mod, size uint64, blocking bool) *Reassembler[T] {
	if size <= 1 {
		panic("reassembler: size must be greater than 1")
	}
	if mod < size {
		panic("reassembler: modulus must be >= size")
	}

	r := &Reassembler[T]{
		mod:      mod,
		size:     size,
		data:     make([]T, size),
		exist:    make([]bool, size),
		blocking: blocking,
	}
	if blocking {
		r.cond = sync.NewCond(&r.mu)
	}
	return r
}

// Offset returns the global modular index currently mapped to the
// window's slot 0 (the index the next Pop will deliver).
func (r *Reassembler[T]) Offset() uint64 {
	r.lock()
	defer r.unlock()
	return r.offset
}

// ValidIndex reports whether idx currently falls inside the window.
func (r *Reassembler[T]) ValidIndex(idx uint64) bool {
	r.lock()
	defer r.unlock()
	return r.validIndexLocked(idx)
}

func (r *Reassembler[T]) validIndexLocked(idx uint64) bool {
	if idx >= r.mod {
		panic("reassembler: index out of range for modulus")
	}
	return modint.New(r.offset, r.mod).ClockwiseDistance(modint.New(idx, r.mod)) < r.size
}

// Exist reports whether idx names a slot currently holding an
// admitted value.
func (r *Reassembler[T]) Exist(idx uint64) bool {
	r.lock()
	defer r.unlock()
	if !r.validIndexLocked(idx) {
		return false
	}
	return r.exist[r.localIndexLocked(idx)]
}

// ReadyCount returns the length of the contiguous run of present
// slots starting at readPoint.
func (r *Reassembler[T]) ReadyCount() uint64 {
	r.lock()
	defer r.unlock()
	return r.readyCountLocked()
}

func (r *Reassembler[T]) readyCountLocked() uint64 {
	var count uint64
	idx := r.readPoint
	for r.exist[idx] {
		count++
		idx++
		if idx == r.size {
			idx = 0
		}
		if idx == r.readPoint {
			break
		}
	}
	return count
}

// Push admits v at the global modular index idx, requiring
// ValidIndex(idx). It returns the value previously stored in that
// slot: the zero value if the slot was never written, otherwise the
// last value written there, even if it was already popped or dropped.
// If idx is ahead of the
// window on a blocking reassembler, Push waits for the window to
// slide forward via Pop, or until Close is called (in which case ok
// is false and the value is discarded).
func (r *Reassembler[T]) Push(v T, idx uint64) (displaced T, ok bool) {
	r.lock()
	defer r.unlock()

	if r.blocking {
		for !r.validIndexLocked(idx) {
			if r.closed {
				var zero T
				return zero, false
			}
			r.cond.Wait()
		}
	} else if !r.validIndexLocked(idx) {
		panic("reassembler: index outside window")
	}

	return r.pushLocked(v, idx), true
}

// TryPush admits v at idx without blocking, reporting false if idx is
// currently outside the window.
func (r *Reassembler[T]) TryPush(v T, idx uint64) (displaced T, ok bool) {
	r.lock()
	defer r.unlock()

	if !r.validIndexLocked(idx) {
		var zero T
		return zero, false
	}
	return r.pushLocked(v, idx), true
}

// ForcePush admits v at idx, sliding the window forward (dropping any
// unconsumed entries at the low end) if idx is ahead of the window.
func (r *Reassembler[T]) ForcePush(v T, idx uint64) T {
	r.lock()
	defer r.unlock()

	if !r.validIndexLocked(idx) {
		diff := modint.New(r.offset, r.mod).ClockwiseDistance(modint.New(idx, r.mod)) - (r.size - 1)
		r.offsetLocked((r.offset + diff) % r.mod)
	}
	return r.pushLocked(v, idx)
}

func (r *Reassembler[T]) pushLocked(v T, idx uint64) T {
	local := r.localIndexLocked(idx)
	result := r.data[local]
	r.data[local] = v
	r.exist[local] = true

	if r.blocking {
		r.cond.Broadcast()
	}
	return result
}

// Pop requires that the slot at the current read point is present. It
// returns the value, clears presence, and advances readPoint/offset
// by one.
func (r *Reassembler[T]) Pop() (v T, ok bool) {
	r.lock()
	defer r.unlock()

	if !r.exist[r.readPoint] {
		var zero T
		return zero, false
	}
	return r.popLocked(), true
}

// MustPop is the unchecked counterpart to Pop, matching the original
// cyclic_reassembler's contract: popping an empty slot is a caller
// error and panics rather than returning ok=false.
func (r *Reassembler[T]) MustPop() T {
	r.lock()
	defer r.unlock()

	if !r.exist[r.readPoint] {
		panic("reassembler: pop of an empty slot")
	}
	return r.popLocked()
}

func (r *Reassembler[T]) popLocked() T {
	result := r.data[r.readPoint]
	r.exist[r.readPoint] = false

	r.readPoint++
	if r.readPoint == r.size {
		r.readPoint = 0
	}
	r.offset++
	if r.offset == r.mod {
		r.offset = 0
	}

	if r.blocking {
		r.cond.Broadcast()
	}
	return result
}

// SetOffset sets the window's low end to newOffset, sliding it forward
// and clearing presence for every slot it passes over.
func (r *Reassembler[T]) SetOffset(newOffset uint64) {
	r.lock()
	defer r.unlock()
	r.offsetLocked(newOffset)
}

func (r *Reassembler[T]) offsetLocked(newOffset uint64) {
	if newOffset >= r.mod {
		panic("reassembler: offset out of range for modulus")
	}

	for r.offset != newOffset {
		r.exist[r.readPoint] = false
		r.readPoint++
		if r.readPoint == r.size {
			r.readPoint = 0
		}
		r.offset++
		if r.offset == r.mod {
			r.offset = 0
		}
	}

	if r.blocking {
		r.cond.Broadcast()
	}
}

// Close unblocks any Push currently waiting for the window to slide.
// Only meaningful on a blocking reassembler.
func (r *Reassembler[T]) Close() {
	r.lock()
	r.closed = true
	r.unlock()
	if r.blocking {
		r.cond.Broadcast()
	}
}

func (r *Reassembler[T]) localIndexLocked(idx uint64) uint64 {
	diff := modint.New(r.offset, r.mod).ClockwiseDistance(modint.New(idx, r.mod))
	if diff >= r.size {
		panic("reassembler: index outside window")
	}
	local := r.readPoint + diff
	if local >= r.size {
		local -= r.size
	}
	return local
}

// lock/unlock guard every operation unconditionally: a non-blocking
// reassembler still admits a concurrent producer and consumer (it just
// never parks one waiting on the other), so the mutex is always live.
func (r *Reassembler[T]) lock() {
	r.mu.Lock()
}

func (r *Reassembler[T]) unlock() {
	r.mu.Unlock()
}
