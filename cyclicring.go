// Package cyclicring re-exports the module's concurrency primitives
// under a single import, the way a caller who only needs the ring
// buffers (and not the lower-level pieces they're built from) would
// want to reach for them.
//
// Ported from a C++11 cyclic-buffer/hysteresis-counter-lock design;
// see the ring, counter, event, spinlock, modint, reassembler, and
// barrier subpackages for the individual primitives and their own
// documentation.
package cyclicring

import (
	"github.com/gosync-labs/cyclicring/barrier"
	"github.com/gosync-labs/cyclicring/reassembler"
	"github.com/gosync-labs/cyclicring/ring"
)

type (
	// Blocking is a fixed-capacity SPSC ring buffer that blocks the
	// producer when full and the consumer when empty.
	Blocking[T any] = ring.Blocking[T]

	// BlockingRecyclable is Blocking with swap instead of copy
	// semantics on push/pop.
	BlockingRecyclable[T any] = ring.BlockingRecyclable[T]

	// LockFree is a fixed-capacity SPSC ring buffer whose producer
	// never blocks, overwriting the oldest entries on overrun.
	LockFree[T any] = ring.LockFree[T]

	// LockFreeRecyclable is LockFree with swap instead of copy
	// semantics on push/pop.
	LockFreeRecyclable[T any] = ring.LockFreeRecyclable[T]

	// Reassembler reorders out-of-order arrivals within a sliding
	// window keyed by a modular index.
	Reassembler[T any] = reassembler.Reassembler[T]

	// Barrier rendezvous a known set of goroutines.
	Barrier = barrier.Barrier
)

// NewBarrier creates a barrier expecting n participants per
// rendezvous. The generic constructors (ring.NewBlocking[T],
// reassembler.New[T], ...) are not re-exported here: Go has no way to
// forward a type parameter through a package-level variable, so
// callers that need a concrete element type import the subpackage
// directly, e.g. ring.NewBlocking[int](capacity, 2, 2).
func NewBarrier(n int) *Barrier {
	return barrier.New(n)
}
