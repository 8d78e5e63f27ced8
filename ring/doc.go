// Package ring implements four fixed-capacity, single-producer /
// single-consumer ring buffers, selected along two independent axes:
//
//   - Blocking vs LockFree: whether a full buffer blocks the producer
//     (and an empty one blocks the consumer) via a counter lock, or
//     the producer never blocks and instead overwrites the oldest
//     unread element.
//   - plain vs Recyclable: whether push/pop copy the element, or swap
//     it with a caller-supplied cell so both sides can reuse storage
//     without allocating.
//
// Only the producer goroutine may call Push/PushSwap; only the
// consumer goroutine may call Pop/PopSwap. Exactly one owner is
// responsible for calling Terminate, after which no further producer
// or consumer operation should be in flight before the buffer is
// dropped.
package ring

func validateCapacity(capacity uint64) {
	if capacity < 2 {
		panic("ring: capacity must be >= 2")
	}
}
