package ring

import (
	"testing"
	"time"
)

// TestLockFreeRecyclableRoundTripIdentity mirrors the blocking
// variant's round-trip identity check under swap semantics.
func TestLockFreeRecyclableRoundTripIdentity(t *testing.T) {
	l := NewLockFreeRecyclable[int](4, 1, 1)

	cell := 0
	for i := 1; i <= 4; i++ {
		cell = i
		_ = l.PushSwap(&cell)
		// cell now holds the prior (zero-valued, since buffer started
		// empty) slot contents.
	}

	readCell := -1
	displaced, ok := l.PopSwap(&readCell)
	if !ok {
		t.Fatalf("expected pop to succeed")
	}
	if displaced != 1 {
		t.Fatalf("expected FIFO order, first pop should return 1, got %d", displaced)
	}
	if readCell != 1 {
		t.Fatalf("expected *cell updated to displaced value, got %d", readCell)
	}
}

func TestLockFreeRecyclablePushNeverBlocksAndOverwrites(t *testing.T) {
	const capacity = 4
	l := NewLockFreeRecyclable[int](capacity, 1, 1)

	cell := 0
	for i := 1; i <= 1000; i++ {
		cell = i
		l.PushSwap(&cell)
	}

	if sz := l.Size(); sz < 0 || sz > capacity {
		t.Fatalf("size out of bounds: %d", sz)
	}

	var last int = -1
	for {
		readCell := 0
		v, ok := l.PopSwap(&readCell)
		if !ok {
			break
		}
		if v <= last {
			t.Fatalf("expected monotonically increasing surviving suffix, got %d after %d", v, last)
		}
		last = v
		if l.Size() <= 0 {
			break
		}
	}
	if last != 1000 {
		t.Fatalf("expected the surviving suffix to end at 1000, got %d", last)
	}
}

func TestLockFreeRecyclablePopBlocksOnEmpty(t *testing.T) {
	l := NewLockFreeRecyclable[int](4, 1, 1)

	done := make(chan struct{})
	go func() {
		cell := 0
		l.PopSwap(&cell)
		close(done)
	}()

	select {
	case <-done:
		t.Fatalf("PopSwap should block while the buffer is empty")
	case <-time.After(20 * time.Millisecond):
	}

	cell := 42
	l.PushSwap(&cell)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("PopSwap did not unblock after a push")
	}
}
