package ring

import (
	"testing"
	"time"

	"github.com/valyala/fastrand"
)

// TestLockFreeOverrunKeepsNewestSuffix covers capacity=4,
// overwritingStep=1, producer pushes 1..1000 while the consumer
// sleeps, then wakes and drains. Expected: a monotonically increasing
// suffix ending at 1000, length <= 4.
func TestLockFreeOverrunKeepsNewestSuffix(t *testing.T) {
	l := NewLockFree[int](4, 1, 1)

	for i := 1; i <= 1000; i++ {
		l.Push(i)
	}

	var got []int
	for {
		v, ok := l.Pop()
		if !ok {
			break
		}
		got = append(got, v)
		if l.Size() <= 0 {
			break
		}
	}

	if len(got) == 0 || len(got) > 4 {
		t.Fatalf("expected a surviving suffix of length in [1,4], got %d", len(got))
	}
	if got[len(got)-1] != 1000 {
		t.Fatalf("expected the suffix to end at 1000, got %d", got[len(got)-1])
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("expected monotonically increasing suffix, got %v", got)
		}
	}
}

func TestLockFreePushNeverBlocks(t *testing.T) {
	l := NewLockFree[int](4, 1, 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100_000; i++ {
			l.Push(int(fastrand.Uint32n(1_000_000)))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Push should never block even without a consumer draining")
	}
}

func TestLockFreePopBlocksOnEmpty(t *testing.T) {
	l := NewLockFree[int](4, 1, 1)

	done := make(chan struct{})
	go func() {
		l.Pop()
		close(done)
	}()

	select {
	case <-done:
		t.Fatalf("Pop should block while the buffer is empty")
	case <-time.After(20 * time.Millisecond):
	}

	l.Push(42)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Pop did not unblock after a Push")
	}
}

func TestLockFreeTerminateUnblocksConsumer(t *testing.T) {
	l := NewLockFree[int](4, 1, 1)

	done := make(chan bool, 1)
	go func() {
		_, ok := l.Pop()
		done <- ok
	}()

	time.Sleep(20 * time.Millisecond)
	l.Terminate()

	select {
	case ok := <-done:
		if ok {
			t.Fatalf("expected Pop to report ok=false on an empty, terminated buffer")
		}
	case <-time.After(time.Second):
		t.Fatalf("Terminate did not unblock the waiting consumer")
	}
}

func TestLockFreeBoundedOccupancyUnderOverrun(t *testing.T) {
	const capacity = 8
	l := NewLockFree[int](capacity, 1, 1)

	for i := 0; i < 10_000; i++ {
		l.Push(i)
		if sz := l.Size(); sz < 0 || sz > int64(capacity) {
			t.Fatalf("size out of bounds: %d (capacity=%d)", sz, capacity)
		}
	}
}
