package spinlock

import (
	"sync"
	"testing"
	"time"
)

func TestSharedSpinLockReadersConcurrent(t *testing.T) {
	const readers = 16

	var lock SharedSpinLock
	var active, maxActive int32
	var mu sync.Mutex

	var wg sync.WaitGroup
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			lock.LockShared()
			defer lock.UnlockShared()

			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxActive < 2 {
		t.Fatalf("expected multiple concurrent readers, observed max=%d", maxActive)
	}
}

func TestSharedSpinLockWriterExclusive(t *testing.T) {
	var lock SharedSpinLock
	value := 0

	const writers = 16
	const perW = 2_000

	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perW; j++ {
				lock.Lock()
				value++
				lock.Unlock()
			}
		}()
	}
	wg.Wait()

	if value != writers*perW {
		t.Fatalf("expected value=%d, got %d", writers*perW, value)
	}
}

func TestSharedSpinLockTryLockShared(t *testing.T) {
	var lock SharedSpinLock

	lock.Lock()
	if lock.TryLockShared() {
		t.Fatalf("expected TryLockShared to fail while writer holds the lock")
	}
	lock.Unlock()

	if !lock.TryLockShared() {
		t.Fatalf("expected TryLockShared to succeed once writer released")
	}
	lock.UnlockShared()
}
