package dsum

import (
	"sync"
	"testing"
)

func TestBlockCursorClaimExhaustive(t *testing.T) {
	const blockCount = 10_000
	const workers = 32

	cur := newBlockCursor(blockCount)

	seen := make([]int32, blockCount)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				idx, done := cur.claim()
				if done {
					return
				}
				mu.Lock()
				seen[idx]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	for i, n := range seen {
		if n != 1 {
			t.Fatalf("block %d claimed %d times, want exactly 1", i, n)
		}
	}
}

func TestBlockCursorDoneAtBoundary(t *testing.T) {
	cur := newBlockCursor(3)

	for want := uint64(0); want < 3; want++ {
		idx, done := cur.claim()
		if done {
			t.Fatalf("claim() reported done before exhaustion at idx %d", idx)
		}
		if idx != want {
			t.Fatalf("claim() = %d, want %d", idx, want)
		}
	}

	if idx, done := cur.claim(); !done {
		t.Fatalf("claim() = (%d, %v), want done=true", idx, done)
	}
	if idx, done := cur.claim(); !done || idx < 3 {
		t.Fatalf("claim() after exhaustion = (%d, %v), want done=true and idx>=3", idx, done)
	}
}

func TestBlockCursorZeroBlocks(t *testing.T) {
	cur := newBlockCursor(0)
	if _, done := cur.claim(); !done {
		t.Fatal("claim() on a zero-block cursor should report done immediately")
	}
}
