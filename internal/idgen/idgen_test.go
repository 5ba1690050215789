package idgen

import (
	"sync"
	"testing"
	"time"
)

func TestNextIsStrictlyIncreasingOnFrozenClock(t *testing.T) {
	frozen := time.UnixMilli(1_700_000_000_000)
	g := New(func() time.Time { return frozen })

	prev := g.Next()
	if prev != frozen.UnixMilli() {
		t.Fatalf("first id should be the clock millis, got %d", prev)
	}
	for i := 0; i < 100; i++ {
		id := g.Next()
		if id <= prev {
			t.Fatalf("id %d not greater than previous %d", id, prev)
		}
		prev = id
	}
}

func TestNextFollowsClockWhenItAdvances(t *testing.T) {
	now := time.UnixMilli(1000)
	g := New(func() time.Time { return now })

	g.Next()
	now = now.Add(5 * time.Second)
	if got := g.Next(); got != 6000 {
		t.Fatalf("expected 6000, got %d", got)
	}
}

func TestNextUniqueUnderConcurrency(t *testing.T) {
	g := New(nil)
	const n = 500

	var mu sync.Mutex
	seen := make(map[int64]bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := g.Next()
			mu.Lock()
			defer mu.Unlock()
			if seen[id] {
				t.Errorf("duplicate id %d", id)
			}
			seen[id] = true
		}()
	}
	wg.Wait()
}
