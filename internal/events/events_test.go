package events

import (
	"sync"
	"testing"
)

func TestRegistry_IncrementAndCount(t *testing.T) {
	r := NewRegistry()

	r.Increment("decode.calls")
	r.Increment("decode.calls")
	r.Add("decode.bytes", 1024)

	if got := r.Count("decode.calls"); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := r.Count("decode.bytes"); got != 1024 {
		t.Errorf("expected 1024, got %d", got)
	}
	if got := r.Count("never.seen"); got != 0 {
		t.Errorf("expected 0 for unknown counter, got %d", got)
	}
}

func TestRegistry_ConcurrentIncrements(t *testing.T) {
	const workers = 16
	const perWorker = 1000

	r := NewRegistry()

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				r.Increment("shared")
				r.Add("bytes", 3)
			}
		}()
	}
	wg.Wait()

	snap := r.Snapshot()
	if snap["shared"] != workers*perWorker {
		t.Errorf("lost updates: expected %d, got %d", workers*perWorker, snap["shared"])
	}
	if snap["bytes"] != workers*perWorker*3 {
		t.Errorf("lost updates: expected %d, got %d", workers*perWorker*3, snap["bytes"])
	}
}

func TestRegistry_SnapshotIsCopy(t *testing.T) {
	r := NewRegistry()
	r.Increment("a")

	snap := r.Snapshot()
	r.Increment("a")

	if snap["a"] != 1 {
		t.Errorf("snapshot mutated by later increment: got %d", snap["a"])
	}
	if got := r.Count("a"); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
}

func TestRegistry_Reset(t *testing.T) {
	r := NewRegistry()
	r.Increment("a")
	r.Add("b", 7)

	r.Reset()

	if snap := r.Snapshot(); len(snap) != 0 {
		t.Errorf("expected empty snapshot after reset, got %v", snap)
	}

	// Counters accumulate again after a reset.
	r.Increment("a")
	if got := r.Count("a"); got != 1 {
		t.Errorf("expected 1 after reset, got %d", got)
	}
}
