// Package events provides a process-wide table of named counters that
// codec-calling code may bump during a benchmark run. Counters are
// aggregated outside the timed critical path and printed at the end of
// each benchmark group.
package events

import (
	"sync"
	"sync/atomic"
)

// Registry is a concurrent-safe mapping from event name to an
// accumulated count. Any number of goroutines may increment counters
// at the same time; no increments are lost.
//
// Snapshot and Reset are only meaningful once all writers for the
// current group have finished. The benchmark runner enforces that
// barrier; the registry itself does not.
type Registry struct {
	counters sync.Map // string -> *atomic.Int64
}

// NewRegistry creates an empty event registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Increment adds 1 to the named counter, creating it on first use.
func (r *Registry) Increment(name string) {
	r.Add(name, 1)
}

// Add adds delta to the named counter, creating it on first use.
func (r *Registry) Add(name string, delta int64) {
	v, ok := r.counters.Load(name)
	if !ok {
		v, _ = r.counters.LoadOrStore(name, new(atomic.Int64))
	}
	v.(*atomic.Int64).Add(delta)
}

// Count returns the current value of the named counter, or 0 if it was
// never incremented.
func (r *Registry) Count(name string) int64 {
	v, ok := r.counters.Load(name)
	if !ok {
		return 0
	}
	return v.(*atomic.Int64).Load()
}

// Snapshot returns a copy of all counters. Callers must guarantee that
// no writers are in flight.
func (r *Registry) Snapshot() map[string]int64 {
	out := make(map[string]int64)
	r.counters.Range(func(key, value any) bool {
		out[key.(string)] = value.(*atomic.Int64).Load()
		return true
	})
	return out
}

// Reset clears all counters. Must not be called while a benchmark
// invocation is in flight.
func (r *Registry) Reset() {
	r.counters.Clear()
}

// Default is the shared registry used by built-in benchmark cases,
// mirroring the global counters instrumented codecs expect.
var Default = NewRegistry()

// Increment bumps the named counter on the default registry.
func Increment(name string) {
	Default.Increment(name)
}

// Add adds delta to the named counter on the default registry.
func Add(name string, delta int64) {
	Default.Add(name, delta)
}
