package harness

import (
	"slices"
	"sync"

	"github.com/codecbench/codecbench/internal/stats"
)

// Sample is one timed invocation of a case against one corpus file.
type Sample = stats.Sample

// Recorder accumulates the samples for a single case execution. Worker
// goroutines merge whole per-file batches under a lock, so no file's
// timed region ever interleaves with another's in the recorded stream.
type Recorder struct {
	mu      sync.Mutex
	samples []Sample
	skips   int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Append merges one file's fully-formed sample batch.
func (r *Recorder) Append(batch []Sample) {
	if len(batch) == 0 {
		return
	}
	r.mu.Lock()
	r.samples = append(r.samples, batch...)
	r.mu.Unlock()
}

// AddSkips records n skipped invocations.
func (r *Recorder) AddSkips(n int) {
	if n <= 0 {
		return
	}
	r.mu.Lock()
	r.skips += n
	r.mu.Unlock()
}

// Samples returns a copy of everything recorded so far.
func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.samples)
}

// Skips returns the number of skipped invocations.
func (r *Recorder) Skips() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.skips
}
