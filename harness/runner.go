package harness

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/codecbench/codecbench/internal/corpus"
	"github.com/codecbench/codecbench/internal/stats"
)

// Runner drives the matrix of {benchmark case x corpus file} with
// warm-up and repetition policies, and reduces the collected samples
// into per-case aggregate reports.
type Runner struct {
	registry *Registry
	cfg      config
}

// New creates a Runner over a case registry.
func New(registry *Registry, opts ...Option) *Runner {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Runner{registry: registry, cfg: cfg}
}

// GroupResult couples one case's aggregate report with its raw samples
// and the event-counter snapshot taken after the case finished.
type GroupResult struct {
	Report  stats.Report
	Samples []Sample
	Events  map[string]int64
}

// Run executes every case selected by the filter over the given corpus
// files, cases in registration order, files in enumeration order.
//
// Files are processed by a pool of parallel workers; each file's timed
// iterations are fully formed before being merged, so worker
// interleaving never corrupts per-file attribution. Per-invocation
// codec failures are recorded as skips and the run continues. If ctx
// is cancelled, in-flight invocations complete, nothing further is
// scheduled, and the results collected so far are returned.
//
// The only error Run returns is a ConfigError from an invalid filter
// pattern, raised before any file is touched.
func (r *Runner) Run(ctx context.Context, files []corpus.File) ([]GroupResult, error) {
	selected, err := r.registry.Match(r.cfg.filter)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		r.cfg.logger.Info("no benchmark cases match filter", "filter", r.cfg.filter)
		return nil, nil
	}

	results := make([]GroupResult, 0, len(selected))
	for _, c := range selected {
		if ctx.Err() != nil {
			r.cfg.logger.Info("run interrupted, reporting partial results", "completed", len(results))
			break
		}

		rec := NewRecorder()
		r.runCase(ctx, c, files, rec)

		snapshot := r.cfg.events.Snapshot()
		if !r.cfg.keepEvents {
			r.cfg.events.Reset()
		}

		rep := stats.Aggregate(c.Name, c.Capability.CompressesOutput(), c.Capability == Decode, rec.Skips(), rec.Samples())
		rep.Capability = c.Capability.String()

		results = append(results, GroupResult{
			Report:  rep,
			Samples: rec.Samples(),
			Events:  snapshot,
		})
	}

	return results, nil
}

// runCase fans the applicable corpus files out to the worker pool and
// merges the per-file batches back in enumeration order.
func (r *Runner) runCase(ctx context.Context, c Case, files []corpus.File, rec *Recorder) {
	applicable := make([]corpus.File, 0, len(files))
	for _, f := range files {
		if c.accepts(f.Format) {
			applicable = append(applicable, f)
		}
	}
	if len(applicable) == 0 {
		return
	}

	bar := r.newProgressBar(c.Name, len(applicable))

	batches := make([][]Sample, len(applicable))
	skips := make([]int, len(applicable))

	tasks := make(chan int)
	g := new(errgroup.Group)

	workers := min(r.cfg.workers, len(applicable))
	for range workers {
		g.Go(func() error {
			for idx := range tasks {
				if r.cfg.limiter != nil {
					if err := r.cfg.limiter.Wait(ctx); err != nil {
						// Cancelled mid-wait; measure nothing more.
						continue
					}
				}
				batches[idx], skips[idx] = r.measureFile(c, applicable[idx])
				if bar != nil {
					_ = bar.Add(1)
				}
			}
			return nil
		})
	}

	// Feeder: stops scheduling on cancellation, in-flight work drains.
	g.Go(func() error {
		defer close(tasks)
		for i := range applicable {
			select {
			case tasks <- i:
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	})

	_ = g.Wait()

	if bar != nil {
		_ = bar.Finish()
	}

	for i := range applicable {
		rec.Append(batches[i])
		rec.AddSkips(skips[i])
	}
}

// measureFile loads one corpus file, runs the un-timed setup and
// warm-up iterations, then times each measured invocation with the
// monotonic clock. Returns the file's sample batch and its skip count.
func (r *Runner) measureFile(c Case, f corpus.File) ([]Sample, int) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		r.cfg.logger.Warn("skipping unreadable file", "case", c.Name, "file", f.Path, "error", err)
		r.cfg.events.Increment("harness.io_errors")
		return nil, 1
	}

	payload := Payload{Data: raw, Size: int64(len(raw))}
	if c.Setup != nil {
		payload, err = c.Setup(raw)
		if err != nil {
			cerr := &CodecError{Case: c.Name, File: f.Path, Err: err}
			r.cfg.logger.Warn("setup rejected file", "error", cerr)
			r.cfg.events.Increment("harness.codec_errors")
			return nil, 1
		}
	}

	for range r.cfg.warmup {
		_, _ = safeInvoke(c, payload.Data)
	}

	samples := make([]Sample, 0, r.cfg.iters)
	skipped := 0
	for i := range r.cfg.iters {
		start := time.Now()
		n, err := safeInvoke(c, payload.Data)
		elapsed := time.Since(start)

		if err != nil {
			cerr := &CodecError{Case: c.Name, File: f.Path, Err: err}
			r.cfg.logger.Warn("invocation failed", "iter", i, "error", cerr)
			r.cfg.events.Increment("harness.codec_errors")
			skipped++
			continue
		}

		samples = append(samples, Sample{
			Case:    c.Name,
			File:    f.Path,
			Iter:    i,
			Elapsed: elapsed,
			InSize:  payload.Size,
			OutSize: int64(n),
		})
	}

	return samples, skipped
}

// safeInvoke runs the case with panic recovery so a crashing codec
// cannot take down the whole run.
func safeInvoke(c Case, input any) (n int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("codec panic: %v", rec)
		}
	}()
	return c.Invoke(input)
}

func (r *Runner) newProgressBar(name string, total int) *progressbar.ProgressBar {
	if !r.cfg.progress {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(name),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
