package harness

import (
	"log/slog"
	"runtime"

	"golang.org/x/time/rate"

	"github.com/codecbench/codecbench/internal/events"
)

// Measurement protocol defaults. Exposed as configuration because the
// right values depend on corpus size and codec cost; these are the
// documented starting points.
const (
	DefaultWarmupIterations   = 2
	DefaultMeasuredIterations = 5
)

// Option is a functional option for configuring a Runner.
type Option func(*config)

type config struct {
	warmup     int
	iters      int
	workers    int
	filter     string
	keepEvents bool
	progress   bool
	limiter    *rate.Limiter
	logger     *slog.Logger
	events     *events.Registry
}

func defaultConfig() config {
	return config{
		warmup:  DefaultWarmupIterations,
		iters:   DefaultMeasuredIterations,
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.Default(),
		events:  events.Default,
	}
}

// WithWarmup sets the number of discarded warm-up invocations per
// (case, file) pair. Zero disables warm-up.
func WithWarmup(n int) Option {
	return func(cfg *config) {
		if n >= 0 {
			cfg.warmup = n
		}
	}
}

// WithIterations sets the number of measured invocations per
// (case, file) pair.
func WithIterations(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.iters = n
		}
	}
}

// WithWorkers sets how many corpus files are processed in parallel.
// Defaults to runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.workers = n
		}
	}
}

// WithFilter restricts the run to cases whose names match the given
// regular expression. The pattern is validated before any file is
// touched.
func WithFilter(pattern string) Option {
	return func(cfg *config) {
		cfg.filter = pattern
	}
}

// WithKeepEvents retains event-counter totals across cases instead of
// resetting the registry between them, so the final group prints
// run-wide totals.
func WithKeepEvents() Option {
	return func(cfg *config) {
		cfg.keepEvents = true
	}
}

// WithProgress enables a terminal progress bar while a case works
// through the corpus.
func WithProgress() Option {
	return func(cfg *config) {
		cfg.progress = true
	}
}

// WithRateLimit caps how many corpus files are started per second.
// Useful on thermally constrained machines where back-to-back codec
// work skews later measurements.
func WithRateLimit(filesPerSecond float64, burst int) Option {
	return func(cfg *config) {
		if filesPerSecond > 0 && burst > 0 {
			cfg.limiter = rate.NewLimiter(rate.Limit(filesPerSecond), burst)
		}
	}
}

// WithLogger sets the logger for skip and progress diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithEventRegistry routes event snapshots and resets through the
// given registry instead of the process-wide default.
func WithEventRegistry(r *events.Registry) Option {
	return func(cfg *config) {
		if r != nil {
			cfg.events = r
		}
	}
}
