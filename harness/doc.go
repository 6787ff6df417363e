// Package harness drives pluggable codec benchmark cases through a
// uniform measurement protocol.
//
// A benchmark case is a named unit of codec work (decode, encode,
// compress, or decompress). Cases are registered by unique name before
// a run begins; the Runner then executes the matrix of
// {case x corpus file}, applying warm-up and repetition policies and
// optional name-pattern filtering.
//
// # Basic Usage
//
//	reg := harness.NewRegistry()
//	_ = reg.Register(harness.Case{
//	    Name:       "noop-decode",
//	    Capability: harness.Decode,
//	    Invoke: func(input any) (int, error) {
//	        return len(input.([]byte)), nil
//	    },
//	})
//
//	runner := harness.New(reg, harness.WithWarmup(2), harness.WithIterations(5))
//	results, err := runner.Run(ctx, walker.List())
//
// # Measurement Protocol
//
// For every (case, file) pair the runner reads the file once, runs the
// case's un-timed Setup, discards the warm-up invocations, then times
// each measured invocation individually with the monotonic clock. File
// loading and setup never count toward the measurement.
//
// # Failure Policy
//
// Codec rejections (CodecError) and unreadable files are recorded as
// skips; the run always continues. Only configuration mistakes (an
// invalid filter pattern, a duplicate case name) abort a run, and they
// do so before any file is touched.
package harness
