// Package stats reduces raw benchmark samples into aggregate reports.
// Aggregation is a pure function of the sample multiset so reports can
// be recomputed from retained samples under alternate groupings, and
// reordering samples never changes the output.
package stats

import (
	"math"
	"time"

	"github.com/codahale/hdrhistogram"
)

// Sample is one timed invocation of a benchmark case against one
// corpus file.
type Sample struct {
	Case    string
	File    string
	Iter    int
	Elapsed time.Duration
	InSize  int64
	OutSize int64 // output bytes, or decoded pixels for decode cases
}

// Report is the aggregate summary for one benchmark case over one run.
// It is always rebuilt wholesale from the current sample set, never
// mutated in place.
type Report struct {
	Case       string
	Capability string
	Samples    int
	Skips      int

	Mean time.Duration
	P95  time.Duration
	P99  time.Duration

	// Throughput is total input bytes over total elapsed time, in
	// MiB/s. MeanSpeed and GeoSpeed are the arithmetic and geometric
	// means of per-sample speeds, also in MiB/s.
	Throughput float64
	MeanSpeed  float64
	GeoSpeed   float64

	// Ratio is output bytes over input bytes, reported only for
	// encode/compress capabilities.
	Ratio    float64
	HasRatio bool

	// PixelRate is decoded megapixels per second, reported only for
	// decode capabilities whose samples carry pixel counts in OutSize.
	PixelRate    float64
	HasPixelRate bool
}

// histogram sig figs; three is plenty for latency percentiles.
const sigFigs = 3

// Aggregate reduces the samples for one benchmark case into a Report.
// withRatio should be true for encode/compress capabilities; withPixels
// for decode capabilities, whose OutSize holds pixels rather than
// bytes.
func Aggregate(name string, withRatio, withPixels bool, skips int, samples []Sample) Report {
	rep := Report{
		Case:         name,
		Samples:      len(samples),
		Skips:        skips,
		HasRatio:     withRatio,
		HasPixelRate: withPixels,
	}
	if len(samples) == 0 {
		return rep
	}

	var maxNanos int64 = 1
	for _, s := range samples {
		if ns := s.Elapsed.Nanoseconds(); ns > maxNanos {
			maxNanos = ns
		}
	}

	hist := hdrhistogram.New(1, maxNanos, sigFigs)

	var totalNanos, totalIn, totalOut int64
	var logSpeedSum float64
	speedCount := 0
	var speedSum float64

	for _, s := range samples {
		ns := s.Elapsed.Nanoseconds()
		totalNanos += ns
		totalIn += s.InSize
		totalOut += s.OutSize

		if ns < 1 {
			ns = 1
		}
		_ = hist.RecordValue(ns)

		if s.Elapsed > 0 && s.InSize > 0 {
			speed := mibPerSec(s.InSize, s.Elapsed)
			speedSum += speed
			logSpeedSum += math.Log(speed)
			speedCount++
		}
	}

	rep.Mean = time.Duration(totalNanos / int64(len(samples)))
	rep.P95 = time.Duration(hist.ValueAtQuantile(95))
	rep.P99 = time.Duration(hist.ValueAtQuantile(99))

	if totalNanos > 0 {
		rep.Throughput = mibPerSec(totalIn, time.Duration(totalNanos))
	}
	if speedCount > 0 {
		rep.MeanSpeed = speedSum / float64(speedCount)
		rep.GeoSpeed = math.Exp(logSpeedSum / float64(speedCount))
	}
	if withRatio && totalIn > 0 {
		rep.Ratio = float64(totalOut) / float64(totalIn)
	}
	if withPixels && totalNanos > 0 {
		rep.PixelRate = float64(totalOut) / 1e6 / time.Duration(totalNanos).Seconds()
	}

	return rep
}

func mibPerSec(bytes int64, elapsed time.Duration) float64 {
	return float64(bytes) / (1 << 20) / elapsed.Seconds()
}
