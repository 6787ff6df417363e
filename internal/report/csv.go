package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/codecbench/codecbench/internal/stats"
)

// csvHeader is the stable column schema for exported samples.
// output_size is in the case's natural unit: bytes for encoders and
// compressors, pixels for decoders.
var csvHeader = []string{"case", "file", "iteration", "elapsed_ns", "input_bytes", "output_size"}

// WriteSamples exports one CSV row per measured sample, suitable for
// external analysis tooling.
func WriteSamples(w io.Writer, samples []stats.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, s := range samples {
		row := []string{
			s.Case,
			s.File,
			fmt.Sprintf("%d", s.Iter),
			fmt.Sprintf("%d", s.Elapsed.Nanoseconds()),
			fmt.Sprintf("%d", s.InSize),
			fmt.Sprintf("%d", s.OutSize),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveSamples writes the sample rows to the named file.
func SaveSamples(path string, samples []stats.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteSamples(f, samples); err != nil {
		return err
	}
	return f.Close()
}
