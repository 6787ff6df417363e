package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/codecbench/codecbench/internal/stats"
)

func sampleReports() []stats.Report {
	return []stats.Report{
		{
			Case:       "deflate-kp",
			Capability: "compress",
			Samples:    50,
			Mean:       2 * time.Millisecond,
			P95:        4 * time.Millisecond,
			P99:        5 * time.Millisecond,
			Throughput: 120.5,
			GeoSpeed:   118.2,
			Ratio:      0.42,
			HasRatio:   true,
		},
		{
			Case:       "deflate-std",
			Capability: "compress",
			Samples:    50,
			Skips:      2,
			Mean:       3 * time.Millisecond,
			P95:        6 * time.Millisecond,
			P99:        8 * time.Millisecond,
			Throughput: 80.0,
			GeoSpeed:   79.1,
			Ratio:      0.45,
			HasRatio:   true,
		},
	}
}

func TestRender_ContainsCasesAndEvents(t *testing.T) {
	var buf bytes.Buffer

	Render(&buf, sampleReports(), map[string]int64{"zlib.blocks": 42})

	out := buf.String()
	for _, want := range []string{"deflate-kp", "deflate-std", "zlib.blocks", "42", "compress benchmark"} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_RanksByThroughput(t *testing.T) {
	var buf bytes.Buffer

	Render(&buf, sampleReports(), nil)

	out := buf.String()
	if strings.Index(out, "deflate-kp") > strings.Index(out, "deflate-std") {
		t.Errorf("faster case should be listed first:\n%s", out)
	}
	if !strings.Contains(out, "baseline") {
		t.Errorf("fastest case should be marked baseline:\n%s", out)
	}
}

func TestRender_PixelRateForDecode(t *testing.T) {
	reports := []stats.Report{
		{
			Case:         "decode-png",
			Capability:   "decode",
			Samples:      10,
			Mean:         time.Millisecond,
			Throughput:   95.0,
			GeoSpeed:     94.0,
			PixelRate:    31.7,
			HasPixelRate: true,
		},
	}

	var buf bytes.Buffer
	Render(&buf, reports, nil)

	out := buf.String()
	if !strings.Contains(out, "MP/s") {
		t.Errorf("expected MP/s column:\n%s", out)
	}
	if !strings.Contains(out, "31.7") {
		t.Errorf("expected decode pixel rate in table:\n%s", out)
	}
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer

	Render(&buf, nil, nil)

	if !strings.Contains(buf.String(), "No benchmark cases matched") {
		t.Errorf("expected no-op notice, got:\n%s", buf.String())
	}
}

func TestWriteSamples(t *testing.T) {
	samples := []stats.Sample{
		{Case: "png-decode", File: "corpus/a.png", Iter: 0, Elapsed: time.Millisecond, InSize: 100, OutSize: 400},
		{Case: "png-decode", File: "corpus/b.png", Iter: 1, Elapsed: 2 * time.Millisecond, InSize: 200, OutSize: 800},
	}

	var buf bytes.Buffer
	if err := WriteSamples(&buf, samples); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "case,file,iteration,elapsed_ns,input_bytes,output_size" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "png-decode,corpus/a.png,0,1000000,100,400") {
		t.Errorf("unexpected first row: %s", lines[1])
	}
}
