// Package report renders aggregate benchmark results for humans and
// exports raw samples for external analysis.
package report

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/codecbench/codecbench/internal/stats"
	"github.com/codecbench/codecbench/internal/sysinfo"
)

var (
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
)

// Render writes a ranked comparison table for one benchmark group,
// followed by the event counters collected during the group. Reports
// are ranked by sustained throughput, fastest first.
func Render(w io.Writer, reports []stats.Report, eventTotals map[string]int64) {
	if len(reports) == 0 {
		_, _ = yellow.Fprintln(w, "No benchmark cases matched; nothing to report.")
		return
	}

	printHeader(w, reports)

	ranked := make([]stats.Report, len(reports))
	copy(ranked, reports)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Throughput > ranked[j].Throughput
	})

	table := tablewriter.NewWriter(w)
	table.Header("Rank", "Case", "Samples", "Skips", "Mean", "P95", "P99", "MiB/s", "Geomean MiB/s", "MP/s", "Ratio", "vs Fastest")

	fastest := ranked[0].Throughput
	for i, r := range ranked {
		ratio := "-"
		if r.HasRatio {
			ratio = fmt.Sprintf("%05.2f%%", r.Ratio*100)
		}
		pixelRate := "-"
		if r.HasPixelRate {
			pixelRate = fmt.Sprintf("%.1f", r.PixelRate)
		}

		_ = table.Append(
			fmt.Sprintf("%d", i+1),
			r.Case,
			fmt.Sprintf("%d", r.Samples),
			fmt.Sprintf("%d", r.Skips),
			formatLatency(r.Mean),
			formatLatency(r.P95),
			formatLatency(r.P99),
			fmt.Sprintf("%.1f", r.Throughput),
			fmt.Sprintf("%.1f", r.GeoSpeed),
			pixelRate,
			ratio,
			vsFastest(r.Throughput, fastest, i),
		)
	}

	if err := table.Render(); err != nil {
		_, _ = fmt.Fprintf(w, "render error: %v\n", err)
	}

	printEvents(w, eventTotals)

	total, skipped := 0, 0
	for _, r := range reports {
		total += r.Samples
		skipped += r.Skips
	}
	_, _ = green.Fprintf(w, "✓ %d samples across %d cases (%d skipped)\n", total, len(reports), skipped)
}

func printHeader(w io.Writer, reports []stats.Report) {
	capability := reports[0].Capability
	_, _ = bold.Fprintf(w, "═══ %s benchmark ═══\n", capability)
	_, _ = fmt.Fprintf(w, "host: %s, %d logical CPUs\n\n", sysinfo.CPUModel(), runtime.NumCPU())
}

func printEvents(w io.Writer, totals map[string]int64) {
	if len(totals) == 0 {
		return
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	_, _ = bold.Fprintln(w, "\nEvent counters:")
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "  %-32s %d\n", name, totals[name])
	}
	_, _ = fmt.Fprintln(w)
}

func vsFastest(throughput, fastest float64, rank int) string {
	if rank == 0 || throughput <= 0 {
		return "baseline"
	}
	return fmt.Sprintf("%.2fx slower", fastest/throughput)
}

// formatLatency picks the most readable unit for a duration.
func formatLatency(d time.Duration) string {
	switch {
	case d == 0:
		return "0"
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.1fµs", float64(d.Nanoseconds())/1e3)
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
