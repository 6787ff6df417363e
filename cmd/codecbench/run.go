package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/codecbench/codecbench/cases"
	"github.com/codecbench/codecbench/harness"
	"github.com/codecbench/codecbench/internal/corpus"
	"github.com/codecbench/codecbench/internal/report"
	"github.com/codecbench/codecbench/internal/stats"
)

func init() {
	rootCmd.AddCommand(
		capabilityCommand("decode", "Benchmark image decoding (PNG, WebP)", harness.Decode),
		capabilityCommand("encode", "Benchmark PNG encoding at several compression levels", harness.Encode),
		capabilityCommand("deflate", "Benchmark DEFLATE, zstd and snappy compression", harness.Compress),
		capabilityCommand("inflate", "Benchmark DEFLATE, zstd and snappy decompression", harness.Decompress),
	)
}

func capabilityCommand(use, short string, capability harness.Capability) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmark(capability)
		},
	}
}

func runBenchmark(capability harness.Capability) error {
	reg := harness.NewRegistry()
	if err := cases.RegisterAll(reg, capability); err != nil {
		return err
	}

	files, err := enumerateCorpus()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		slog.Warn("corpus is empty", "root", viper.GetString("corpus-root"))
		return nil
	}

	// Ctrl-C stops scheduling new work; results collected so far are
	// still aggregated and reported.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := harness.New(reg, runnerOptions()...)
	results, err := runner.Run(ctx, files)
	if err != nil {
		return err
	}

	return reportResults(results)
}

func enumerateCorpus() ([]corpus.File, error) {
	opts := []corpus.Option{corpus.WithLogger(slog.Default())}
	if viper.GetBool("fast") {
		opts = append(opts, corpus.WithFraction(0.1))
	}
	w, err := corpus.New(viper.GetString("corpus-root"), opts...)
	if err != nil {
		// A bad corpus root is a configuration mistake, same class as
		// an invalid filter pattern.
		return nil, &harness.ConfigError{Reason: "enumerate corpus", Err: err}
	}
	return w.List(), nil
}

func runnerOptions() []harness.Option {
	opts := []harness.Option{
		harness.WithWarmup(viper.GetInt("warmup")),
		harness.WithIterations(viper.GetInt("iters")),
		harness.WithFilter(viper.GetString("filter")),
		harness.WithProgress(),
	}
	if n := viper.GetInt("workers"); n > 0 {
		opts = append(opts, harness.WithWorkers(n))
	}
	if viper.GetBool("keep-events") {
		opts = append(opts, harness.WithKeepEvents())
	}
	return opts
}

func reportResults(results []harness.GroupResult) error {
	reports := make([]stats.Report, 0, len(results))
	var samples []stats.Sample
	totals := make(map[string]int64)
	for _, res := range results {
		reports = append(reports, res.Report)
		samples = append(samples, res.Samples...)
		for name, count := range res.Events {
			totals[name] += count
		}
	}

	report.Render(os.Stdout, reports, totals)

	if path := viper.GetString("csv"); path != "" {
		if err := report.SaveSamples(path, samples); err != nil {
			return err
		}
		slog.Info("wrote samples", "path", path, "count", len(samples))
	}
	return nil
}
