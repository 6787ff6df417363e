package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/codecbench/codecbench/cases"
	"github.com/codecbench/codecbench/harness"
	"github.com/codecbench/codecbench/internal/corpus"
)

var singleCmd = &cobra.Command{
	Use:   "decode-single <file>",
	Short: "Benchmark decoding of a single file",
	Long: `decode-single runs the decode cases against one file instead of a
corpus directory, useful for drilling into a regression on a specific
input. The usual --filter, --warmup and --iters flags apply.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSingle(args[0])
	},
}

func init() {
	rootCmd.AddCommand(singleCmd)
}

func runSingle(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &harness.ConfigError{Reason: "benchmark file", Err: err}
	}
	if info.IsDir() {
		return &harness.ConfigError{Reason: fmt.Sprintf("%s is a directory, want a file", path)}
	}

	file := corpus.File{
		Path:   path,
		Size:   info.Size(),
		Format: strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
	}

	reg := harness.NewRegistry()
	if err := cases.RegisterAll(reg, harness.Decode); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := harness.New(reg, runnerOptions()...)
	results, err := runner.Run(ctx, []corpus.File{file})
	if err != nil {
		return err
	}
	return reportResults(results)
}
