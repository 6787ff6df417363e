package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/codecbench/codecbench/harness"
)

var exit = os.Exit
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "codecbench",
	Short: "Benchmark image codecs and compression backends over a file corpus",
	Long: `codecbench times codec operations over every file in a corpus
directory, with warm-up iterations, parallel workers and a
skip-and-continue policy for files a codec rejects.

Results are ranked by throughput; raw per-iteration samples can be
exported as CSV for offline analysis.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and maps configuration errors to a
// non-zero exit before any benchmark work has started.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if harness.IsConfigError(err) {
			fmt.Fprintln(os.Stderr, "configuration error:", err)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./codecbench.yaml)")
	rootCmd.PersistentFlags().StringP("corpus-root", "c", "corpus", "directory holding the benchmark corpus")
	rootCmd.PersistentFlags().Bool("fast", false, "sample a tenth of the corpus for a quick run")
	rootCmd.PersistentFlags().StringP("filter", "f", "", "regexp selecting which cases to run")
	rootCmd.PersistentFlags().Int("warmup", harness.DefaultWarmupIterations, "discarded warm-up iterations per file")
	rootCmd.PersistentFlags().Int("iters", harness.DefaultMeasuredIterations, "measured iterations per file")
	rootCmd.PersistentFlags().Int("workers", 0, "parallel workers (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().String("csv", "", "write per-iteration samples to this CSV file")
	rootCmd.PersistentFlags().Bool("keep-events", false, "accumulate event counters across cases instead of resetting")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	for _, name := range []string{"corpus-root", "fast", "filter", "warmup", "iters", "workers", "csv", "keep-events", "verbose"} {
		viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("codecbench")
	}

	viper.SetEnvPrefix("CODECBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "using config file:", viper.ConfigFileUsed())
	}

	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
