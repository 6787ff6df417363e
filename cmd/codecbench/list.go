package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/codecbench/codecbench/cases"
	"github.com/codecbench/codecbench/harness"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every built-in benchmark case",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList() error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Case", "Capability", "Extensions")

	for _, capability := range []harness.Capability{
		harness.Decode, harness.Encode, harness.Compress, harness.Decompress,
	} {
		reg := harness.NewRegistry()
		if err := cases.RegisterAll(reg, capability); err != nil {
			return err
		}
		for _, c := range reg.Cases() {
			exts := strings.Join(c.Extensions, ", ")
			if exts == "" {
				exts = "any"
			}
			_ = table.Append(c.Name, c.Capability.String(), exts)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("render case table: %w", err)
	}
	return nil
}
