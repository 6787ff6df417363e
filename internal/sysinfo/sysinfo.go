// Package sysinfo identifies the machine a benchmark ran on, so report
// headers carry enough context to compare runs across hosts.
package sysinfo

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
)

// CPUModel returns a human-readable CPU identifier for the current
// machine. The result is never empty: when gopsutil cannot determine a
// model name it falls back to vendor/architecture plus a core count.
func CPUModel() string {
	infos, err := cpu.Info()
	if err == nil && len(infos) > 0 {
		if infos[0].ModelName != "" {
			return infos[0].ModelName
		}
		if infos[0].VendorID != "" {
			return infos[0].VendorID
		}
	}

	if cores, err := cpu.Counts(true); err == nil && cores > 0 {
		return fmt.Sprintf("%s (%d cores)", runtime.GOARCH, cores)
	}
	return runtime.GOARCH
}
