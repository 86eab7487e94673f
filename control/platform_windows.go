//go:build windows

// control/platform_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows-specific metrics/debug introspection points.

package control

import (
	"os"
	"runtime"

	"golang.org/x/sys/windows"
)

// RegisterPlatformProbes sets Windows-specific debug probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.pagesize", func() any {
		return os.Getpagesize()
	})
	dp.RegisterProbe("platform.pid", func() any {
		return windows.GetCurrentProcessId()
	})
}
