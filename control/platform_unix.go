//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

// control/platform_unix.go
// Author: momentics <momentics@gmail.com>
//
// Unix platform probes: CPU count, page size, memlock limit.

package control

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// RegisterPlatformProbes sets Unix-specific debug metrics.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.pagesize", func() any {
		return unix.Getpagesize()
	})
	dp.RegisterProbe("platform.memlock", func() any {
		var lim unix.Rlimit
		if err := unix.Getrlimit(unix.RLIMIT_MEMLOCK, &lim); err != nil {
			return err.Error()
		}
		return lim.Cur
	})
}
