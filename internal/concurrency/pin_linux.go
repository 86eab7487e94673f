//go:build linux

// File: internal/concurrency/pin_linux.go
// Author: momentics <momentics@gmail.com>
//
// sched_setaffinity(2) through x/sys/unix; no cgo or libnuma needed.

package concurrency

import "golang.org/x/sys/unix"

func platformPin(cpuID int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	return unix.SchedSetaffinity(0, &set)
}

func platformUnpin() {
	var set unix.CPUSet
	set.Zero()
	for i := 0; i < NumCPUs(); i++ {
		set.Set(i)
	}
	unix.SchedSetaffinity(0, &set)
}
