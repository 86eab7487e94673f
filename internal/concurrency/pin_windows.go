//go:build windows

// File: internal/concurrency/pin_windows.go
// Author: momentics <momentics@gmail.com>
//
// SetThreadAffinityMask on the current thread pseudo-handle.

package concurrency

import "golang.org/x/sys/windows"

var procSetThreadAffinityMask = windows.NewLazySystemDLL("kernel32.dll").NewProc("SetThreadAffinityMask")

func setAffinity(mask uintptr) error {
	old, _, err := procSetThreadAffinityMask.Call(uintptr(windows.CurrentThread()), mask)
	if old == 0 {
		return err
	}
	return nil
}

func platformPin(cpuID int) error {
	if cpuID >= 64 {
		return ErrInvalidCPU
	}
	return setAffinity(1 << uint(cpuID))
}

func platformUnpin() {
	n := min(NumCPUs(), 64)
	setAffinity(uintptr(1<<uint(n)) - 1)
}
