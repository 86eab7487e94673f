// File: internal/concurrency/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cross-platform CPU affinity management.

package concurrency

import "runtime"

// NumCPUs returns the number of logical CPUs.
func NumCPUs() int {
	return runtime.NumCPU()
}

// PinCurrentThread locks the calling goroutine to its OS thread and binds
// that thread to cpuID. The goroutine stays locked even when binding fails;
// call UnpinCurrentThread to undo both.
func PinCurrentThread(cpuID int) error {
	if cpuID < 0 || cpuID >= NumCPUs() {
		return ErrInvalidCPU
	}
	runtime.LockOSThread()
	return platformPin(cpuID)
}

// UnpinCurrentThread widens the thread back to every CPU and unlocks it.
func UnpinCurrentThread() {
	platformUnpin()
	runtime.UnlockOSThread()
}

// WorkerCPU spreads worker indices round-robin over the logical CPUs.
func WorkerCPU(worker int) int {
	return worker % NumCPUs()
}
