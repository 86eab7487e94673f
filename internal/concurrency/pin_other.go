//go:build !linux && !windows

// File: internal/concurrency/pin_other.go
// Author: momentics <momentics@gmail.com>

package concurrency

func platformPin(cpuID int) error { return ErrAffinityNotSupported }

func platformUnpin() {}
