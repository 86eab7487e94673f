//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !windows

// File: pool/region_other.go
// Author: momentics <momentics@gmail.com>
//
// Heap fallback where no mapping primitive is wired.

package pool

import "github.com/momentics/slotpool/api"

func mapRegion(size int, lock bool) (api.Region, error) {
	if lock {
		return nil, api.ErrNotSupported
	}
	return NewHeapRegion(size), nil
}
