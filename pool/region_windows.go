//go:build windows

// File: pool/region_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Committed private pages via VirtualAlloc, optionally VirtualLock-ed.

package pool

import (
	"fmt"
	"unsafe"

	"github.com/momentics/slotpool/api"
	"golang.org/x/sys/windows"
)

type mappedRegion struct {
	addr   uintptr
	data   []byte
	locked bool
}

func mapRegion(size int, lock bool) (api.Region, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("VirtualAlloc %d bytes: %w", size, err)
	}
	r := &mappedRegion{
		addr: addr,
		data: unsafe.Slice((*byte)(unsafe.Pointer(addr)), size),
	}
	if lock {
		if err := windows.VirtualLock(addr, uintptr(size)); err != nil {
			windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
			return nil, fmt.Errorf("VirtualLock %d bytes: %w", size, err)
		}
		r.locked = true
	}
	return r, nil
}

func (r *mappedRegion) Bytes() []byte { return r.data }

func (r *mappedRegion) Close() error {
	if r.data == nil {
		return nil
	}
	if r.locked {
		windows.VirtualUnlock(r.addr, uintptr(len(r.data)))
	}
	r.data = nil
	return windows.VirtualFree(r.addr, 0, windows.MEM_RELEASE)
}
