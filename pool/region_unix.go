//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

// File: pool/region_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Anonymous private mappings via mmap(2), optionally mlock(2)-ed.

package pool

import (
	"fmt"

	"github.com/momentics/slotpool/api"
	"golang.org/x/sys/unix"
)

type mappedRegion struct {
	data   []byte
	locked bool
}

func mapRegion(size int, lock bool) (api.Region, error) {
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", size, err)
	}
	r := &mappedRegion{data: data}
	if lock {
		if err := unix.Mlock(data); err != nil {
			unix.Munmap(data)
			return nil, fmt.Errorf("mlock %d bytes: %w", size, err)
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
		unix.Munlock(r.data)
	}
	err := unix.Munmap(r.data)
	r.data = nil
	return err
}
