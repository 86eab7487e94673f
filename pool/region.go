// File: pool/region.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Backing regions. A region is allocated once and never resized; the pool
// only needs a byte-addressable window of known length.

package pool

import "github.com/momentics/slotpool/api"

// heapRegion is a Go-managed byte slice. Close is a no-op.
type heapRegion struct {
	buf []byte
}

func (r *heapRegion) Bytes() []byte { return r.buf }
func (r *heapRegion) Close() error  { return nil }

// NewHeapRegion allocates size zeroed bytes on the Go heap.
func NewHeapRegion(size int) api.Region {
	return &heapRegion{buf: make([]byte, size)}
}

// StaticRegion wraps caller-owned storage, typically a package-level array:
//
//	var backing [16 * 256]byte
//	var rx = pool.New(pool.StaticRegion(backing[:]), 256)
func StaticRegion(buf []byte) api.Region {
	return &heapRegion{buf: buf}
}

// NewMappedRegion maps size bytes of anonymous memory outside the Go heap.
// With lock set the pages are also pinned in RAM. Platforms without a
// mapping primitive fall back to the heap when lock is false.
func NewMappedRegion(size int, lock bool) (api.Region, error) {
	if size <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "region size must be positive").
			WithContext("size", size)
	}
	return mapRegion(size, lock)
}

func newRegion(p Placement, size int) (api.Region, error) {
	switch p {
	case PlacementHeap:
		return NewHeapRegion(size), nil
	case PlacementMapped:
		return NewMappedRegion(size, false)
	case PlacementLocked:
		return NewMappedRegion(size, true)
	}
	return nil, api.NewError(api.ErrCodeInvalidArgument, "unknown placement").
		WithContext("placement", int(p))
}
