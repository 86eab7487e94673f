// Package api
// Author: momentics
//
// Fixed-capacity slot leases handed out by a slot pool.
//
// A lease owns one slot of a contiguous backing region exclusively until
// Release. Slices returned by a lease alias slot memory and are only valid
// while the lease is live.

package api

// Lease describes an exclusive, temporary claim on one pool slot.
type Lease interface {
	// Offset returns the byte offset of the slot inside the backing region.
	Offset() int

	// Capacity returns the fixed slot size in bytes.
	Capacity() int

	// Len returns the current logical length.
	Len() int

	// Bytes returns the logical content [0, Len).
	Bytes() []byte

	// Extend appends as much of p as fits and reports truncation.
	Extend(p []byte) error

	// Release returns the slot to its pool.
	// After Release, lease must not be used.
	Release()
}

// Region is a fixed-length byte region backing a pool.
type Region interface {
	// Bytes returns the whole region. Its length never changes.
	Bytes() []byte

	// Close returns the region to the OS where applicable.
	Close() error
}
