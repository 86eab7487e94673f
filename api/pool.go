// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines abstract pooling APIs for fixed-capacity slot allocators.

package api

// LeasePool hands out exclusive slot leases without blocking.
type LeasePool interface {
	// Lease returns a live lease, or false when every slot is taken.
	Lease() (Lease, bool)

	// Stats exposes resource/accounting metrics for observability.
	Stats() PoolStats
}

// PoolStats aggregates slot allocation/reuse stats.
type PoolStats struct {
	Capacity   int    // bytes per slot
	Slots      int    // backing length / capacity
	Carved     int    // slots ever issued by the bump cursor
	InUse      int64  // live leases
	Gets       uint64 // successful acquisitions
	Releases   uint64 // slots pushed back onto the free list
	Exhausted  uint64 // acquisitions that found no slot
	Contention uint64 // failed compare-and-swap attempts on either cursor
}

// Available returns the number of slots a caller could acquire right now.
func (s PoolStats) Available() int {
	return s.Slots - int(s.InUse)
}
