// File: pool/options.go
// Author: momentics <momentics@gmail.com>
//
// Functional options for pool construction.

package pool

import (
	"fmt"
	"strings"

	"github.com/momentics/slotpool/api"
)

// Placement selects where Declare puts the backing region.
type Placement int

const (
	// PlacementHeap backs the pool with a Go-allocated byte slice.
	PlacementHeap Placement = iota
	// PlacementMapped backs the pool with anonymous OS-mapped memory.
	PlacementMapped
	// PlacementLocked is PlacementMapped with the pages locked into RAM.
	PlacementLocked
)

func (p Placement) String() string {
	switch p {
	case PlacementHeap:
		return "heap"
	case PlacementMapped:
		return "mapped"
	case PlacementLocked:
		return "locked"
	}
	return fmt.Sprintf("placement(%d)", int(p))
}

// ParsePlacement accepts "heap", "mapped" or "locked". Empty means heap.
func ParsePlacement(s string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "heap":
		return PlacementHeap, nil
	case "mapped", "mmap":
		return PlacementMapped, nil
	case "locked":
		return PlacementLocked, nil
	}
	return 0, api.NewError(api.ErrCodeInvalidArgument, "unknown placement").
		WithContext("placement", s)
}

// EventKind classifies observer events.
type EventKind int

const (
	EventAcquire EventKind = iota
	EventRelease
	EventExhausted
)

// Event is delivered to an Observer synchronously from Get and Release.
type Event struct {
	Kind   EventKind
	Offset int
}

// Observer receives pool events on the calling goroutine. It must not block
// and must not call back into the pool.
type Observer func(Event)

// Option configures a Pool.
type Option func(*options)

type options struct {
	placement Placement
	observer  Observer
	reclaim   bool
}

func buildOptions(opts []Option) *options {
	o := &options{placement: PlacementHeap}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// WithPlacement selects the backing region for Declare. New ignores it.
func WithPlacement(p Placement) Option {
	return func(o *options) { o.placement = p }
}

// WithObserver installs an event hook.
func WithObserver(fn Observer) Option {
	return func(o *options) { o.observer = fn }
}

// WithReclaim returns the slot of a Buffer that becomes unreachable without
// Release once the garbage collector notices it.
//
// Only the *Buffer keeps the lease alive. Slices from Bytes, Slice or Unsafe
// point into the backing region and do not; once the Buffer itself is
// unreachable the slot may be reissued while such a slice is still in use.
// Callers that work on a content slice past their last use of the Buffer
// must call runtime.KeepAlive(b) after the slice is done with, or Release.
func WithReclaim() Option {
	return func(o *options) { o.reclaim = true }
}
