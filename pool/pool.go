// File: pool/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool hands out unique, non-aliasing slot leases under concurrent access
// without locks. Virgin slots come from a bump cursor, released slots from a
// free list threaded through the slots themselves, so construction costs
// nothing proportional to the slot count.

package pool

import (
	"context"
	"runtime"
	"time"

	"github.com/momentics/slotpool/api"
)

// Pool is a fixed-capacity slot allocator over one backing region.
type Pool struct {
	state *state
}

// New binds a pool with slots of capacity bytes to region.
// It panics when capacity cannot hold a free-list word or does not evenly
// divide the region; such a pool cannot operate.
func New(region api.Region, capacity int, opts ...Option) *Pool {
	if region == nil {
		panic("pool: nil region")
	}
	if err := validate(capacity, len(region.Bytes())); err != nil {
		panic(err)
	}
	return &Pool{state: newState(region, capacity, buildOptions(opts))}
}

func validate(capacity, backingLen int) error {
	if capacity < wordSize {
		return api.NewError(api.ErrCodeMisconfigured, "slot capacity smaller than a machine word").
			WithContext("capacity", capacity).
			WithContext("word", wordSize)
	}
	if backingLen%capacity != 0 {
		return api.NewError(api.ErrCodeMisconfigured, "backing length not a multiple of slot capacity").
			WithContext("capacity", capacity).
			WithContext("backing", backingLen)
	}
	if uint64(backingLen/capacity) > maxSlots {
		return api.NewError(api.ErrCodeMisconfigured, "too many slots").
			WithContext("slots", backingLen/capacity)
	}
	return nil
}

// Get returns a Buffer over a just-reserved slot, or false when the pool is
// exhausted. It never blocks.
func (p *Pool) Get() (*Buffer, bool) {
	s := p.state
	s.active.Add(1)
	if s.closed.Load() {
		s.active.Add(-1)
		return nil, false
	}
	off, ok := s.carve()
	if !ok {
		off, ok = s.pop()
	}
	if !ok {
		s.exhausted.Add(1)
		s.active.Add(-1)
		s.emit(EventExhausted, -1)
		return nil, false
	}
	s.gets.Add(1)
	s.active.Add(-1)
	s.emit(EventAcquire, off)
	return newBuffer(s, off), true
}

// TryGet is Get with an error instead of a flag.
func (p *Pool) TryGet() (*Buffer, error) {
	if p.state.closed.Load() {
		return nil, api.ErrBufferPoolClosed
	}
	if b, ok := p.Get(); ok {
		return b, nil
	}
	return nil, api.NewError(api.ErrCodeResourceExhausted, "no slot available").
		WithContext("slots", p.state.slots)
}

const (
	minBackoff = 10 * time.Microsecond
	maxBackoff = 5 * time.Millisecond
)

// Acquire retries Get with exponential backoff until a slot frees up or ctx
// is done.
func (p *Pool) Acquire(ctx context.Context) (*Buffer, error) {
	backoff := minBackoff
	for spins := 0; ; spins++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if b, ok := p.Get(); ok {
			return b, nil
		}
		if p.state.closed.Load() {
			return nil, api.ErrBufferPoolClosed
		}
		if spins < 4 {
			runtime.Gosched()
			continue
		}
		t := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

// Lease implements api.LeasePool.
func (p *Pool) Lease() (api.Lease, bool) {
	b, ok := p.Get()
	if !ok {
		return nil, false
	}
	return b, true
}

// Capacity returns the slot size in bytes.
func (p *Pool) Capacity() int { return p.state.capacity }

// Slots returns how many slots the region holds.
func (p *Pool) Slots() int { return p.state.slots }

// Stats exposes allocation counters.
func (p *Pool) Stats() api.PoolStats { return p.state.stats() }

// Close stops handing out slots and returns the region to the OS. It fails
// while leases are live. Get calls already past their closed check are
// waited for, so a concurrent Get either fails or makes Close report busy.
func (p *Pool) Close() error {
	s := p.state
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	for s.active.Load() != 0 {
		runtime.Gosched()
	}
	if n := s.stats().InUse; n != 0 {
		s.closed.Store(false)
		return api.NewError(api.ErrCodeBusy, "pool has live leases").WithContext("in_use", n)
	}
	return s.region.Close()
}

var _ api.LeasePool = (*Pool)(nil)
