// File: pool/state.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared pool-state record. The two cursors are the only words mutated by
// more than one goroutine; every mutation is a compare-and-swap.

package pool

import (
	"sync/atomic"

	"github.com/momentics/slotpool/api"
	"golang.org/x/sys/cpu"
)

// state is referenced by the Pool and by every live Buffer.
type state struct {
	region     api.Region
	mem        []byte
	capacity   int
	backingLen int
	slots      int

	observer Observer
	reclaim  bool
	closed   atomic.Bool
	// active counts Get calls between their closed check and their gets
	// increment. Close waits for it to drain.
	active atomic.Int64

	_ cpu.CacheLinePad
	// init is the next never-issued byte offset. It never decreases.
	init atomic.Uint64
	_    cpu.CacheLinePad
	// free is the generation-tagged head of the released-slot list.
	free atomic.Uint64
	_    cpu.CacheLinePad

	gets       atomic.Uint64
	releases   atomic.Uint64
	exhausted  atomic.Uint64
	contention atomic.Uint64
}

func newState(region api.Region, capacity int, o *options) *state {
	mem := region.Bytes()
	s := &state{
		region:     region,
		mem:        mem,
		capacity:   capacity,
		backingLen: len(mem),
		slots:      len(mem) / capacity,
		observer:   o.observer,
		reclaim:    o.reclaim,
	}
	s.free.Store(emptyHead)
	return s
}

// slot returns the full capacity-sized window at off.
func (s *state) slot(off int) []byte {
	return s.mem[off : off+s.capacity : off+s.capacity]
}

// carve is phase one: advance the bump cursor past one virgin slot.
// Nothing inside slot memory is read, so no ordering beyond the CAS itself
// is needed.
func (s *state) carve() (int, bool) {
	capacity := uint64(s.capacity)
	limit := uint64(s.backingLen)
	init := s.init.Load()
	for init+capacity <= limit {
		if s.init.CompareAndSwap(init, init+capacity) {
			return int(init), true
		}
		s.contention.Add(1)
		init = s.init.Load()
	}
	return 0, false
}

// pop is phase two: unlink the head of the free list.
// The next word read from the head slot was published by the pusher's
// successful CAS, which the Load below observes.
func (s *state) pop() (int, bool) {
	head := s.free.Load()
	for {
		gen, index := unpackHead(head)
		if index == nilIndex || int(index) >= s.slots {
			return 0, false
		}
		off := int(index) * s.capacity
		next := s.indexOf(readNext(s.slot(off)))
		if s.free.CompareAndSwap(head, packHead(gen+1, next)) {
			return off, true
		}
		s.contention.Add(1)
		head = s.free.Load()
	}
}

// push links the slot at off onto the free list, classic lock-free stack
// style: write the current head into the slot, then publish the slot as the
// new head.
func (s *state) push(off int) {
	index := uint32(off / s.capacity)
	slot := s.slot(off)
	for {
		head := s.free.Load()
		gen, top := unpackHead(head)
		next := uint64(nilOffset)
		if top != nilIndex {
			next = uint64(top) * uint64(s.capacity)
		}
		putNext(slot, next)
		if s.free.CompareAndSwap(head, packHead(gen+1, index)) {
			return
		}
		s.contention.Add(1)
	}
}

// indexOf converts an in-slot next offset to a head index. Anything at or
// beyond the backing length is the end of the list.
func (s *state) indexOf(next uint64) uint32 {
	if next >= uint64(s.backingLen) {
		return nilIndex
	}
	return uint32(next / uint64(s.capacity))
}

func (s *state) stats() api.PoolStats {
	releases := s.releases.Load()
	gets := s.gets.Load()
	return api.PoolStats{
		Capacity:   s.capacity,
		Slots:      s.slots,
		Carved:     int(s.init.Load()) / s.capacity,
		InUse:      int64(gets - releases),
		Gets:       gets,
		Releases:   releases,
		Exhausted:  s.exhausted.Load(),
		Contention: s.contention.Load(),
	}
}

func (s *state) emit(kind EventKind, off int) {
	if s.observer != nil {
		s.observer(Event{Kind: kind, Offset: off})
	}
}
