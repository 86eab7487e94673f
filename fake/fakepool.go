// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"sync"

	"github.com/momentics/slotpool/api"
)

// AliasingPool is a deliberately broken pool: every lease it hands out
// points at the same slot. Checkers must flag it.
type AliasingPool struct {
	mu    sync.Mutex
	slot  []byte
	slots int
	gets  uint64
	frees uint64
}

// NewAliasingPool pretends to hold slots slots of capacity bytes.
func NewAliasingPool(capacity, slots int) *AliasingPool {
	return &AliasingPool{slot: make([]byte, capacity), slots: slots}
}

func (p *AliasingPool) Lease() (api.Lease, bool) {
	p.mu.Lock()
	p.gets++
	p.mu.Unlock()
	return NewLease(p.slot, 0, func() {
		p.mu.Lock()
		p.frees++
		p.mu.Unlock()
	}), true
}

func (p *AliasingPool) Stats() api.PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return api.PoolStats{
		Capacity: len(p.slot),
		Slots:    p.slots,
		Gets:     p.gets,
		Releases: p.frees,
		InUse:    int64(p.gets - p.frees),
	}
}

var _ api.LeasePool = (*AliasingPool)(nil)
