// control/poolset.go
// Author: momentics <momentics@gmail.com>
//
// Named registry of declared pools with metrics and probe export.

package control

import (
	"errors"
	"sort"
	"sync"

	"github.com/momentics/slotpool/pool"
)

// PoolSet owns a group of pools keyed by name.
type PoolSet struct {
	mu    sync.RWMutex
	pools map[string]*pool.Pool
}

// NewPoolSet returns an empty set.
func NewPoolSet() *PoolSet {
	return &PoolSet{pools: make(map[string]*pool.Pool)}
}

// Add registers p under name, replacing any previous entry.
func (s *PoolSet) Add(name string, p *pool.Pool) {
	s.mu.Lock()
	s.pools[name] = p
	s.mu.Unlock()
}

// Get looks a pool up by name.
func (s *PoolSet) Get(name string) (*pool.Pool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pools[name]
	return p, ok
}

// Names returns the registered names in sorted order.
func (s *PoolSet) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.pools))
	for n := range s.pools {
		names = append(names, n)
	}
	s.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Len returns the number of pools.
func (s *PoolSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pools)
}

// Publish copies the current stats of every pool into mr.
func (s *PoolSet) Publish(mr *MetricsRegistry) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for name, p := range s.pools {
		mr.PublishPoolStats(name, p.Stats())
	}
}

// RegisterProbes exposes every pool on dp.
func (s *PoolSet) RegisterProbes(dp *DebugProbes) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for name, p := range s.pools {
		dp.RegisterPoolProbe(name, p)
	}
}

// Close closes every pool. Pools that still have live leases stay in the set
// and their errors are joined.
func (s *PoolSet) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for name, p := range s.pools {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
			continue
		}
		delete(s.pools, name)
	}
	return errors.Join(errs...)
}
