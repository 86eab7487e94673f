// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector for system-level monitoring.
// Exposes counters in a thread-safe map with dynamic registration.

package control

import (
	"sync"
	"time"

	"github.com/momentics/slotpool/api"
)

// MetricsRegistry holds mutable and read-only metrics.
type MetricsRegistry struct {
	mu      sync.RWMutex
	metrics map[string]any
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		metrics: make(map[string]any),
	}
}

// Set sets or updates a metric key.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// PublishPoolStats stores one pool's counters under "pool.<name>.*".
func (mr *MetricsRegistry) PublishPoolStats(name string, st api.PoolStats) {
	prefix := "pool." + name + "."
	mr.mu.Lock()
	mr.metrics[prefix+"capacity"] = st.Capacity
	mr.metrics[prefix+"slots"] = st.Slots
	mr.metrics[prefix+"carved"] = st.Carved
	mr.metrics[prefix+"in_use"] = st.InUse
	mr.metrics[prefix+"available"] = st.Available()
	mr.metrics[prefix+"gets"] = st.Gets
	mr.metrics[prefix+"releases"] = st.Releases
	mr.metrics[prefix+"exhausted"] = st.Exhausted
	mr.metrics[prefix+"contention"] = st.Contention
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// GetSnapshot returns the latest metrics.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.metrics))
	for k, v := range mr.metrics {
		out[k] = v
	}
	return out
}

// Updated returns the time of the last write.
func (mr *MetricsRegistry) Updated() time.Time {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.updated
}
