// File: control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector. Counters and gauges live in a thread-safe
// map with dynamic registration; the facade refreshes timer counters
// into it on every Stats call.

package control

import (
	"sync"
	"time"
)

// MetricsRegistry holds named metric values.
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

// Set stores or replaces a metric value.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Inc adds delta to an integer counter, creating it at zero.
func (mr *MetricsRegistry) Inc(key string, delta uint64) {
	mr.mu.Lock()
	current, _ := mr.metrics[key].(uint64)
	mr.metrics[key] = current + delta
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Snapshot returns the latest values plus the last update timestamp.
func (mr *MetricsRegistry) Snapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.metrics)+1)
	for k, v := range mr.metrics {
		out[k] = v
	}
	out["updated_at"] = mr.updated
	return out
}
