// File: control/config.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe configuration store with update propagation. Timer
// parameters are fixed at backend init; the store carries their
// runtime-visible values plus any collaborator-defined keys, and tells
// listeners when something actually changed.

package control

import (
	"sync"
)

// Well-known configuration keys published by the facade.
const (
	KeyTickRate      = "timer.tick_rate"
	KeySlots         = "timer.slots"
	KeySleepInterval = "timer.sleep_interval_ms"
)

// ConfigStore is a dynamic key/value map with atomic snapshots and
// reload listener support.
type ConfigStore struct {
	mu        sync.RWMutex
	config    map[string]any
	listeners []func()
}

// NewConfigStore initializes an empty store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		config: make(map[string]any),
	}
}

// Snapshot returns a copy of all config values.
func (cs *ConfigStore) Snapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		out[k] = v
	}
	return out
}

// Get returns one value and whether it is present.
func (cs *ConfigStore) Get(key string) (any, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	v, ok := cs.config[key]
	return v, ok
}

// Merge folds new values into the store and reports whether anything
// changed. Listeners are notified only on actual change.
func (cs *ConfigStore) Merge(values map[string]any) bool {
	cs.mu.Lock()
	changed := false
	for k, v := range values {
		if old, ok := cs.config[k]; !ok || old != v {
			cs.config[k] = v
			changed = true
		}
	}
	listeners := cs.listeners
	cs.mu.Unlock()

	if changed {
		for _, fn := range listeners {
			fn()
		}
	}
	return changed
}

// OnReload registers a listener invoked synchronously after each
// effective change.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	cs.listeners = append(cs.listeners, fn)
	cs.mu.Unlock()
}
