// File: facade/control.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// controlBridge adapts the facade's control-plane pieces to api.Control.

package facade

import "github.com/momentics/hioload-timer/api"

type controlBridge struct {
	h *HioloadTimer
}

var _ api.Control = (*controlBridge)(nil)

// GetConfig returns the current configuration snapshot.
func (c *controlBridge) GetConfig() map[string]any {
	return c.h.store.Snapshot()
}

// SetConfig merges collaborator-supplied values into the store. Timer
// backend parameters are fixed at init; changing their keys here only
// updates the advertised values for observers.
func (c *controlBridge) SetConfig(cfg map[string]any) error {
	c.h.store.Merge(cfg)
	return nil
}

// Stats merges backend counters, metric values and probe output.
func (c *controlBridge) Stats() map[string]any {
	s := c.h.Stats()
	out := c.h.metrics.Snapshot()
	out["timer.high_water"] = s.HighWater
	out["timer.suppress_depth"] = s.SuppressDepth
	out["timer.stale_depth"] = s.PendingRemovals
	for k, v := range c.h.probes.DumpState() {
		out[k] = v
	}
	return out
}

// OnReload registers a configuration-change listener.
func (c *controlBridge) OnReload(fn func()) {
	c.h.store.OnReload(fn)
}

// RegisterDebugProbe adds a named debug hook.
func (c *controlBridge) RegisterDebugProbe(name string, fn func() any) {
	c.h.probes.RegisterProbe(name, fn)
}
