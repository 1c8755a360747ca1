// File: facade/timer.go
// Unified facade layer for the hioload-timer library.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// HioloadTimer aggregates the timer backend and the control plane behind
// one type. It starts and stops the driver, mirrors the effective
// configuration into the control store, registers debug probes for the
// backend internals, and refreshes metrics on demand. Callback
// registration and the suppression gate pass straight through to the
// backend, so the facade itself satisfies the full manager contract.

package facade

import (
	"log"
	"sync"

	"github.com/momentics/hioload-timer/api"
	"github.com/momentics/hioload-timer/control"
	"github.com/momentics/hioload-timer/internal/sched"
)

// HioloadTimer is the main facade type.
type HioloadTimer struct {
	mgr     *sched.Manager
	store   *control.ConfigStore
	metrics *control.MetricsRegistry
	probes  *control.DebugProbes

	config  *Config
	mu      sync.RWMutex // protects started flag
	started bool
}

// Ensure compliance with the library contracts.
var _ api.Manager = (*HioloadTimer)(nil)
var _ api.GracefulShutdown = (*HioloadTimer)(nil)

// New constructs a HioloadTimer with the given configuration; nil means
// defaults.
func New(cfg *Config) (*HioloadTimer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	mgr, err := sched.New(sched.Config{
		TickRate:      cfg.TickRate,
		Slots:         cfg.Slots,
		SleepInterval: cfg.SleepInterval(),
	})
	if err != nil {
		return nil, err
	}

	h := &HioloadTimer{
		mgr:     mgr,
		store:   control.NewConfigStore(),
		metrics: control.NewMetricsRegistry(),
		probes:  control.NewDebugProbes(),
		config:  cfg,
	}
	h.store.Merge(map[string]any{
		control.KeyTickRate:      cfg.TickRate,
		control.KeySlots:         cfg.Slots,
		control.KeySleepInterval: cfg.SleepIntervalMs,
	})
	if cfg.EnableDebug {
		h.registerProbes()
	}
	return h, nil
}

// Init starts the driver. Init and Start are synonyms; Init keeps the
// facade interchangeable with any other api.Manager backend.
func (h *HioloadTimer) Init() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.started {
		return api.ErrAlreadyRunning
	}
	if err := h.mgr.Init(); err != nil {
		return err
	}
	h.started = true
	log.Printf("hioload-timer: driver started (rate=%d slots=%d)", h.config.TickRate, h.config.Slots)
	return nil
}

// Start begins driving registered callbacks.
func (h *HioloadTimer) Start() error { return h.Init() }

// Shutdown stops the driver and joins it.
func (h *HioloadTimer) Shutdown() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.started {
		return api.ErrNotRunning
	}
	if err := h.mgr.Shutdown(); err != nil {
		return err
	}
	h.started = false
	log.Printf("hioload-timer: driver stopped")
	return nil
}

// Register adds a periodic callback handle.
func (h *HioloadTimer) Register(handle *api.Handle) error { return h.mgr.Register(handle) }

// Unregister removes a callback handle; safe from inside a callback.
func (h *HioloadTimer) Unregister(handle *api.Handle) error { return h.mgr.Unregister(handle) }

// Enable releases one level of interrupt suppression.
func (h *HioloadTimer) Enable() { h.mgr.Enable() }

// Disable suppresses callback invocation until matched by Enable.
func (h *HioloadTimer) Disable() { h.mgr.Disable() }

// Disabled reports whether suppression is outstanding.
func (h *HioloadTimer) Disabled() bool { return h.mgr.Disabled() }

// Stats snapshots backend state and refreshes the metrics registry.
func (h *HioloadTimer) Stats() api.ManagerStats {
	s := h.mgr.Stats()
	if h.config.EnableMetrics {
		h.metrics.Set("timer.ticks_total", s.TicksTotal)
		h.metrics.Set("timer.passes", s.Passes)
		h.metrics.Set("timer.invocations", s.Invocations)
		h.metrics.Set("timer.deferred_total", s.DeferredTotal)
		h.metrics.Set("timer.registered", s.Registered)
	}
	return s
}

// Control exposes the dynamic configuration and metrics interface.
func (h *HioloadTimer) Control() api.Control {
	return &controlBridge{h: h}
}

func (h *HioloadTimer) registerProbes() {
	h.probes.RegisterProbe("timer.slots_occupied", func() any {
		return h.mgr.Stats().Registered
	})
	h.probes.RegisterProbe("timer.high_water", func() any {
		return h.mgr.Stats().HighWater
	})
	h.probes.RegisterProbe("timer.suppress_depth", func() any {
		return h.mgr.Stats().SuppressDepth
	})
	h.probes.RegisterProbe("timer.stale_depth", func() any {
		return h.mgr.Stats().PendingRemovals
	})
	control.RegisterPlatformProbes(h.probes)
}
