// File: internal/sched/manager.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Manager is the goroutine-based implementation of api.Manager. One
// background driver goroutine samples the wall clock, converts elapsed
// time to logical tick batches, and invokes registered callbacks;
// arbitrary caller goroutines operate the registry and the suppression
// gate.
//
// Two locks guard disjoint state. The primary mutex covers the registry,
// its high-water mark and the gate counter together; the stale queue has
// its own lock so a deferred unregistration never waits on the primary
// one. Unregister is the only reentrancy-safe operation: it tries the
// primary lock without blocking and falls back to the deferred queue,
// which the driver reaps at the end of each invocation pass.

package sched

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-timer/api"
	"github.com/momentics/hioload-timer/core/tick"
)

// Config carries the backend parameters, fixed at construction time.
type Config struct {
	TickRate      int           // logical ticks per second
	Slots         int           // registry and deferred-queue capacity
	SleepInterval time.Duration // driver sleep between tick batches
}

// DefaultConfig returns the standard backend parameters.
func DefaultConfig() Config {
	return Config{
		TickRate:      api.DefaultTickRate,
		Slots:         api.DefaultSlots,
		SleepInterval: api.DefaultSleepInterval,
	}
}

// Manager emulates a hardware timer interrupt with a dedicated driver
// goroutine. Every instance owns its full context; multiple independent
// Managers may coexist in one process.
type Manager struct {
	mu    sync.Mutex // primary lock: registry, high water, gate
	gate  *gate
	reg   *registry
	stale *staleQueue
	conv  *tick.Converter

	sleep time.Duration

	running    bool // guarded by mu
	cancelling bool // guarded by mu; observed by the gate wait loop
	cancel     chan struct{}
	done       chan struct{}
	startedAt  time.Time

	// counters, updated with atomics so Stats never needs the driver's lock
	ticksTotal  uint64
	passes      uint64
	invocations uint64
	deferredN   uint64
}

// Compile-time interface compliance.
var _ api.Manager = (*Manager)(nil)
var _ api.GracefulShutdown = (*Manager)(nil)

// New validates cfg and builds a stopped Manager.
func New(cfg Config) (*Manager, error) {
	if cfg.Slots <= 0 {
		return nil, fmt.Errorf("%w: slots must be positive, got %d", api.ErrInvalidConfig, cfg.Slots)
	}
	if cfg.SleepInterval <= 0 {
		return nil, fmt.Errorf("%w: sleep interval must be positive, got %v", api.ErrInvalidConfig, cfg.SleepInterval)
	}
	conv, err := tick.NewConverter(cfg.TickRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", api.ErrInvalidConfig, err)
	}
	m := &Manager{
		reg:   newRegistry(cfg.Slots),
		stale: newStaleQueue(cfg.Slots),
		conv:  conv,
		sleep: cfg.SleepInterval,
	}
	m.gate = newGate(&m.mu)
	return m, nil
}

// Init starts the driver goroutine. A second Init without an intervening
// Shutdown fails with ErrAlreadyRunning.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return fmt.Errorf("%w: %v", api.ErrInitFailed, api.ErrAlreadyRunning)
	}

	// Each generation starts from a clean slate, like a hardware reset:
	// empty tables, open gate, zeroed counters. The tables are cleared
	// in place: the deferred-removal path reads m.stale without the
	// primary lock, so the pointer itself must never change.
	m.reg.clear()
	m.stale.clear()
	m.gate.suppress = 0
	m.conv.Reset()
	atomic.StoreUint64(&m.ticksTotal, 0)
	atomic.StoreUint64(&m.passes, 0)
	atomic.StoreUint64(&m.invocations, 0)
	atomic.StoreUint64(&m.deferredN, 0)

	m.running = true
	m.cancelling = false
	m.cancel = make(chan struct{})
	m.done = make(chan struct{})
	m.startedAt = time.Now()
	go m.run(m.cancel, m.done)
	return nil
}

// Shutdown requests cancellation and joins the driver. The driver only
// honors the request at its post-sleep check, never while holding a
// lock; a driver parked on the gate is woken first so the request cannot
// hang behind an outstanding Disable.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return api.ErrNotRunning
	}
	m.cancelling = true
	m.gate.cond.Broadcast()
	cancel, done := m.cancel, m.done
	m.mu.Unlock()

	close(cancel)
	<-done

	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
	return nil
}

// Register inserts h into the first free registry slot.
func (m *Manager) Register(h *api.Handle) error {
	if h == nil || h.Func == nil {
		return api.ErrInvalidHandle
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return api.ErrNotRunning
	}
	if m.reg.contains(h) {
		return api.ErrAlreadyRegistered
	}
	if err := m.reg.insert(h); err != nil {
		return err
	}
	m.stale.markLive(h)
	return nil
}

// Unregister removes h. When the primary lock is free the removal is
// immediate; otherwise — typically because the calling stack sits inside
// a driver invocation pass that already holds it — the request is queued
// and serviced by the driver's reaping phase. Removal must never block
// on a lock the calling stack may itself be holding.
func (m *Manager) Unregister(h *api.Handle) error {
	if h == nil {
		return api.ErrInvalidHandle
	}
	if m.mu.TryLock() {
		defer m.mu.Unlock()
		if !m.running {
			return api.ErrNotRunning
		}
		return m.removeLocked(h)
	}
	atomic.AddUint64(&m.deferredN, 1)
	return m.stale.enqueue(h)
}

// Disable increments the suppression counter; the driver finishes any
// in-flight invocation pass and then stays parked until the counter
// returns to zero.
func (m *Manager) Disable() {
	m.mu.Lock()
	m.gate.disable()
	m.mu.Unlock()
}

// Enable decrements the suppression counter, waking the driver at zero.
func (m *Manager) Enable() {
	m.mu.Lock()
	m.gate.enable()
	m.mu.Unlock()
}

// Disabled reports whether any disable is outstanding.
func (m *Manager) Disabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gate.disabled()
}

// Stats snapshots the backend state.
func (m *Manager) Stats() api.ManagerStats {
	m.mu.Lock()
	s := api.ManagerStats{
		Registered:    m.reg.size(),
		HighWater:     m.reg.highWater,
		SuppressDepth: m.gate.suppress,
		StartedAt:     m.startedAt,
	}
	m.mu.Unlock()
	s.PendingRemovals = m.stale.depth()
	s.TicksTotal = atomic.LoadUint64(&m.ticksTotal)
	s.Passes = atomic.LoadUint64(&m.passes)
	s.Invocations = atomic.LoadUint64(&m.invocations)
	s.DeferredTotal = atomic.LoadUint64(&m.deferredN)
	return s
}

// removeLocked performs an immediate removal. Caller holds the primary lock.
func (m *Manager) removeLocked(h *api.Handle) error {
	if err := m.reg.remove(h); err != nil {
		return err
	}
	m.stale.clearLive(h)
	return nil
}

// reap services one deferred removal. A handle already gone by other
// means is a harmless no-op. Caller holds the primary lock.
func (m *Manager) reap(h *api.Handle) {
	if err := m.reg.remove(h); err == nil {
		m.stale.clearLive(h)
	}
}
