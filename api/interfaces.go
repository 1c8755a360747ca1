// File: api/interfaces.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Manager is the abstract timer-interrupt backend contract. Exactly one
// backend drives a given Manager instance; backends are interchangeable
// as long as they preserve these semantics.

package api

// Callback is one periodic handler. The driver invokes it with the
// tick-active flag set. Callbacks may call back into the Manager from
// other goroutines freely; from inside their own invocation only
// Unregister is reentrancy-safe (see Manager.Unregister).
type Callback func(active bool)

// Handle identifies one registered callback. Handles are compared by
// identity, never by value: keep the *Handle returned by NewHandle to
// unregister it later. A handle occupies at most one registry slot.
type Handle struct {
	Func Callback
}

// NewHandle wraps a callback in a fresh identity.
func NewHandle(fn Callback) *Handle {
	return &Handle{Func: fn}
}

// Manager emulates a hardware timer-interrupt facility.
//
// Init starts the backend driver; Shutdown stops it and joins its
// goroutine. Register and Unregister manage periodic callbacks bounded
// by the backend's slot capacity. Disable/Enable form a nested
// suppression gate: while any disable is outstanding the driver must not
// invoke callbacks, without stopping the underlying clock.
type Manager interface {
	// Init allocates backend resources and starts the driver.
	Init() error

	// Shutdown requests driver cancellation and joins it. Returns
	// ErrNotRunning when Init has not succeeded.
	Shutdown() error

	// Register inserts a callback handle into the first free slot.
	// Fails with ErrCapacityExceeded when all slots are occupied.
	Register(h *Handle) error

	// Unregister removes a previously registered handle. Safe to call
	// from inside a running callback: when the primary lock is
	// unavailable the removal is queued and serviced by the driver at
	// the end of the current invocation pass.
	Unregister(h *Handle) error

	// Enable decrements the suppression counter, waking the driver at
	// zero. Callers must pair every Enable with a prior Disable.
	Enable()

	// Disable increments the suppression counter. Nesting from
	// unrelated call sites is supported; suppression lasts until every
	// outstanding Disable has been matched by an Enable.
	Disable()

	// Disabled reports whether any disable is outstanding, from any
	// caller. There is no per-caller attribution.
	Disabled() bool
}

// GracefulShutdown unifies orderly teardown across library components.
type GracefulShutdown interface {
	Shutdown() error
}
