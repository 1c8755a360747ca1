// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations and constants.

package api

import "time"

// Default backend parameters. TickRate follows the classic PC programmable
// interval timer frequency; SleepInterval bounds both callback latency and
// the driver's cancellation-check cadence.
const (
	DefaultSlots         = 16
	DefaultTickRate      = 1193181 // logical ticks per second
	DefaultSleepInterval = 10 * time.Millisecond

	// MinTickRate is the lowest accepted rate: the overflow-safe tick
	// scaling prescales the rate by 1/100, which truncates to zero below
	// this bound.
	MinTickRate = 100
)

// ManagerStats is a point-in-time snapshot of a backend's state.
type ManagerStats struct {
	Registered      int    // occupied registry slots
	HighWater       int    // one past the highest occupied slot
	SuppressDepth   int    // outstanding Disable calls
	PendingRemovals int    // deferred removals awaiting the driver
	TicksTotal      uint64 // logical ticks elapsed since Init
	Passes          uint64 // invocation passes completed
	Invocations     uint64 // individual callback invocations
	DeferredTotal   uint64 // removals routed through the deferred path
	StartedAt       time.Time
}
