// File: api/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package api defines the public contracts of hioload-timer.
//
// The central abstraction is Manager: a software emulation of a hardware
// timer-interrupt controller. Collaborators register periodic callback
// handles that a background driver invokes at a fixed logical tick rate,
// and may suppress all invocation with nested Disable/Enable pairs.
//
// Implementations live elsewhere (internal/sched for the goroutine-based
// backend, fake for a manually driven test double); this package carries
// only interfaces, shared types and error definitions.
package api
