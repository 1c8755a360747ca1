// File: control/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package control provides the runtime control plane for hioload-timer:
// a thread-safe configuration store with reload listeners, a metrics
// registry, and named debug probes for internal inspection. The facade
// package glues these to the timer backend behind api.Control.
package control
