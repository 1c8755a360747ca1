//go:build !linux
// +build !linux

// File: internal/sched/signal_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fallback for platforms without per-thread signal mask control; the Go
// runtime's own signal handling applies.

package sched

func maskSignals() {}
