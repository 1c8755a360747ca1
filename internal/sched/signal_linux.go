//go:build linux
// +build linux

// File: internal/sched/signal_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-thread signal masking for the driver. The caller must have locked
// the goroutine to its OS thread first.

package sched

import "golang.org/x/sys/unix"

// maskSignals blocks all asynchronous signals on the current thread.
func maskSignals() {
	var mask unix.Sigset_t
	for i := range mask.Val {
		mask.Val[i] = ^uint64(0)
	}
	_ = unix.PthreadSigmask(unix.SIG_SETMASK, &mask, nil)
}
