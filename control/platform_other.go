//go:build !linux
// +build !linux

// File: control/platform_other.go
// Author: momentics <momentics@gmail.com>
//
// Fallback platform probes for non-Linux targets.

package control

import (
	"runtime"
)

// RegisterPlatformProbes sets generic platform debug probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.signal_masking", func() any {
		return false
	})
}
