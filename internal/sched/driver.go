// File: internal/sched/driver.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The driver loop. One pass per overflow-safe chunk of elapsed time:
// acquire the primary lock, wait out any suppression, invoke every
// occupied slot in slot order with the tick-active flag, reap deferred
// removals, release. Between samples the driver sleeps a fixed short
// interval; that sleep bounds worst-case callback latency and doubles as
// the cancellation-check cadence. Cancellation is honored only at the
// post-sleep check, never while either lock is held.

package sched

import (
	"runtime"
	"sync/atomic"
	"time"
)

// run is the driver goroutine body. The cancel and done channels are
// passed in so a stale driver from a previous Init generation can never
// race a newer one on the Manager fields.
func (m *Manager) run(cancel <-chan struct{}, done chan<- struct{}) {
	// The driver keeps its own OS thread with all asynchronous signals
	// masked, so externally delivered signals are handled on other
	// threads and never land while this one holds a lock. The thread is
	// retired together with the goroutine.
	runtime.LockOSThread()
	maskSignals()

	defer close(done)

	last := time.Now()
	for {
		now := time.Now()
		remaining := now.Sub(last).Microseconds()
		last = now

		for remaining > 0 {
			consumed, batch := m.conv.Next(remaining)
			remaining -= consumed

			m.mu.Lock()
			m.gate.await(func() bool { return m.cancelling })
			if m.cancelling {
				// Bail out of the pass; the actual exit happens at
				// the cancellation point below, outside the lock.
				m.mu.Unlock()
				break
			}

			// One invocation pass covers the whole batch. Every
			// callback in it observes the same gate state.
			for i := 0; i < m.reg.highWater; i++ {
				if h := m.reg.slots[i]; h != nil {
					h.Func(true)
					atomic.AddUint64(&m.invocations, 1)
				}
			}

			m.stale.drain(m.reap)
			m.mu.Unlock()

			atomic.AddUint64(&m.ticksTotal, uint64(batch))
			atomic.AddUint64(&m.passes, 1)
		}

		time.Sleep(m.sleep)

		select {
		case <-cancel:
			return
		default:
		}
	}
}
