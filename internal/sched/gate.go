// File: internal/sched/gate.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// gate is the nested interrupt-suppression counter. It shares the
// Manager's primary mutex: the counter and the registry form one unit of
// atomically updated state, and the condition variable rides on the same
// lock. Every method requires that mutex held.

package sched

import "sync"

type gate struct {
	cond     *sync.Cond
	suppress int // outstanding disables; callbacks run only at zero
}

func newGate(mu *sync.Mutex) *gate {
	return &gate{cond: sync.NewCond(mu)}
}

func (g *gate) disable() {
	g.suppress++
}

// enable decrements the counter and wakes waiters at zero. Unmatched
// enables are a caller error and are not checked here.
func (g *gate) enable() {
	g.suppress--
	if g.suppress == 0 {
		g.cond.Broadcast()
	}
}

func (g *gate) disabled() bool {
	return g.suppress > 0
}

// await blocks while suppression is outstanding, releasing the primary
// mutex for the duration of each wait. The stop predicate lets the driver
// bail out when shutdown is requested mid-suppression.
func (g *gate) await(stop func() bool) {
	for g.suppress > 0 && !stop() {
		g.cond.Wait()
	}
}
