// File: internal/sched/registry.go
// Package sched implements the goroutine-based timer-interrupt backend.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// registry is the fixed-capacity callback slot table. It carries no lock
// of its own: the Manager's primary mutex guards every access.

package sched

import "github.com/momentics/hioload-timer/api"

// registry holds up to cap(slots) callback handles. Slots below highWater
// may contain gaps; every slot at or above it is empty. Removal compacts
// only trailing empties, so occupied slot positions stay stable for the
// duration of an invocation cycle.
type registry struct {
	slots     []*api.Handle
	highWater int // one past the highest occupied slot
}

func newRegistry(capacity int) *registry {
	return &registry{slots: make([]*api.Handle, capacity)}
}

// insert places h into the first empty slot. The high-water mark grows
// only when the chosen slot sits exactly at it.
func (r *registry) insert(h *api.Handle) error {
	for i := range r.slots {
		if r.slots[i] != nil {
			continue
		}
		r.slots[i] = h
		if i == r.highWater {
			r.highWater++
		}
		return nil
	}
	return api.ErrCapacityExceeded
}

// remove empties h's slot. When the highest occupied slot is freed the
// high-water mark shrinks past any further trailing empties, never past
// an occupied slot.
func (r *registry) remove(h *api.Handle) error {
	for i := 0; i < r.highWater; i++ {
		if r.slots[i] != h {
			continue
		}
		r.slots[i] = nil
		if i+1 == r.highWater {
			for r.highWater > 0 && r.slots[r.highWater-1] == nil {
				r.highWater--
			}
		}
		return nil
	}
	return api.ErrNotFound
}

func (r *registry) contains(h *api.Handle) bool {
	for i := 0; i < r.highWater; i++ {
		if r.slots[i] == h {
			return true
		}
	}
	return false
}

// clear empties every slot and resets the high-water mark.
func (r *registry) clear() {
	for i := range r.slots {
		r.slots[i] = nil
	}
	r.highWater = 0
}

func (r *registry) size() int {
	n := 0
	for i := 0; i < r.highWater; i++ {
		if r.slots[i] != nil {
			n++
		}
	}
	return n
}
