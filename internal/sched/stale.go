// File: internal/sched/stale.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// staleQueue records unregistration requests that could not take the
// primary lock: the classic case is a callback unregistering a handle
// while the driver's invocation pass holds that lock. Enqueueing only
// ever takes the queue's own lock, so it can never block on the primary
// one. Lock order elsewhere is always primary before queue.

package sched

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-timer/api"
)

type staleQueue struct {
	mu       sync.Mutex
	pending  *queue.Queue // of *api.Handle
	capacity int

	// live mirrors current registry membership so the deferred path can
	// validate a handle without touching the registry or its lock. The
	// Manager updates it at insert/remove time.
	live map[*api.Handle]struct{}
}

func newStaleQueue(capacity int) *staleQueue {
	return &staleQueue{
		pending:  queue.New(),
		capacity: capacity,
		live:     make(map[*api.Handle]struct{}, capacity),
	}
}

// markLive and clearLive are called by the Manager whenever registry
// membership changes.
func (q *staleQueue) markLive(h *api.Handle) {
	q.mu.Lock()
	q.live[h] = struct{}{}
	q.mu.Unlock()
}

func (q *staleQueue) clearLive(h *api.Handle) {
	q.mu.Lock()
	delete(q.live, h)
	q.mu.Unlock()
}

// enqueue records a pending removal. A handle not currently registered
// fails with ErrNotFound; a full queue fails with ErrQueueFull rather
// than silently dropping the request.
func (q *staleQueue) enqueue(h *api.Handle) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.live[h]; !ok {
		return api.ErrNotFound
	}
	if q.pending.Length() >= q.capacity {
		return api.ErrQueueFull
	}
	q.pending.Add(h)
	return nil
}

// drain hands every pending handle to fn in enqueue order. The backlog is
// detached under the queue lock first, so fn may re-enter queue methods
// (clearLive in particular) freely.
func (q *staleQueue) drain(fn func(*api.Handle)) {
	q.mu.Lock()
	var backlog []*api.Handle
	for q.pending.Length() > 0 {
		backlog = append(backlog, q.pending.Remove().(*api.Handle))
	}
	q.mu.Unlock()

	for _, h := range backlog {
		fn(h)
	}
}

// clear drops the backlog and the membership mirror.
func (q *staleQueue) clear() {
	q.mu.Lock()
	for q.pending.Length() > 0 {
		q.pending.Remove()
	}
	q.live = make(map[*api.Handle]struct{}, q.capacity)
	q.mu.Unlock()
}

func (q *staleQueue) depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending.Length()
}
