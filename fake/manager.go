// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT
//
// fake.Manager is a manually driven api.Manager for collaborator tests:
// no goroutine, no wall clock. Tests call Tick to run an invocation pass
// exactly when they want one.

package fake

import (
	"sync"

	"github.com/momentics/hioload-timer/api"
)

// Manager is a deterministic test double for api.Manager.
type Manager struct {
	mu       sync.Mutex
	handles  []*api.Handle
	suppress int
	running  bool
}

var _ api.Manager = (*Manager)(nil)

// New returns a stopped fake manager.
func New() *Manager { return &Manager{} }

func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return api.ErrAlreadyRunning
	}
	m.running = true
	m.handles = nil
	m.suppress = 0
	return nil
}

func (m *Manager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return api.ErrNotRunning
	}
	m.running = false
	return nil
}

func (m *Manager) Register(h *api.Handle) error {
	if h == nil || h.Func == nil {
		return api.ErrInvalidHandle
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return api.ErrNotRunning
	}
	for _, cur := range m.handles {
		if cur == h {
			return api.ErrAlreadyRegistered
		}
	}
	if len(m.handles) >= api.DefaultSlots {
		return api.ErrCapacityExceeded
	}
	m.handles = append(m.handles, h)
	return nil
}

func (m *Manager) Unregister(h *api.Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, cur := range m.handles {
		if cur == h {
			m.handles = append(m.handles[:i], m.handles[i+1:]...)
			return nil
		}
	}
	return api.ErrNotFound
}

func (m *Manager) Enable() {
	m.mu.Lock()
	m.suppress--
	m.mu.Unlock()
}

func (m *Manager) Disable() {
	m.mu.Lock()
	m.suppress++
	m.mu.Unlock()
}

func (m *Manager) Disabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.suppress > 0
}

// Tick runs n invocation passes over the registered handles, in
// registration order, skipping them entirely while suppressed.
func (m *Manager) Tick(n int) {
	m.mu.Lock()
	if m.suppress > 0 || !m.running {
		m.mu.Unlock()
		return
	}
	snapshot := make([]*api.Handle, len(m.handles))
	copy(snapshot, m.handles)
	m.mu.Unlock()

	for i := 0; i < n; i++ {
		for _, h := range snapshot {
			h.Func(true)
		}
	}
}

// Registered reports the number of live handles.
func (m *Manager) Registered() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handles)
}
