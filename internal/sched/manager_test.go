package sched_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/hioload-timer/api"
	"github.com/momentics/hioload-timer/internal/sched"
)

// testConfig shortens the driver sleep so tests cycle quickly.
func testConfig() sched.Config {
	cfg := sched.DefaultConfig()
	cfg.SleepInterval = time.Millisecond
	return cfg
}

func newRunning(t *testing.T) *sched.Manager {
	t.Helper()
	m, err := sched.New(testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { _ = m.Shutdown() })
	return m
}

func waitUntil(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestNewRejectsBadConfig(t *testing.T) {
	for _, cfg := range []sched.Config{
		{TickRate: 0, Slots: 16, SleepInterval: time.Millisecond},
		{TickRate: 99, Slots: 16, SleepInterval: time.Millisecond},
		{TickRate: 1000, Slots: 0, SleepInterval: time.Millisecond},
		{TickRate: 1000, Slots: 16, SleepInterval: 0},
	} {
		if _, err := sched.New(cfg); !errors.Is(err, api.ErrInvalidConfig) {
			t.Errorf("New(%+v): got %v, want ErrInvalidConfig", cfg, err)
		}
	}
}

func TestLifecycle(t *testing.T) {
	m, err := sched.New(testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Shutdown(); err != api.ErrNotRunning {
		t.Fatalf("Shutdown before Init: got %v, want ErrNotRunning", err)
	}
	if err := m.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := m.Init(); !errors.Is(err, api.ErrInitFailed) {
		t.Fatalf("second Init: got %v, want ErrInitFailed", err)
	}
	if err := m.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	// A fresh generation starts clean.
	if err := m.Init(); err != nil {
		t.Fatalf("re-Init: %v", err)
	}
	if s := m.Stats(); s.Registered != 0 || s.SuppressDepth != 0 {
		t.Errorf("stale state after re-Init: %+v", s)
	}
	if err := m.Shutdown(); err != nil {
		t.Fatalf("final Shutdown: %v", err)
	}
}

func TestRegisterCapacity(t *testing.T) {
	m := newRunning(t)
	handles := make([]*api.Handle, api.DefaultSlots)
	for i := range handles {
		handles[i] = api.NewHandle(func(bool) {})
		if err := m.Register(handles[i]); err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
	}
	if err := m.Register(api.NewHandle(func(bool) {})); err != api.ErrCapacityExceeded {
		t.Fatalf("register beyond capacity: got %v, want ErrCapacityExceeded", err)
	}
	if err := m.Register(handles[0]); err != api.ErrAlreadyRegistered {
		t.Fatalf("duplicate register: got %v, want ErrAlreadyRegistered", err)
	}
	if err := m.Register(nil); err != api.ErrInvalidHandle {
		t.Fatalf("nil register: got %v, want ErrInvalidHandle", err)
	}
}

func TestCallbacksRun(t *testing.T) {
	m := newRunning(t)
	var count atomic.Int64
	h := api.NewHandle(func(active bool) {
		if !active {
			t.Error("callback invoked without the tick-active flag")
		}
		count.Add(1)
	})
	if err := m.Register(h); err != nil {
		t.Fatalf("Register: %v", err)
	}
	waitUntil(t, "first invocation", func() bool { return count.Load() > 0 })
}

func TestGateNesting(t *testing.T) {
	m := newRunning(t)
	m.Disable()
	m.Disable()
	m.Enable()
	if !m.Disabled() {
		t.Fatal("one enable released two disables")
	}
	m.Enable()
	if m.Disabled() {
		t.Fatal("matched enables left the gate disabled")
	}
}

func TestGateSuppressesInvocation(t *testing.T) {
	m := newRunning(t)
	m.Disable()

	var count atomic.Int64
	h := api.NewHandle(func(bool) { count.Add(1) })
	if err := m.Register(h); err != nil {
		t.Fatalf("Register while disabled: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	if n := count.Load(); n != 0 {
		t.Fatalf("callback ran %d times while suppressed", n)
	}

	m.Enable()
	waitUntil(t, "invocation after enable", func() bool { return count.Load() > 0 })
}

func TestUnregisterImmediate(t *testing.T) {
	m := newRunning(t)
	h := api.NewHandle(func(bool) {})
	if err := m.Register(h); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := m.Unregister(h); err != nil {
		t.Fatalf("Unregister: %v", err)
	}
	if err := m.Unregister(h); err != api.ErrNotFound {
		t.Fatalf("second Unregister: got %v, want ErrNotFound", err)
	}
}

func TestDeferredUnregisterFromCallback(t *testing.T) {
	m := newRunning(t)

	var victimRuns atomic.Int64
	victim := api.NewHandle(func(bool) { victimRuns.Add(1) })
	if err := m.Register(victim); err != nil {
		t.Fatalf("register victim: %v", err)
	}

	var once sync.Once
	result := make(chan error, 1)
	remover := api.NewHandle(func(bool) {
		once.Do(func() {
			// The driver holds the primary lock right now, so this
			// must take the deferred path and still succeed.
			result <- m.Unregister(victim)
		})
	})
	if err := m.Register(remover); err != nil {
		t.Fatalf("register remover: %v", err)
	}

	if err := <-result; err != nil {
		t.Fatalf("deferred unregister returned %v", err)
	}

	// The victim stops being invoked within one driver cycle and is no
	// longer reported as registered.
	waitUntil(t, "victim reaped", func() bool {
		s := m.Stats()
		return s.Registered == 1 && s.PendingRemovals == 0
	})
	settled := victimRuns.Load()
	time.Sleep(30 * time.Millisecond)
	if victimRuns.Load() != settled {
		t.Error("victim still invoked after deferred removal")
	}
	if err := m.Unregister(victim); err != api.ErrNotFound {
		t.Errorf("unregister of reaped handle: got %v, want ErrNotFound", err)
	}
	if s := m.Stats(); s.DeferredTotal == 0 {
		t.Error("removal did not go through the deferred path")
	}
}

func TestDeferredQueueOverflow(t *testing.T) {
	cfg := testConfig()
	cfg.Slots = 2
	m, err := sched.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer m.Shutdown()

	victim := api.NewHandle(func(bool) {})
	if err := m.Register(victim); err != nil {
		t.Fatalf("register victim: %v", err)
	}

	var once sync.Once
	errs := make(chan []error, 1)
	flooder := api.NewHandle(func(bool) {
		once.Do(func() {
			// Three deferred requests against a queue of two: the
			// first pair queues, the third overflows.
			var out []error
			for i := 0; i < 3; i++ {
				out = append(out, m.Unregister(victim))
			}
			errs <- out
		})
	})
	if err := m.Register(flooder); err != nil {
		t.Fatalf("register flooder: %v", err)
	}

	out := <-errs
	if out[0] != nil || out[1] != nil {
		t.Fatalf("queued removals failed: %v, %v", out[0], out[1])
	}
	if out[2] != api.ErrQueueFull {
		t.Fatalf("overflow: got %v, want ErrQueueFull", out[2])
	}
}

func TestShutdownWhileDisabled(t *testing.T) {
	m, err := sched.New(testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	m.Register(api.NewHandle(func(bool) {}))
	m.Disable()

	finished := make(chan error, 1)
	go func() { finished <- m.Shutdown() }()
	select {
	case err := <-finished:
		if err != nil {
			t.Fatalf("Shutdown: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Shutdown hung behind an outstanding Disable")
	}
}

func TestStatsSnapshot(t *testing.T) {
	m := newRunning(t)
	a := api.NewHandle(func(bool) {})
	b := api.NewHandle(func(bool) {})
	m.Register(a)
	m.Register(b)
	m.Unregister(a) // interior gap: registered shrinks, high water holds

	waitUntil(t, "stats to settle", func() bool {
		s := m.Stats()
		return s.Registered == 1 && s.HighWater == 2 && s.TicksTotal > 0
	})
	if s := m.Stats(); s.StartedAt.IsZero() {
		t.Error("StartedAt not recorded")
	}
}
