package control

import (
	"testing"
)

func TestConfigStoreMerge(t *testing.T) {
	cs := NewConfigStore()
	var reloads int
	cs.OnReload(func() { reloads++ })

	if changed := cs.Merge(map[string]any{KeyTickRate: 1000}); !changed {
		t.Fatal("first merge reported no change")
	}
	if reloads != 1 {
		t.Fatalf("reloads = %d, want 1", reloads)
	}

	// Re-merging identical values must not notify.
	if changed := cs.Merge(map[string]any{KeyTickRate: 1000}); changed {
		t.Fatal("identical merge reported a change")
	}
	if reloads != 1 {
		t.Fatalf("reloads after no-op merge = %d, want 1", reloads)
	}

	v, ok := cs.Get(KeyTickRate)
	if !ok || v != 1000 {
		t.Errorf("Get(%q) = %v, %v", KeyTickRate, v, ok)
	}
	if snap := cs.Snapshot(); len(snap) != 1 {
		t.Errorf("snapshot size = %d, want 1", len(snap))
	}
}

func TestMetricsRegistry(t *testing.T) {
	mr := NewMetricsRegistry()
	mr.Inc("ticks", 5)
	mr.Inc("ticks", 7)
	mr.Set("rate", 1000)

	snap := mr.Snapshot()
	if snap["ticks"] != uint64(12) {
		t.Errorf("ticks = %v, want 12", snap["ticks"])
	}
	if snap["rate"] != 1000 {
		t.Errorf("rate = %v, want 1000", snap["rate"])
	}
	if _, ok := snap["updated_at"]; !ok {
		t.Error("snapshot misses updated_at")
	}
}

func TestDebugProbes(t *testing.T) {
	dp := NewDebugProbes()
	dp.RegisterProbe("answer", func() any { return 42 })
	RegisterPlatformProbes(dp)

	state := dp.DumpState()
	if state["answer"] != 42 {
		t.Errorf("probe answer = %v", state["answer"])
	}
	if _, ok := state["platform.cpus"]; !ok {
		t.Error("platform probes not registered")
	}

	dp.RemoveProbe("answer")
	if _, ok := dp.DumpState()["answer"]; ok {
		t.Error("removed probe still present")
	}
}
