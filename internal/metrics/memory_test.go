package metrics

import "testing"

var sink []byte

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	snap := NewMemoryCollector().Snapshot()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemorySnapshot_Since(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	before := mc.Snapshot()
	sink = make([]byte, 1<<20)
	after := mc.Snapshot()

	d := after.Since(before)
	if d.Allocated < 1<<20 {
		t.Errorf("Allocated = %d, want >= %d", d.Allocated, 1<<20)
	}
	if after.NumGC < before.NumGC {
		t.Error("NumGC should not decrease between snapshots")
	}
}
