package metrics

import "runtime"

// MemorySnapshot holds a point-in-time reading of the Go heap.
type MemorySnapshot struct {
	HeapAlloc    uint64 `yaml:"heap_alloc"`     // bytes of live heap objects
	TotalAlloc   uint64 `yaml:"total_alloc"`    // cumulative bytes allocated
	Sys          uint64 `yaml:"sys"`            // total bytes obtained from the OS
	NumGC        uint32 `yaml:"num_gc"`         // completed GC cycles
	PauseTotalNs uint64 `yaml:"pause_total_ns"` // cumulative GC pause time
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics. It briefly stops the world.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// MemoryDelta is the allocation activity between two snapshots.
type MemoryDelta struct {
	Allocated uint64 `yaml:"allocated"`
	GCCycles  uint32 `yaml:"gc_cycles"`
	PauseNs   uint64 `yaml:"pause_ns"`
}

// Since returns the activity from before to s. Cumulative counters never
// decrease, so the subtraction is safe when before was taken first.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		Allocated: s.TotalAlloc - before.TotalAlloc,
		GCCycles:  s.NumGC - before.NumGC,
		PauseNs:   s.PauseTotalNs - before.PauseTotalNs,
	}
}
