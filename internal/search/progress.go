package search

import "sync/atomic"

// FlushInterval is the number of candidates a worker digests between two
// publications of its private count.
const FlushInterval = 1 << 12

// paddedCounter keeps each worker's counter on its own cache line so that
// publishing does not cause false sharing between workers.
type paddedCounter struct {
	n atomic.Uint64
	_ [56]byte
}

// Progress exposes how many candidates each worker has digested. Every slot
// is written by exactly one worker and may be read by any goroutine.
type Progress struct {
	slots []paddedCounter
}

// NewProgress returns a Progress with one slot per worker.
func NewProgress(workers int) *Progress {
	if workers < 0 {
		workers = 0
	}
	return &Progress{slots: make([]paddedCounter, workers)}
}

// Workers returns the number of slots.
func (p *Progress) Workers() int {
	if p == nil {
		return 0
	}
	return len(p.slots)
}

// Total returns the number of candidates digested so far by all workers.
func (p *Progress) Total() uint64 {
	if p == nil {
		return 0
	}
	var total uint64
	for i := range p.slots {
		total += p.slots[i].n.Load()
	}
	return total
}

// PerWorker returns a snapshot of every worker's count.
func (p *Progress) PerWorker() []uint64 {
	if p == nil {
		return nil
	}
	counts := make([]uint64, len(p.slots))
	for i := range p.slots {
		counts[i] = p.slots[i].n.Load()
	}
	return counts
}

func (p *Progress) slot(i int) *atomic.Uint64 {
	return &p.slots[i].n
}

// ensureProgress returns p when it fits the worker count and a private
// Progress otherwise.
func ensureProgress(p *Progress, workers int) *Progress {
	if p != nil && len(p.slots) == workers {
		return p
	}
	return NewProgress(workers)
}
