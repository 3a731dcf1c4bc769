package config

import (
	"slices"

	"github.com/agbru/hashrace/internal/sysmon"
)

// usableCPUs is a seam for tests.
var usableCPUs = sysmon.UsableCPUs

// EstimateWorkerCounts proposes a parallel plan around the number of CPUs
// this process may run on: a single worker, the powers of two below the CPU
// count, the CPU count itself, and two oversubscribed points (2x and 4x).
// The result is ascending and free of duplicates.
func EstimateWorkerCounts() []int {
	cpus := max(usableCPUs(), 1)

	plan := []int{1}
	for n := 2; n < cpus; n *= 2 {
		plan = append(plan, n)
	}
	plan = append(plan, cpus, 2*cpus, 4*cpus)

	slices.Sort(plan)
	plan = slices.Compact(plan)
	for i, n := range plan {
		if n > MaxWorkers {
			return plan[:i]
		}
	}
	return plan
}
