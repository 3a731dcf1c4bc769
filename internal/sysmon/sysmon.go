// Package sysmon provides host facts and system-wide CPU and memory sampling
// used to size worker plans and to annotate reports and dashboards.
package sysmon

import (
	"runtime"

	"github.com/klauspost/cpuid/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// Host describes the processor the suite runs on.
type Host struct {
	CPUBrand      string `yaml:"cpu_brand"`
	PhysicalCores int    `yaml:"physical_cores"`
	LogicalCores  int    `yaml:"logical_cores"`
	UsableCPUs    int    `yaml:"usable_cpus"`
	GOOS          string `yaml:"goos"`
	GOARCH        string `yaml:"goarch"`
}

// DescribeHost gathers the static host facts. Fields cpuid cannot detect
// fall back to the Go runtime's view.
func DescribeHost() Host {
	h := Host{
		CPUBrand:      CPUBrand(),
		PhysicalCores: cpuid.CPU.PhysicalCores,
		LogicalCores:  cpuid.CPU.LogicalCores,
		UsableCPUs:    UsableCPUs(),
		GOOS:          runtime.GOOS,
		GOARCH:        runtime.GOARCH,
	}
	if h.LogicalCores <= 0 {
		h.LogicalCores = runtime.NumCPU()
	}
	if h.PhysicalCores <= 0 {
		h.PhysicalCores = h.LogicalCores
	}
	return h
}

// CPUBrand returns the processor brand string, or "unknown".
func CPUBrand() string {
	if cpuid.CPU.BrandName == "" {
		return "unknown"
	}
	return cpuid.CPU.BrandName
}

// UsableCPUs returns the number of CPUs this process may be scheduled on.
// It honors affinity masks where the platform exposes them and is always >= 1.
func UsableCPUs() int {
	if n := affinityCPUs(); n > 0 {
		return n
	}
	return max(runtime.NumCPU(), 1)
}
