package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/hashrace/internal/config"
	"github.com/agbru/hashrace/internal/format"
	"github.com/agbru/hashrace/internal/metrics"
	"github.com/agbru/hashrace/internal/sysmon"
	"github.com/agbru/hashrace/internal/target"
	"github.com/agbru/hashrace/internal/ui"
)

// PrintExecutionConfig prints the --details banner: target, plan and host.
func PrintExecutionConfig(cfg config.AppConfig, host sysmon.Host, holder *target.Holder, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Searching for the preimage of %s%s%s (md5 of %s) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), holder.Digest(), ui.ColorReset(),
		format.FormatCount(holder.Value()),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Plan: %s.\n", cfg)
	fmt.Fprintf(out, "Environment: %s%s%s, %s%d%s usable of %d logical processors, Go %s.\n",
		ui.ColorCyan(), host.CPUBrand, ui.ColorReset(),
		ui.ColorCyan(), host.UsableCPUs, ui.ColorReset(), host.LogicalCores, runtime.Version())
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}

// DisplayMemoryStats prints the heap activity of the suite.
func DisplayMemoryStats(after metrics.MemorySnapshot, delta metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Live heap:       %s\n", format.FormatBytes(after.HeapAlloc))
	fmt.Fprintf(out, "  Allocated:       %s\n", format.FormatBytes(delta.Allocated))
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.GCCycles)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(delta.PauseNs)/1e6)
}
