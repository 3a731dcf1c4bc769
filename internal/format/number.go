package format

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNumberString inserts thousands separators into a decimal string.
// A leading minus sign is preserved.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}
	var b strings.Builder
	b.Grow(len(prefix) + n + n/3)
	b.WriteString(prefix)
	head := n % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatCount renders a candidate count with thousands separators.
func FormatCount(n uint64) string {
	return FormatNumberString(strconv.FormatUint(n, 10))
}

var rateUnits = []struct {
	scale  float64
	suffix string
}{
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
}

// FormatRate renders a hashing throughput in candidates per second using SI
// prefixes, e.g. "12.35 M/s".
func FormatRate(perSecond float64) string {
	if perSecond <= 0 {
		return "0 /s"
	}
	for _, u := range rateUnits {
		if perSecond >= u.scale {
			return fmt.Sprintf("%.2f %s/s", perSecond/u.scale, u.suffix)
		}
	}
	return fmt.Sprintf("%.0f /s", perSecond)
}

// FormatSpeedup renders a ratio against a baseline, e.g. "3.97x".
// A zero or negative ratio renders as "-".
func FormatSpeedup(ratio float64) string {
	if ratio <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2fx", ratio)
}

// FormatBytes renders a byte count with binary prefixes, e.g. "1.50 MiB".
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
