package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/wesleyorama2/comparedemo/internal/metrics"
)

const boxHorizontal = "─"

// FormatSummary renders the end-of-session report for a load run.
func (f *Formatter) FormatSummary(description string, snap metrics.Snapshot) string {
	var b strings.Builder
	line := f.scheme.Status.Sprint(strings.Repeat(boxHorizontal, 56))

	status := f.scheme.Success.Sprint("Completed ✓")
	if snap.Failed > 0 {
		status = f.scheme.Warning.Sprint("Completed with errors ⚠")
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "%s - %s\n", f.Highlight(description), status)
	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "Duration:      %s\n", f.scheme.Status.Sprint(formatDuration(snap.Elapsed)))
	fmt.Fprintf(&b, "Sent:          %s\n", f.scheme.Status.Sprint(formatNumber(snap.Sent)))
	fmt.Fprintf(&b, "Succeeded:     %s\n", f.scheme.Success.Sprint(formatNumber(snap.Succeeded)))
	fmt.Fprintf(&b, "Failed:        %s\n", f.failedColor(snap).Sprint(formatNumber(snap.Failed)))

	if done := snap.Completed(); done > 0 {
		rate := float64(snap.Succeeded) / float64(done)
		fmt.Fprintf(&b, "Success Rate:  %.1f%%\n", rate*100)

		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "Latency Distribution:")
		fmt.Fprintf(&b, "  Min:       %s\n", formatDurationShort(snap.Latency.Min))
		fmt.Fprintf(&b, "  p50:       %s\n", formatDurationShort(snap.Latency.P50))
		fmt.Fprintf(&b, "  p90:       %s\n", formatDurationShort(snap.Latency.P90))
		fmt.Fprintf(&b, "  p95:       %s\n", formatDurationShort(snap.Latency.P95))
		fmt.Fprintf(&b, "  p99:       %s\n", formatDurationShort(snap.Latency.P99))
		fmt.Fprintf(&b, "  Max:       %s\n", formatDurationShort(snap.Latency.Max))
	}

	return b.String()
}

func (f *Formatter) failedColor(snap metrics.Snapshot) *color.Color {
	if snap.Failed > 0 {
		return f.scheme.Error
	}
	return f.scheme.Success
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm %02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh %02dm %02ds", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
}

// formatDurationShort formats a latency value.
func formatDurationShort(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return "0ms"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

// formatNumber formats a number with thousands separators.
func formatNumber(n int64) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	offset := len(str) % 3
	if offset > 0 {
		result.WriteString(str[:offset])
	}
	for i := offset; i < len(str); i += 3 {
		if result.Len() > 0 {
			result.WriteString(",")
		}
		result.WriteString(str[i : i+3])
	}
	return result.String()
}
