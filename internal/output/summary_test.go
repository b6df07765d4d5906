package output

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wesleyorama2/comparedemo/internal/metrics"
)

func TestFormatSummary(t *testing.T) {
	f := NewFormatter(FormatJSON, true)
	snap := metrics.Snapshot{
		Sent:      1200,
		Succeeded: 1188,
		Failed:    12,
		Elapsed:   2*time.Minute + 5*time.Second,
		Latency: metrics.LatencyStats{
			Min: 800 * time.Microsecond,
			P50: 12 * time.Millisecond,
			P99: 1500 * time.Millisecond,
		},
	}

	out := f.FormatSummary("High Load (10 req/s)", snap)
	assert.Contains(t, out, "High Load (10 req/s) - Completed with errors ⚠")
	assert.Contains(t, out, "Duration:      2m 05s")
	assert.Contains(t, out, "Sent:          1,200")
	assert.Contains(t, out, "Success Rate:  99.0%")
	assert.Contains(t, out, "  Min:       800µs")
	assert.Contains(t, out, "  p50:       12ms")
	assert.Contains(t, out, "  p99:       1.50s")
}

func TestFormatSummary_NoRequests(t *testing.T) {
	out := NewFormatter(FormatJSON, true).FormatSummary("Low Load (1 req/2s)", metrics.Snapshot{})
	assert.Contains(t, out, "Completed ✓")
	assert.NotContains(t, out, "Latency Distribution")
}

func TestFormatNumber(t *testing.T) {
	cases := map[int64]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567"}
	for in, want := range cases {
		assert.Equal(t, want, formatNumber(in))
	}
}
