package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counts(t *testing.T) {
	rec := NewRecorder()
	for i := 0; i < 3; i++ {
		rec.RecordSent()
	}
	rec.RecordResult(10*time.Millisecond, true)
	rec.RecordResult(20*time.Millisecond, true)
	rec.RecordResult(30*time.Millisecond, false)

	snap := rec.Snapshot()
	assert.Equal(t, int64(3), snap.Sent)
	assert.Equal(t, int64(2), snap.Succeeded)
	assert.Equal(t, int64(1), snap.Failed)
	assert.Equal(t, int64(3), snap.Completed())
}

func TestRecorder_Percentiles(t *testing.T) {
	rec := NewRecorder()
	for i := 1; i <= 10; i++ {
		rec.RecordResult(time.Duration(i*10)*time.Millisecond, true)
	}

	lat := rec.Snapshot().Latency
	assert.InDelta(t, float64(50*time.Millisecond), float64(lat.P50), float64(10*time.Millisecond))
	assert.InDelta(t, float64(100*time.Millisecond), float64(lat.P99), float64(10*time.Millisecond))
	assert.True(t, lat.Min <= lat.Max)
}

func TestRecorder_ResetKeepsTotals(t *testing.T) {
	rec := NewRecorder()
	rec.RecordSent()
	rec.RecordResult(time.Millisecond, false)

	rec.Reset()

	snap := rec.Snapshot()
	assert.Zero(t, snap.Sent)
	assert.Zero(t, snap.Failed)
	assert.Equal(t, int64(1), snap.TotalSent)
	assert.Equal(t, int64(1), snap.TotalFailed)
}

func TestCollector_Exposes(t *testing.T) {
	rec := NewRecorder()
	rec.RecordSent()
	rec.RecordSent()
	rec.RecordResult(5*time.Millisecond, true)

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(NewCollector(rec, func() bool { return true })))

	expected := `
# HELP comparedemo_load_active 1 while a load session is running.
# TYPE comparedemo_load_active gauge
comparedemo_load_active 1
# HELP comparedemo_load_requests_sent_total Order requests dispatched by the load generator.
# TYPE comparedemo_load_requests_sent_total counter
comparedemo_load_requests_sent_total 2
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"comparedemo_load_active", "comparedemo_load_requests_sent_total")
	assert.NoError(t, err)
}
