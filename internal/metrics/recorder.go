// Package metrics records per-session order latencies and outcomes.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	histogramMin     = 1          // 1 microsecond
	histogramMax     = 3600000000 // 1 hour in microseconds
	histogramSigFigs = 3
)

// Recorder collects order outcomes for the current load session using an
// HDR histogram for latency percentiles.
//
// # Thread Safety
//
// Counters are atomic; the histogram is guarded by a mutex because
// hdrhistogram's RecordValue is not safe for concurrent use.
type Recorder struct {
	hist   *hdrhistogram.Histogram
	histMu sync.Mutex

	sent      atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64

	// Lifetime totals survive Reset; prometheus counters must be monotonic.
	totalSent      atomic.Int64
	totalSucceeded atomic.Int64
	totalFailed    atomic.Int64

	startMu sync.RWMutex
	start   time.Time
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		hist:  hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs),
		start: time.Now(),
	}
}

// Reset clears per-session state. Called at every session start.
func (r *Recorder) Reset() {
	r.histMu.Lock()
	r.hist.Reset()
	r.histMu.Unlock()

	r.sent.Store(0)
	r.succeeded.Store(0)
	r.failed.Store(0)

	r.startMu.Lock()
	r.start = time.Now()
	r.startMu.Unlock()
}

// RecordSent counts a dispatched request.
func (r *Recorder) RecordSent() {
	r.sent.Add(1)
	r.totalSent.Add(1)
}

// RecordResult records the latency and outcome of a completed request.
func (r *Recorder) RecordResult(latency time.Duration, success bool) {
	micros := latency.Microseconds()
	if micros < histogramMin {
		micros = histogramMin
	}
	if micros > histogramMax {
		micros = histogramMax
	}

	r.histMu.Lock()
	_ = r.hist.RecordValue(micros)
	r.histMu.Unlock()

	if success {
		r.succeeded.Add(1)
		r.totalSucceeded.Add(1)
	} else {
		r.failed.Add(1)
		r.totalFailed.Add(1)
	}
}

// Snapshot returns a point-in-time view of the current session.
func (r *Recorder) Snapshot() Snapshot {
	r.histMu.Lock()
	latency := LatencyStats{
		Min:  time.Duration(r.hist.Min()) * time.Microsecond,
		Max:  time.Duration(r.hist.Max()) * time.Microsecond,
		Mean: time.Duration(r.hist.Mean()) * time.Microsecond,
		P50:  time.Duration(r.hist.ValueAtQuantile(50)) * time.Microsecond,
		P90:  time.Duration(r.hist.ValueAtQuantile(90)) * time.Microsecond,
		P95:  time.Duration(r.hist.ValueAtQuantile(95)) * time.Microsecond,
		P99:  time.Duration(r.hist.ValueAtQuantile(99)) * time.Microsecond,
	}
	r.histMu.Unlock()

	r.startMu.RLock()
	elapsed := time.Since(r.start)
	r.startMu.RUnlock()

	return Snapshot{
		Sent:           r.sent.Load(),
		Succeeded:      r.succeeded.Load(),
		Failed:         r.failed.Load(),
		TotalSent:      r.totalSent.Load(),
		TotalSucceeded: r.totalSucceeded.Load(),
		TotalFailed:    r.totalFailed.Load(),
		Latency:        latency,
		Elapsed:        elapsed,
	}
}

// Snapshot contains session and lifetime counters.
type Snapshot struct {
	Sent           int64         `json:"sent"`
	Succeeded      int64         `json:"succeeded"`
	Failed         int64         `json:"failed"`
	TotalSent      int64         `json:"totalSent"`
	TotalSucceeded int64         `json:"totalSucceeded"`
	TotalFailed    int64         `json:"totalFailed"`
	Latency        LatencyStats  `json:"latency"`
	Elapsed        time.Duration `json:"elapsed"`
}

// Completed returns the number of requests that finished either way.
func (s Snapshot) Completed() int64 {
	return s.Succeeded + s.Failed
}

// LatencyStats contains latency statistics.
type LatencyStats struct {
	Min  time.Duration `json:"min"`
	Max  time.Duration `json:"max"`
	Mean time.Duration `json:"mean"`
	P50  time.Duration `json:"p50"`
	P90  time.Duration `json:"p90"`
	P95  time.Duration `json:"p95"`
	P99  time.Duration `json:"p99"`
}
