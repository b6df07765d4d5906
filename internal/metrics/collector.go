package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "comparedemo"

// Collector exposes a Recorder as prometheus metrics.
type Collector struct {
	recorder *Recorder
	active   func() bool

	sentDesc      *prometheus.Desc
	succeededDesc *prometheus.Desc
	failedDesc    *prometheus.Desc
	latencyDesc   *prometheus.Desc
	activeDesc    *prometheus.Desc
}

// NewCollector builds a collector over rec. active reports whether a load
// session is currently running; it may be nil.
func NewCollector(rec *Recorder, active func() bool) *Collector {
	return &Collector{
		recorder: rec,
		active:   active,
		sentDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "load", "requests_sent_total"),
			"Order requests dispatched by the load generator.", nil, nil),
		succeededDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "load", "requests_succeeded_total"),
			"Order requests that returned 2xx.", nil, nil),
		failedDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "load", "requests_failed_total"),
			"Order requests that failed.", nil, nil),
		latencyDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "load", "latency_seconds"),
			"Order latency quantiles for the current session.", []string{"quantile"}, nil),
		activeDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "load", "active"),
			"1 while a load session is running.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sentDesc
	ch <- c.succeededDesc
	ch <- c.failedDesc
	ch <- c.latencyDesc
	ch <- c.activeDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.recorder.Snapshot()

	ch <- prometheus.MustNewConstMetric(c.sentDesc, prometheus.CounterValue, float64(snap.TotalSent))
	ch <- prometheus.MustNewConstMetric(c.succeededDesc, prometheus.CounterValue, float64(snap.TotalSucceeded))
	ch <- prometheus.MustNewConstMetric(c.failedDesc, prometheus.CounterValue, float64(snap.TotalFailed))

	quantiles := map[string]float64{
		"0.5":  snap.Latency.P50.Seconds(),
		"0.9":  snap.Latency.P90.Seconds(),
		"0.95": snap.Latency.P95.Seconds(),
		"0.99": snap.Latency.P99.Seconds(),
	}
	for q, v := range quantiles {
		ch <- prometheus.MustNewConstMetric(c.latencyDesc, prometheus.GaugeValue, v, q)
	}

	active := 0.0
	if c.active != nil && c.active() {
		active = 1
	}
	ch <- prometheus.MustNewConstMetric(c.activeDesc, prometheus.GaugeValue, active)
}
