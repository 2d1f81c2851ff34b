// Package metrics records per-run Prometheus metrics and writes them in the
// text exposition format for the node_exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Run holds the collectors for a single invocation
type Run struct {
	Registry *prometheus.Registry

	StageDuration  *prometheus.HistogramVec
	StageFailures  *prometheus.CounterVec
	LastRunSuccess prometheus.Gauge
	LastRunTime    prometheus.Gauge
}

// NewRun creates a registry with all run collectors registered
func NewRun() *Run {
	r := &Run{
		Registry: prometheus.NewRegistry(),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ipweather_stage_duration_seconds",
				Help:    "Duration of each lookup stage in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"stage"},
		),
		StageFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ipweather_stage_failures_total",
				Help: "Failed lookup stages by error kind",
			},
			[]string{"stage", "kind"},
		),
		LastRunSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ipweather_last_run_success",
				Help: "1 if the last run completed, 0 otherwise",
			},
		),
		LastRunTime: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ipweather_last_run_timestamp_seconds",
				Help: "Unix time the last run finished",
			},
		),
	}

	r.Registry.MustRegister(r.StageDuration, r.StageFailures, r.LastRunSuccess, r.LastRunTime)
	return r
}

// ObserveStage records how long stage took and, when kind is non-empty, a failure
func (r *Run) ObserveStage(stage string, d time.Duration, kind string) {
	r.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if kind != "" {
		r.StageFailures.WithLabelValues(stage, kind).Inc()
	}
}

// Finish marks the run outcome
func (r *Run) Finish(success bool, at time.Time) {
	if success {
		r.LastRunSuccess.Set(1)
	} else {
		r.LastRunSuccess.Set(0)
	}
	r.LastRunTime.Set(float64(at.Unix()))
}

// WriteTextfile atomically writes the registry to path
func (r *Run) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.Registry)
}
