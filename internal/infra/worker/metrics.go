package worker

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks the worker's scheduled send runs.
type Metrics struct {
	// SendRunsTotal counts scheduled send runs by outcome: "sent",
	// "empty" (nothing planned for the day), "failure".
	SendRunsTotal *prometheus.CounterVec

	// SendDurationSeconds measures one send run end to end, including the
	// store reads and the transport call.
	SendDurationSeconds prometheus.Histogram

	// LastSuccessTimestamp is the Unix time of the last run that did not
	// fail (sent or empty).
	LastSuccessTimestamp prometheus.Gauge
}

// NewMetrics builds the worker metrics, unregistered.
func NewMetrics() *Metrics {
	return &Metrics{
		SendRunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_send_runs_total",
			Help: "Total scheduled send runs by outcome (sent/empty/failure)",
		}, []string{"outcome"}),

		SendDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_send_duration_seconds",
			Help:    "Duration of one scheduled send run in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		}),

		LastSuccessTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "worker_send_last_success_timestamp",
			Help: "Unix timestamp of the last non-failing send run",
		}),
	}
}

// MustRegister registers all metrics with the default registry. Panics on
// duplicate registration.
func (m *Metrics) MustRegister() {
	prometheus.MustRegister(
		m.SendRunsTotal,
		m.SendDurationSeconds,
		m.LastSuccessTimestamp,
	)
}

// RecordRun records one run outcome with its duration.
func (m *Metrics) RecordRun(outcome string, seconds float64) {
	m.SendRunsTotal.WithLabelValues(outcome).Inc()
	m.SendDurationSeconds.Observe(seconds)
	if outcome != "failure" {
		m.LastSuccessTimestamp.SetToCurrentTime()
	}
}
