package gate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by a gate.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	attempts *prometheus.CounterVec
	duration prometheus.Histogram
	state    prometheus.Gauge
}

// NewMetrics creates the gate collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "readygate_probe_attempts_total",
				Help: "Total number of probes issued, by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "readygate_probe_duration_seconds",
				Help:    "Duration of individual probes",
				Buckets: prometheus.DefBuckets,
			},
		),
		state: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "readygate_state",
				Help: "Gate state: 0 polling, 1 handed off, 2 gave up",
			},
		),
	}
	reg.MustRegister(m.attempts, m.duration, m.state)
	return m
}

func (m *Metrics) observeProbe(d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.attempts.WithLabelValues(outcome).Inc()
	m.duration.Observe(d.Seconds())
}

func (m *Metrics) setState(s State) {
	if m == nil {
		return
	}
	m.state.Set(float64(s))
}
