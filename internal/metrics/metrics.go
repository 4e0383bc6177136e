// Package metrics holds the simulator's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gitsim"

type Metrics struct {
	commands       *prometheus.CounterVec
	sessionsActive prometheus.Gauge
	progressErrors prometheus.Counter
}

// New creates the collectors and registers them on reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Submitted command lines by subcommand and outcome.",
		}, []string{"subcommand", "outcome"}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Sessions currently held in memory.",
		}),
		progressErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "progress_errors_total",
			Help:      "Progress store failures.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.commands, m.sessionsActive, m.progressErrors)
	}
	return m
}

// CommandExecuted counts one submitted line. A nil receiver is a no-op.
func (m *Metrics) CommandExecuted(subcommand, outcome string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(subcommand, outcome).Inc()
}

func (m *Metrics) SetSessionsActive(n int) {
	if m == nil {
		return
	}
	m.sessionsActive.Set(float64(n))
}

func (m *Metrics) ProgressError() {
	if m == nil {
		return
	}
	m.progressErrors.Inc()
}
