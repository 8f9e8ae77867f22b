// Copyright (C) 2024 the gammatrace authors.
// This file is part of gammatrace.
//
// gammatrace is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// gammatrace is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with gammatrace.  If not, see <http://www.gnu.org/licenses/>.

package engine

import "github.com/prometheus/client_golang/prometheus"

// Metrics is an optional per-engine Prometheus collector. A nil Metrics
// disables instrumentation entirely: every method returns at once on a
// nil receiver, so Engine calls them unconditionally.
type Metrics struct {
	Terminations *prometheus.CounterVec
	Steps        prometheus.Counter
	PathLength   prometheus.Histogram
}

// NewMetrics constructs and registers a Metrics against reg. Pass a
// fresh *prometheus.Registry per engine instance to avoid duplicate
// registration when multiple engines coexist in one process.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Terminations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gammatrace_terminations_total",
			Help: "Number of particle trajectories terminated, by status.",
		}, []string{"status"}),
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gammatrace_steps_total",
			Help: "Number of transport steps executed across all states.",
		}),
		PathLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gammatrace_path_length_cm",
			Help:    "Cumulative path length of terminated trajectories, in cm.",
			Buckets: prometheus.ExponentialBuckets(1e-2, 4, 12),
		}),
	}
	reg.MustRegister(m.Terminations, m.Steps, m.PathLength)
	return m
}

// recordTermination is called once per terminal state, never on the
// per-step hot path.
func (m *Metrics) recordTermination(status TransportStatus, length float64) {
	if m == nil {
		return
	}
	m.Terminations.WithLabelValues(status.String()).Inc()
	m.PathLength.Observe(length)
}

// recordStep is called once per transport step.
func (m *Metrics) recordStep() {
	if m == nil {
		return
	}
	m.Steps.Inc()
}
