// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/quickly-elect/election"
)

const Namespace = "quickly_elect"

// Metrics holds the election collectors on their own registry so tests can
// create as many as they like.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	phase      prometheus.Gauge
	events     prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "election",
			Name:      "operations_total",
			Help:      "Engine operations by name and outcome.",
		}, []string{"op", "outcome"}),
		phase: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "election",
			Name:      "phase",
			Help:      "Index of the current election phase (0 = RegisteringVoters).",
		}),
		events: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "election",
			Name:      "events_total",
			Help:      "Notifications persisted since start.",
		}),
	}
	m.registry.MustRegister(m.operations, m.phase, m.events)
	return m
}

// Observe counts one operation. Rejections are labelled with the error
// kind, so the outcome set stays small.
func (m *Metrics) Observe(op string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = election.KindOf(err).String()
	}
	m.operations.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) SetPhase(p election.Phase) {
	if m == nil {
		return
	}
	m.phase.Set(float64(p.Index()))
}

func (m *Metrics) AddEvents(n int) {
	if m == nil {
		return
	}
	m.events.Add(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
