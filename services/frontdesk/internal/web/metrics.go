package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes desk activity on /metrics.
type Metrics struct {
	registry      *prometheus.Registry
	actions       *prometheus.CounterVec
	dialogs       *prometheus.CounterVec
	displayedRows prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Name:      "actions_total",
			Help:      "Desk actions dispatched, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		dialogs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Name:      "dialog_answers_total",
			Help:      "Answers given to open dialogs.",
		}, []string{"answer"}),
		displayedRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "frontdesk",
			Name:      "displayed_rows",
			Help:      "Rows currently shown on the reservations table.",
		}),
	}
	m.registry.MustRegister(m.actions, m.dialogs, m.displayedRows)
	return m
}

func (m *Metrics) observeAction(kind, outcome string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) observeAnswer(confirmed bool) {
	if m == nil {
		return
	}
	answer := "cancel"
	if confirmed {
		answer = "confirm"
	}
	m.dialogs.WithLabelValues(answer).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
