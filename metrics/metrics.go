// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	PollsCreated    prometheus.Counter
	PollsDeleted    prometheus.Counter
	VotesCast       prometheus.Counter
	VotesRetracted  prometheus.Counter
	VotesRejected   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		PollsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "pollgram_polls_created_total",
			Help: "Polls created",
		}),
		PollsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "pollgram_polls_deleted_total",
			Help: "Polls deleted",
		}),
		VotesCast: factory.NewCounter(prometheus.CounterOpts{
			Name: "pollgram_votes_cast_total",
			Help: "Votes recorded",
		}),
		VotesRetracted: factory.NewCounter(prometheus.CounterOpts{
			Name: "pollgram_votes_retracted_total",
			Help: "Votes retracted",
		}),
		VotesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pollgram_votes_rejected_total",
			Help: "Vote requests rejected, by reason",
		}, []string{"reason"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pollgram_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// Registry exposes the registry for other collectors (the event bus).
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) PollCreated() {
	if m != nil {
		m.PollsCreated.Inc()
	}
}

func (m *Metrics) PollDeleted() {
	if m != nil {
		m.PollsDeleted.Inc()
	}
}

func (m *Metrics) VoteCast() {
	if m != nil {
		m.VotesCast.Inc()
	}
}

func (m *Metrics) VoteRetracted() {
	if m != nil {
		m.VotesRetracted.Inc()
	}
}

func (m *Metrics) VoteRejected(reason string) {
	if m != nil {
		m.VotesRejected.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m != nil {
		m.RequestDuration.WithLabelValues(method, route, status).Observe(seconds)
	}
}
