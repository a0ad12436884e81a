package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "flowwork"

// Formula evaluation outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
)

// Metrics groups the service's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	formulaEvals    *prometheus.CounterVec
	glGuessLines    *prometheus.CounterVec
	priceSpikes     prometheus.Counter
	requestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		formulaEvals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "formula_evaluations_total",
			Help:      "Formula cell evaluations by outcome.",
		}, []string{"outcome"}),
		glGuessLines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gl_guess_lines_total",
			Help:      "Annotated purchase lines by GL source.",
		}, []string{"source"}),
		priceSpikes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_spikes_total",
			Help:      "Purchase lines flagged as price spikes.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.formulaEvals, m.glGuessLines, m.priceSpikes, m.requestDuration)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveFormulas(evaluated, fallbacks int) {
	if m == nil {
		return
	}
	if ok := evaluated - fallbacks; ok > 0 {
		m.formulaEvals.WithLabelValues(OutcomeOK).Add(float64(ok))
	}
	if fallbacks > 0 {
		m.formulaEvals.WithLabelValues(OutcomeFallback).Add(float64(fallbacks))
	}
}

func (m *Metrics) ObserveGLGuess(source string, spike bool) {
	if m == nil {
		return
	}
	m.glGuessLines.WithLabelValues(source).Inc()
	if spike {
		m.priceSpikes.Inc()
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
