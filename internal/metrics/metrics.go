// SPDX-FileCopyrightText: The weather2wear authors
//
// SPDX-License-Identifier: MIT

// Package metrics provides the optional telemetry side-channel of the service.
// Counters are held on a private registry, nothing in the request path depends
// on them and a failed increment cannot exist, so rendering is never affected.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the service counters and their registry
type Metrics struct {
	registry *prometheus.Registry

	// Submissions counts all processed form submissions
	Submissions prometheus.Counter
	// InvalidInput counts submissions rejected during validation
	InvalidInput prometheus.Counter
	// WeatherFailures counts failed forecast retrievals
	WeatherFailures prometheus.Counter
	// RecommendationFailures counts failed outfit retrievals
	RecommendationFailures prometheus.Counter
	// Rendered counts successfully rendered result pages
	Rendered prometheus.Counter
}

// New returns a new Metrics instance with all counters registered on a
// dedicated registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Submissions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weather2wear_submissions_total",
			Help: "Number of processed form submissions",
		}),
		InvalidInput: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weather2wear_invalid_input_total",
			Help: "Number of submissions rejected during input validation",
		}),
		WeatherFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weather2wear_weather_failures_total",
			Help: "Number of failed weather forecast retrievals",
		}),
		RecommendationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weather2wear_recommendation_failures_total",
			Help: "Number of failed outfit recommendation retrievals",
		}),
		Rendered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weather2wear_rendered_total",
			Help: "Number of successfully rendered result pages",
		}),
	}
	m.registry.MustRegister(m.Submissions, m.InvalidInput, m.WeatherFailures,
		m.RecommendationFailures, m.Rendered)
	m.registry.MustRegister(collectors.NewGoCollector())
	return m
}

// Handler returns the HTTP handler exposing the registry in the Prometheus
// text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
