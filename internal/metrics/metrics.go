// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeError   = "error"
)

var (
	// AuthAttempts counts register, login and logout calls by outcome.
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campushire",
		Subsystem: "auth",
		Name:      "attempts_total",
		Help:      "Auth operations by operation and outcome.",
	}, []string{"operation", "outcome"})

	// ActiveSessions is the number of client contexts held by the registry.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "campushire",
		Subsystem: "auth",
		Name:      "active_sessions",
		Help:      "Client contexts currently held in memory.",
	})

	// BoardOperations counts data store mutations by operation and outcome.
	BoardOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campushire",
		Subsystem: "board",
		Name:      "operations_total",
		Help:      "Data store mutations by operation and outcome.",
	}, []string{"operation", "outcome"})

	// EventsPublished counts notification events by routing key and outcome.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campushire",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Notification events by routing key and outcome.",
	}, []string{"routing_key", "outcome"})
)
