// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Data-plane metrics, labeled by service so per-tenant dashboards can
// be built without scraping logs.
var (
	ConnectionsAccepted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_connections_accepted_total",
			Help: "Total number of inbound connections accepted per service",
		},
		[]string{"service"},
	)

	ConnectionsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "proxy_connections_active",
			Help: "Current number of relayed connections per service",
		},
		[]string{"service"},
	)

	UpstreamDialErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_upstream_dial_errors_total",
			Help: "Total number of failed upstream dial attempts per service",
		},
		[]string{"service"},
	)

	BytesRelayed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_bytes_relayed_total",
			Help: "Total bytes relayed per service and direction",
		},
		[]string{"service", "direction"}, // direction: "client_to_upstream", "upstream_to_client"
	)

	ScreenedDrops = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_screened_drops_total",
			Help: "Total number of connections terminated by pattern screening",
		},
		[]string{"service"},
	)

	ConnectionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "proxy_connection_duration_seconds",
			Help:    "Duration of relayed connections in seconds",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 300},
		},
		[]string{"service"},
	)
)

// Rule-plane metrics.
var (
	RulesActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "relaygate_rules_active",
			Help: "Current number of active rules per service",
		},
		[]string{"service"},
	)

	RuleUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaygate_rule_updates_total",
			Help: "Total number of rule add/remove events dispatched to workers",
		},
		[]string{"service", "action"}, // action: "add", "remove"
	)

	RuleUpdateChannelFull = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaygate_rule_update_channel_full_total",
			Help: "Total number of rule updates rejected because a service's update channel was full",
		},
		[]string{"service"},
	)
)

// Control-API metrics.
var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of control API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Control API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight control API requests",
		},
	)

	AuthFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaygate_auth_failures_total",
			Help: "Total number of failed authentication attempts",
		},
		[]string{"reason"}, // "bad_password", "missing_cookie", "invalid_token"
	)
)

// RecordConnectionAccepted records a newly accepted inbound connection.
func RecordConnectionAccepted(service string) {
	ConnectionsAccepted.WithLabelValues(service).Inc()
	ConnectionsActive.WithLabelValues(service).Inc()
}

// RecordConnectionClosed records the end of a relayed connection.
func RecordConnectionClosed(service string, duration time.Duration) {
	ConnectionsActive.WithLabelValues(service).Dec()
	ConnectionDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// RecordUpstreamDialError records a failed dial to a service's upstream.
func RecordUpstreamDialError(service string) {
	UpstreamDialErrors.WithLabelValues(service).Inc()
}

// RecordBytesRelayed adds n bytes to the counter for service and direction.
func RecordBytesRelayed(service, direction string, n int) {
	if n <= 0 {
		return
	}
	BytesRelayed.WithLabelValues(service, direction).Add(float64(n))
}

// RecordScreenedDrop records a connection terminated by pattern screening.
func RecordScreenedDrop(service string) {
	ScreenedDrops.WithLabelValues(service).Inc()
}

// RecordRuleUpdate records a rule add/remove event dispatched to a worker.
func RecordRuleUpdate(service, action string) {
	RuleUpdatesTotal.WithLabelValues(service, action).Inc()
}

// RecordRuleUpdateChannelFull records a dropped update because the worker's
// channel was saturated.
func RecordRuleUpdateChannelFull(service string) {
	RuleUpdateChannelFull.WithLabelValues(service).Inc()
}

// SetRulesActive sets the current active rule count for a service.
func SetRulesActive(service string, count int) {
	RulesActive.WithLabelValues(service).Set(float64(count))
}

// RecordAPIRequest records an API request's outcome and latency.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight API request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAuthFailure records a failed authentication attempt by reason.
func RecordAuthFailure(reason string) {
	AuthFailures.WithLabelValues(reason).Inc()
}
