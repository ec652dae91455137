// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

/*
Package middleware provides HTTP middleware components for the application.

This package implements two infrastructure middlewares, request ID tracking
and Prometheus metrics integration, each wrapping an http.HandlerFunc. It
provides no compression, performance-monitoring, CORS or rate-limiting
middleware; CORS and rate limiting for the control API are set up in
internal/api.

Key Components:

  - Request ID: RequestID reuses an incoming X-Request-ID header or generates
    a UUID v4, and GetRequestID reads it back from the context
  - Prometheus Metrics: PrometheusMetrics records HTTP request/response
    metrics, capturing the status code through metricsResponseWriter

Usage Example - Request ID:

	// Request ID middleware
	http.HandleFunc("/api/v1/logs",
	    middleware.RequestID(handler),
	)

	// Access request ID in handler
	func handler(w http.ResponseWriter, r *http.Request) {
	    requestID := r.Context().Value(middleware.RequestIDKey).(string)
	    log.Printf("[%s] Processing request", requestID)
	}

Thread Safety:

All middleware components are thread-safe:
  - Request ID uses context.Context (immutable)
  - Prometheus metrics use atomic operations

See Also:

  - internal/auth: Authentication middleware
  - internal/api: HTTP handlers wrapped by middleware
  - internal/metrics: Prometheus metrics definitions
*/
package middleware
