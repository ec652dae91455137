// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

/*
Package metrics provides Prometheus instrumentation for the data and control
planes, exposed at GET /metrics in Prometheus text format.

# Data plane

Connection and relay metrics are labeled by service so each configured
proxy service gets its own time series:

	proxy_connections_accepted_total{service}
	proxy_connections_active{service}
	proxy_upstream_dial_errors_total{service}
	proxy_bytes_relayed_total{service,direction}
	proxy_screened_drops_total{service}
	proxy_connection_duration_seconds{service}

# Rule plane

	relaygate_rules_active{service}
	relaygate_rule_updates_total{service,action}
	relaygate_rule_update_channel_full_total{service}

# Control API

	api_requests_total{method,endpoint,status_code}
	api_request_duration_seconds{method,endpoint}
	api_active_requests
	relaygate_auth_failures_total{reason}
*/
package metrics
