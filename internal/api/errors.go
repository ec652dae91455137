// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package api

import "errors"

// Sentinel errors returned by the control-plane handlers.
var (
	// ErrNotAuthenticated indicates the request carries no valid authToken.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrUnknownService indicates a rule or lookup named a service_name not
	// present in the running configuration.
	ErrUnknownService = errors.New("unknown service")

	// ErrRuleNotFound indicates a delete targeted a rule id with no row.
	ErrRuleNotFound = errors.New("rule not found")

	// ErrUpdateChannelFull indicates a service's bounded update channel had
	// no room left for the rule change; the caller must retry.
	ErrUpdateChannelFull = errors.New("rule update channel full")
)
