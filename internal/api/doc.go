// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

// Package api implements the control plane's HTTP surface: the chi router,
// its Chi-native CORS/rate-limit/security-header middleware, and the
// handlers for token issuance, rule CRUD, service listing, the login/app
// home page, and Prometheus exposition.
//
// Rule mutations flow through internal/rules.Store for persistence and
// internal/rules.Channels to notify the matching internal/proxy.Worker.
// Every response body is a bare JSON value (a Rule, an array of Rule, an
// array of strings, or {"error": "..."}) with no success/data envelope.
package api
