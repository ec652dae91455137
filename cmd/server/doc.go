// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

// Command relaygate runs the TCP reverse proxy and its control API.
//
// Each configured service gets its own accept loop relaying bytes to a
// fixed upstream; the control API (chi router, JWT-cookie gated) lets an
// operator add and remove literal byte-pattern screening rules per
// service while connections are live. See internal/proxy, internal/rules,
// and internal/api for the data plane, rule model, and control plane
// respectively.
package main
