// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

// Package proxy implements the data plane: one Worker per configured
// service accepting connections, a duplex Relay pairing client and
// upstream sockets under a shared cancellation context, and the literal
// byte-pattern Find used to screen the client-to-upstream direction.
package proxy
