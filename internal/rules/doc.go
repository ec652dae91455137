// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

// Package rules implements the rule table, its wire DTO, and the
// service_name -> update channel map that fans rule mutations out to the
// data plane. The control API owns Store and Channels; each proxy worker
// owns exactly one channel's receiver and the snapshot it feeds.
package rules
