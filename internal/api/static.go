// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package api

import _ "embed"

//go:embed static/login.html
var loginHTML []byte

//go:embed static/app.html
var appHTML []byte
