// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ruleIDFromPath parses the :id path parameter used by DELETE /rules/{id}.
func ruleIDFromPath(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	return strconv.ParseInt(raw, 10, 64)
}
