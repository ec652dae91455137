// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/relaygate/relaygate/internal/logging"
)

// errorBody is the bare JSON shape written on any non-2xx response.
type errorBody struct {
	Error string `json:"error"`
}

// WriteJSON writes data as the JSON response body with status code.
// Payloads are bare values (a Rule, an array of Rule, an array of string),
// matching the control API's wire contract with no success/data envelope.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// WriteError writes {"error": message} with status code.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errorBody{Error: message})
}

// WriteBadRequest writes a 400 with message.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 with message.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteInternalError logs err and writes a generic 500, never leaking err's
// text to the client.
func WriteInternalError(w http.ResponseWriter, err error) {
	logging.Error().Err(err).Msg("internal error")
	WriteError(w, http.StatusInternalServerError, "internal error")
}
