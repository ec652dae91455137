// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package auth

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/relaygate/relaygate/internal/logging"
	"github.com/relaygate/relaygate/internal/metrics"
)

// tokenRequest is the body of POST /get_token.
type tokenRequest struct {
	Password string `json:"password"`
}

// Handlers provides the control API's login endpoint.
type Handlers struct {
	jwtManager   *JWTManager
	authPassword string
}

// NewHandlers builds Handlers comparing against authPassword (AUTH_PASSWORD).
func NewHandlers(jwtManager *JWTManager, authPassword string) *Handlers {
	return &Handlers{jwtManager: jwtManager, authPassword: authPassword}
}

// GetToken handles POST /get_token: on a matching password it mints a
// signed token and sets it as the authToken cookie; on mismatch it returns
// 401 without revealing which part of the credential was wrong.
func (h *Handlers) GetToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	if req.Password == "" || req.Password != h.authPassword {
		metrics.RecordAuthFailure("bad_password")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	token, err := h.jwtManager.GenerateToken()
	if err != nil {
		logging.Error().Err(err).Msg("failed to sign session token")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusOK)
}
