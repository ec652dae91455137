// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package auth

import (
	"context"
	"net/http"

	"github.com/relaygate/relaygate/internal/logging"
)

type contextKey string

// IdentityContextKey is where ExtractToken stores the authenticated
// principal (if any) for downstream handlers and ProtectAPI to read.
const IdentityContextKey contextKey = "identity"

// CookieName is the cookie carrying the signed session token.
const CookieName = "authToken"

// Middleware wraps a JWTManager with the two composable layers the control
// API's routes are built from: token extraction and API protection.
type Middleware struct {
	jwtManager *JWTManager
}

// NewMiddleware builds a Middleware backed by jwtManager.
func NewMiddleware(jwtManager *JWTManager) *Middleware {
	return &Middleware{jwtManager: jwtManager}
}

// ExtractToken reads the authToken cookie, validates it, and — on success —
// injects the signed-in principal into the request context. Absence or
// invalidity of the cookie is not itself an error: it simply leaves no
// identity in the context, deferred to ProtectAPI (or left unenforced, for
// routes like GET /front that behave differently when signed in).
func (m *Middleware) ExtractToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.jwtManager.ValidateToken(cookie.Value)
		if err != nil {
			logging.Debug().Err(err).Msg("authToken present but invalid")
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), IdentityContextKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ProtectAPI rejects requests with no identity in context (no cookie,
// or a cookie that failed validation upstream in ExtractToken).
func (m *Middleware) ProtectAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Identity(r.Context()) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Identity returns the principal injected by ExtractToken, or "" if absent.
func Identity(ctx context.Context) string {
	id, _ := ctx.Value(IdentityContextKey).(string)
	return id
}
