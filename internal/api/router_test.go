// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/relaygate/relaygate/internal/auth"
	"github.com/relaygate/relaygate/internal/config"
	"github.com/relaygate/relaygate/internal/rules"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	jwtManager, err := auth.NewJWTManager(&config.SecurityConfig{
		JWTSecret:      "a-very-long-signing-secret-value",
		SessionTimeout: time.Hour,
	})
	if err != nil {
		t.Fatalf("new jwt manager: %v", err)
	}

	authMW := auth.NewMiddleware(jwtManager)
	authHandlers := auth.NewHandlers(jwtManager, "correct-password")
	handlers := NewHandlers(rules.NewStore(), rules.NewChannels([]string{"s1"}), []string{"s1"})

	router := NewRouter(NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true}), authMW, authHandlers, handlers)
	return router.Setup()
}

func TestRouter_RulesRequiresAuth(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/rules", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRouter_GetTokenThenRules(t *testing.T) {
	r := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{"password": "correct-password"})
	tokenReq := httptest.NewRequest(http.MethodPost, "/get_token", bytes.NewReader(body))
	tokenW := httptest.NewRecorder()
	r.ServeHTTP(tokenW, tokenReq)

	if tokenW.Code != http.StatusOK {
		t.Fatalf("get_token status = %d, want 200", tokenW.Code)
	}

	var cookie *http.Cookie
	for _, c := range tokenW.Result().Cookies() {
		if c.Name == "authToken" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected authToken cookie to be set")
	}

	rulesReq := httptest.NewRequest(http.MethodGet, "/rules", nil)
	rulesReq.AddCookie(cookie)
	rulesW := httptest.NewRecorder()
	r.ServeHTTP(rulesW, rulesReq)

	if rulesW.Code != http.StatusOK {
		t.Fatalf("rules status = %d, want 200", rulesW.Code)
	}
}

func TestRouter_GetTokenWrongPassword(t *testing.T) {
	r := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{"password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/get_token", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRouter_FrontServesLoginWhenUnauthenticated(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/front", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("login")) {
		t.Fatalf("expected login page content, got %s", w.Body.String())
	}
}
