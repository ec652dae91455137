// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/relaygate/relaygate/internal/config"
)

func testJWTManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&config.SecurityConfig{
		JWTSecret:      "a-very-long-signing-secret-value-for-tests",
		SessionTimeout: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return m
}

func TestGetToken_Success(t *testing.T) {
	h := NewHandlers(testJWTManager(t), "hunter2")

	req := httptest.NewRequest(http.MethodPost, "/get_token", strings.NewReader(`{"password":"hunter2"}`))
	rec := httptest.NewRecorder()

	h.GetToken(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("expected a single %s cookie, got %v", CookieName, cookies)
	}
	if cookies[0].Value == "" {
		t.Error("expected non-empty cookie value")
	}
}

func TestGetToken_WrongPassword(t *testing.T) {
	h := NewHandlers(testJWTManager(t), "hunter2")

	req := httptest.NewRequest(http.MethodPost, "/get_token", strings.NewReader(`{"password":"wrong"}`))
	rec := httptest.NewRecorder()

	h.GetToken(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("expected no cookie on failed login")
	}
}

func TestGetToken_MalformedBody(t *testing.T) {
	h := NewHandlers(testJWTManager(t), "hunter2")

	req := httptest.NewRequest(http.MethodPost, "/get_token", strings.NewReader(`not json`))
	rec := httptest.NewRecorder()

	h.GetToken(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestExtractTokenAndProtectAPI(t *testing.T) {
	jwtManager := testJWTManager(t)
	mw := NewMiddleware(jwtManager)

	var sawIdentity string
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawIdentity = Identity(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := mw.ExtractToken(mw.ProtectAPI(final))

	t.Run("no cookie is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/rules", nil)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid cookie is accepted", func(t *testing.T) {
		token, err := jwtManager.GenerateToken()
		if err != nil {
			t.Fatalf("GenerateToken() error = %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/rules", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if sawIdentity != Principal {
			t.Errorf("identity = %q, want %q", sawIdentity, Principal)
		}
	})

	t.Run("invalid cookie is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/rules", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})
}

func TestExtractTokenWithoutProtect(t *testing.T) {
	jwtManager := testJWTManager(t)
	mw := NewMiddleware(jwtManager)

	var sawIdentity string
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawIdentity = Identity(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := mw.ExtractToken(final)

	req := httptest.NewRequest(http.MethodGet, "/front", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if sawIdentity != "" {
		t.Errorf("expected no identity without a cookie, got %q", sawIdentity)
	}
}
