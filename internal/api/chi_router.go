// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/relaygate/relaygate/internal/auth"
	"github.com/relaygate/relaygate/internal/middleware"
)

// Router assembles the control-plane HTTP handler: authentication, rule
// and service endpoints, the home page, and the Prometheus exposition
// endpoint.
type Router struct {
	chiMiddleware *ChiMiddleware
	authMW        *auth.Middleware
	authHandlers  *auth.Handlers
	handlers      *Handlers
}

// NewRouter builds a Router from its constituent pieces.
func NewRouter(chiMiddleware *ChiMiddleware, authMW *auth.Middleware, authHandlers *auth.Handlers, handlers *Handlers) *Router {
	return &Router{
		chiMiddleware: chiMiddleware,
		authMW:        authMW,
		authHandlers:  authHandlers,
		handlers:      handlers,
	}
}

// chiAdapt adapts an http.HandlerFunc middleware to chi's
// func(http.Handler) http.Handler, used for the Prometheus instrumentation
// helper that predates the chi-native middleware factories.
func chiAdapt(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Setup builds the complete chi.Router for the control plane.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(APISecurityHeaders())
	r.Use(chiAdapt(middleware.PrometheusMetrics))
	r.Use(router.authMW.ExtractToken)

	r.With(router.chiMiddleware.RateLimitAuth()).Post("/get_token", router.authHandlers.GetToken)
	r.Get("/front", router.handlers.Front)

	r.With(router.chiMiddleware.RateLimitHealth()).Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(router.authMW.ProtectAPI)

		r.With(router.chiMiddleware.RateLimitAPI()).Get("/rules", router.handlers.ListRules)
		r.With(router.chiMiddleware.RateLimitAPI()).Get("/rules/filter/{service_name}", router.handlers.ListRulesByService)
		r.With(router.chiMiddleware.RateLimitAPI()).Get("/services", router.handlers.ListServices)
		r.With(router.chiMiddleware.RateLimitWrite()).Post("/rules", router.handlers.CreateRule)
		r.With(router.chiMiddleware.RateLimitWrite()).Delete("/rules/{id}", router.handlers.DeleteRule)
	})

	return r
}
