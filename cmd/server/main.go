// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

// Package main is the entry point for the Relaygate server.
//
// # Application Architecture
//
// The process initializes, in order:
//
//  1. Configuration: layered load via Koanf v2 (defaults, config.yml, environment)
//  2. Logging: zerolog, configured from the loaded Logging section
//  3. The rule store and per-service update channels
//  4. A two-layer suture supervisor tree: a data-plane proxy Worker per
//     configured service, and a control-plane HTTP server
//
// # Configuration
//
//	AUTH_PASSWORD and JWT_SECRET have no default and are normally supplied
//	through the environment; every setting may be set in config.yml and
//	overridden by environment variables (see internal/config).
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the supervisor tree is
// asked to stop, each worker's listener closes, and each worker's in-flight
// connections are closed as its context is canceled; the control API server
// is given the configured shutdown timeout to finish its requests.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/relaygate/relaygate/internal/api"
	"github.com/relaygate/relaygate/internal/auth"
	"github.com/relaygate/relaygate/internal/config"
	"github.com/relaygate/relaygate/internal/logging"
	"github.com/relaygate/relaygate/internal/proxy"
	"github.com/relaygate/relaygate/internal/rules"
	"github.com/relaygate/relaygate/internal/supervisor"
	"github.com/relaygate/relaygate/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Int("services", len(cfg.Proxy.Services)).Msg("starting relaygate")

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize JWT manager")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slogLogger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create supervisor tree")
	}

	serviceNames := cfg.ServiceNames()
	channels := rules.NewChannels(serviceNames)
	store := rules.NewStore()

	for _, svc := range cfg.Proxy.Services {
		worker := proxy.NewWorker(svc, channels[svc.ServiceName])
		tree.AddDataService(worker)
		logging.Info().
			Str("service", svc.ServiceName).
			Str("from", svc.From).
			Str("to", svc.To).
			Msg("proxy worker added to supervisor tree")
	}

	authMW := auth.NewMiddleware(jwtManager)
	authHandlers := auth.NewHandlers(jwtManager, cfg.Security.AuthPassword)
	apiHandlers := api.NewHandlers(store, channels, serviceNames)
	chiMiddleware := api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins:   cfg.Security.CORSOrigins,
		CORSAllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		CORSAllowedHeaders:   []string{"Content-Type", "Authorization"},
		CORSAllowCredentials: true,
		CORSMaxAge:           86400,
	})
	router := api.NewRouter(chiMiddleware, authMW, authHandlers, apiHandlers)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	tree.AddControlService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("control API server added to supervisor tree")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("service failed to stop")
		}
	}

	logging.Info().Msg("relaygate stopped gracefully")
}
