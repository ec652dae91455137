// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

/*
Package supervisor provides process supervision for Relaygate using suture v4.

It implements a two-layer supervisor tree that manages the lifetime of every
long-running service in the proxy, with Erlang/OTP-style automatic restart,
failure isolation, and graceful shutdown.

# Overview

	RootSupervisor ("relaygate")
	├── DataSupervisor ("data-plane")
	│   └── one proxy.Worker per configured service
	└── ControlSupervisor ("control-plane")
	    └── HTTPServerService (rules/services/auth/metrics API)

A crash in one proxy worker's accept loop is isolated to the data-plane
supervisor and does not affect the control API, and a control API crash does
not interrupt in-flight relays.

# Usage

	logger := slog.Default()
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    log.Fatal(err)
	}

	for _, w := range workers {
	    tree.AddDataService(w)
	}
	tree.AddControlService(services.NewHTTPServerService(server, 10*time.Second))

	if err := tree.Serve(ctx); err != nil {
	    log.Printf("supervisor stopped: %v", err)
	}

# Configuration

TreeConfig controls restart behavior; DefaultTreeConfig mirrors suture's own
production defaults (5 failures / 30s decay / 15s backoff / 10s shutdown).

# Service interface

Every supervised component implements suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Returning nil stops the service permanently; returning a non-nil error
(other than from context cancellation) triggers a restart.
*/
package supervisor
