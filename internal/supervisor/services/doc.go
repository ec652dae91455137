// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

/*
Package services provides suture.Service wrappers for Relaygate's
ListenAndServe-style components.

# Overview

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# HTTPServerService

Wraps *http.Server with graceful shutdown, converting its blocking
ListenAndServe pattern into suture's context-aware Serve:

	func setupSupervisor(server *http.Server) {
	    tree, _ := supervisor.NewSupervisorTree(logger, config)

	    httpSvc := services.NewHTTPServerService(server, 30*time.Second)
	    tree.AddControlService(httpSvc)

	    tree.Serve(ctx)
	}

On context cancellation it calls server.Shutdown with the configured
timeout and waits for the ListenAndServe goroutine to return.
http.ErrServerClosed is treated as a clean stop, not a failure.

# Error Handling

	nil         -> Service stopped cleanly, will not restart
	error       -> Service crashed, supervisor will restart
	ctx.Err()   -> Shutdown requested, normal termination

# Service Identification

HTTPServerService implements fmt.Stringer ("control-api") for suture's log
messages.

# See Also

  - internal/supervisor: SupervisorTree that manages these services
  - github.com/thejerf/suture/v4: Underlying supervision library
  - internal/proxy: Worker, the other suture.Service in this repo
*/
package services
