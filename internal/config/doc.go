// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

/*
Package config provides layered configuration loading for Relaygate via
Koanf v2.

# Configuration Sources

Configuration is assembled in three layers, each overriding the last:

  1. Built-in defaults (server bind address, session timeout, log format)
  2. config.yml (required): the service list — service_name/from/to triples
  3. Environment variables (required for AUTH_PASSWORD and JWT_SECRET)

An optional .env file is loaded before the environment layer, tolerating
its absence.

# Example

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	for _, svc := range cfg.Proxy.Services {
	    // svc.ServiceName, svc.From, svc.To
	}
*/
package config
