// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from the config file and
// environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in sensible defaults for all optional settings
//  2. Config File: required YAML config file (config.yml) describing services
//  3. Environment Variables: override any setting, required for secrets
//
// Thread Safety: Config is immutable after Load() and safe for concurrent
// read access from multiple goroutines.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Proxy    ProxyConfig    `koanf:"proxy"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP control-API server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// ProxyConfig holds the set of configured proxy services. The service set is
// fixed for the lifetime of the process: it is read once at startup and never
// reloaded.
type ProxyConfig struct {
	Services []ServiceConfig `koanf:"services"`
}

// ServiceConfig describes a single (listen, upstream) pair. ServiceName must
// be unique across the configured set; it is used as the key for both the
// rule table's service_name column and the update-channel map.
type ServiceConfig struct {
	ServiceName string `koanf:"service_name"`
	From        string `koanf:"from"`
	To          string `koanf:"to"`
}

// SecurityConfig holds authentication settings for the control API.
//
// AuthPassword and JWTSecret have no built-in default. They are normally
// supplied through the environment (AUTH_PASSWORD, JWT_SECRET), which
// overrides any value set under security in the config file, matching the
// original service's reliance on process environment for credentials.
type SecurityConfig struct {
	AuthPassword   string        `koanf:"auth_password"`
	JWTSecret      string        `koanf:"jwt_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`
	CORSOrigins    []string      `koanf:"cors_origins"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ServiceNames returns the configured service names in declaration order.
func (c *Config) ServiceNames() []string {
	names := make([]string, len(c.Proxy.Services))
	for i, svc := range c.Proxy.Services {
		names[i] = svc.ServiceName
	}
	return names
}

// Validate checks that the loaded configuration is internally consistent.
// It is called automatically by Load(); callers assembling a Config by hand
// (e.g. in tests) should call it explicitly.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if len(c.Proxy.Services) == 0 {
		return fmt.Errorf("proxy.services must declare at least one service")
	}

	seen := make(map[string]struct{}, len(c.Proxy.Services))
	for i, svc := range c.Proxy.Services {
		if svc.ServiceName == "" {
			return fmt.Errorf("proxy.services[%d]: service_name is required", i)
		}
		if _, dup := seen[svc.ServiceName]; dup {
			return fmt.Errorf("proxy.services: duplicate service_name %q", svc.ServiceName)
		}
		seen[svc.ServiceName] = struct{}{}

		if svc.From == "" {
			return fmt.Errorf("proxy.services[%s]: from is required", svc.ServiceName)
		}
		if svc.To == "" {
			return fmt.Errorf("proxy.services[%s]: to is required", svc.ServiceName)
		}
	}

	if c.Security.JWTSecret == "" {
		return fmt.Errorf("security.jwt_secret (JWT_SECRET) is required")
	}
	if c.Security.AuthPassword == "" {
		return fmt.Errorf("security.auth_password (AUTH_PASSWORD) is required")
	}

	return nil
}
