// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `
server:
  host: 0.0.0.0
  port: 8443
proxy:
  services:
    - service_name: s1
      from: 127.0.0.1:9001
      to: 127.0.0.1:9101
    - service_name: s2
      from: 127.0.0.1:9002
      to: 127.0.0.1:9102
`

func withConfigFile(t *testing.T, contents string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
}

func TestLoad_FromFileAndEnv(t *testing.T) {
	withConfigFile(t, sampleConfig)
	t.Setenv("AUTH_PASSWORD", "hunter2")
	t.Setenv("JWT_SECRET", "a-very-long-signing-secret-value")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8443 {
		t.Errorf("expected port 8443, got %d", cfg.Server.Port)
	}
	if names := cfg.ServiceNames(); len(names) != 2 || names[0] != "s1" || names[1] != "s2" {
		t.Errorf("unexpected service names: %v", names)
	}
	if cfg.Security.AuthPassword != "hunter2" {
		t.Errorf("expected auth_password from env, got %q", cfg.Security.AuthPassword)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "does-not-exist.yml"))
	t.Setenv("AUTH_PASSWORD", "hunter2")
	t.Setenv("JWT_SECRET", "a-very-long-signing-secret-value")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_MissingSecrets(t *testing.T) {
	withConfigFile(t, sampleConfig)

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for missing secrets")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	cases := map[string]string{
		"AUTH_PASSWORD": "security.auth_password",
		"JWT_SECRET":    "security.jwt_secret",
		"LOG_LEVEL":     "logging.level",
		"UNKNOWN_VAR":   "",
	}
	for env, want := range cases {
		if got := envTransformFunc(env); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", env, got, want)
		}
	}
}
