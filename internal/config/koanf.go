// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where the service config file is
// searched, in order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yml",
	"config.yaml",
	"/etc/relaygate/config.yml",
	"/etc/relaygate/config.yaml",
}

// ConfigPathEnvVar overrides the config file search with an explicit path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPath is the optional dotenv file loaded before the environment
// provider reads the process environment. Absence is tolerated.
const DotEnvPath = ".env"

// defaultConfig returns a Config with sensible defaults for everything
// except the service list and the two secrets, which have no safe default.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            1234,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			SessionTimeout: 24 * time.Hour,
			CORSOrigins:    []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// envMappings maps flat environment variable names to koanf's dotted config
// paths. Anything not listed here is ignored by the env provider.
var envMappings = map[string]string{
	"HTTP_HOST":        "server.host",
	"HTTP_PORT":        "server.port",
	"SHUTDOWN_TIMEOUT": "server.shutdown_timeout",
	"AUTH_PASSWORD":    "security.auth_password",
	"JWT_SECRET":       "security.jwt_secret",
	"SESSION_TIMEOUT":  "security.session_timeout",
	"CORS_ORIGINS":     "security.cors_origins",
	"LOG_LEVEL":        "logging.level",
	"LOG_FORMAT":       "logging.format",
	"LOG_CALLER":       "logging.caller",
}

func envTransformFunc(key string) string {
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}

// sliceConfigPaths lists config paths that should be parsed as
// comma-separated lists when they arrive as a single string from the
// environment provider.
var sliceConfigPaths = []string{"security.cors_origins"}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// Load reads configuration from defaults, the service config file, and the
// environment, in that priority order, and validates the result.
//
// An optional .env file is loaded first (absence tolerated) so that
// AUTH_PASSWORD and JWT_SECRET can be supplied without exporting them into
// the parent shell, matching the original service's reliance on dotenv.
func Load() (*Config, error) {
	if err := godotenv.Load(DotEnvPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load %s: %w", DotEnvPath, err)
	}

	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath := findConfigFile()
	if configPath == "" {
		return nil, fmt.Errorf("no config file found in %v (set %s to override)", DefaultConfigPaths, ConfigPathEnvVar)
	}
	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths, honoring
// CONFIG_PATH if set.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
