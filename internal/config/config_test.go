// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-webcrypto.
//
// go-webcrypto is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
}

func TestLoad_Success(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9443
  read_timeout: 5s
logging:
  level: debug
  format: json
metrics:
  enabled: false
ratelimit:
  enabled: true
  requests_per_min: 120
  burst: 10
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %s, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Server.Port != 9443 {
		t.Errorf("Server.Port = %d, want 9443", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != Default().Server.WriteTimeout {
		t.Errorf("Server.WriteTimeout = %v, want default", cfg.Server.WriteTimeout)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want debug/json", cfg.Logging)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = true, want false")
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %s, want default /metrics", cfg.Metrics.Path)
	}
	if !cfg.RateLimit.Enabled || cfg.RateLimit.RequestsPerMin != 120 || cfg.RateLimit.Burst != 10 {
		t.Errorf("RateLimit = %+v", cfg.RateLimit)
	}
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != Default().Server.Port {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, Default().Server.Port)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [unterminated")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for invalid YAML")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: verbose
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() expected validation error")
	}
	if !strings.Contains(err.Error(), "Config.Logging.Level") {
		t.Errorf("error should name the field: %v", err)
	}
}

func TestLoad_WithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9443
`)
	t.Setenv("WEBCRYPTO_SERVER_PORT", "9555")
	t.Setenv("WEBCRYPTO_LOGGING_LEVEL", "warn")
	t.Setenv("WEBCRYPTO_RATELIMIT_ENABLED", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9555 {
		t.Errorf("Server.Port = %d, want 9555 from env", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %s, want warn from env", cfg.Logging.Level)
	}
	if !cfg.RateLimit.Enabled {
		t.Error("RateLimit.Enabled = false, want true from env")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, true},
		{"zero max request", func(c *Config) { c.Server.MaxRequestBytes = 0 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "fatal" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "console" }, true},
		{"tls without cert", func(c *Config) { c.TLS.Enabled = true }, true},
		{"tls with files", func(c *Config) {
			c.TLS.Enabled = true
			c.TLS.CertFile = "cert.pem"
			c.TLS.KeyFile = "key.pem"
		}, false},
		{"bad client auth", func(c *Config) { c.TLS.ClientAuth = "always" }, true},
		{"bad tls version", func(c *Config) { c.TLS.MinVersion = "TLS1.0" }, true},
		{"metrics path without slash", func(c *Config) { c.Metrics.Path = "metrics" }, true},
		{"ratelimit without rate", func(c *Config) {
			c.RateLimit.Enabled = true
			c.RateLimit.RequestsPerMin = 0
		}, true},
		{"negative burst", func(c *Config) { c.RateLimit.Burst = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfig_Address(t *testing.T) {
	cfg := ServerConfig{Host: "localhost", Port: 8080}
	if got := cfg.Address(); got != "localhost:8080" {
		t.Errorf("Address() = %s, want localhost:8080", got)
	}
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	data, err := yaml.Marshal(Default())
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	cfg, err := Load(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server != Default().Server {
		t.Errorf("Server = %+v, want %+v", cfg.Server, Default().Server)
	}
}
