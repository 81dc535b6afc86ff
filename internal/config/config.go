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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, with "." in the
// key replaced by "_": WEBCRYPTO_SERVER_PORT overrides server.port.
const EnvPrefix = "WEBCRYPTO"

// Config represents the complete service configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	TLS       TLSConfig       `mapstructure:"tls" yaml:"tls"`
	Metrics   MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit" yaml:"ratelimit"`
}

// ServerConfig contains listener settings
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" validate:"gt=0"`

	// MaxRequestBytes bounds the size of a request document.
	MaxRequestBytes int64 `mapstructure:"max_request_bytes" yaml:"max_request_bytes" validate:"gt=0"`
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

// TLSConfig controls TLS settings for the REST listener
type TLSConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	CertFile   string `mapstructure:"cert_file" yaml:"cert_file" validate:"required_if=Enabled true"`
	KeyFile    string `mapstructure:"key_file" yaml:"key_file" validate:"required_if=Enabled true"`
	CAFile     string `mapstructure:"ca_file" yaml:"ca_file"`
	ClientAuth string `mapstructure:"client_auth" yaml:"client_auth" validate:"omitempty,oneof=none request require verify require_and_verify"`
	MinVersion string `mapstructure:"min_version" yaml:"min_version" validate:"omitempty,oneof=TLS1.2 TLS1.3"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path" validate:"startswith=/"`
}

// RateLimitConfig controls per-client rate limiting
type RateLimitConfig struct {
	Enabled        bool `mapstructure:"enabled" yaml:"enabled"`
	RequestsPerMin int  `mapstructure:"requests_per_min" yaml:"requests_per_min" validate:"required_if=Enabled true,gte=0"`
	Burst          int  `mapstructure:"burst" yaml:"burst" validate:"gte=0"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8443,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxRequestBytes: 1 << 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		TLS: TLSConfig{
			ClientAuth: "none",
			MinVersion: "TLS1.2",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		RateLimit: RateLimitConfig{
			Enabled:        false,
			RequestsPerMin: 600,
			Burst:          50,
		},
	}
}

// Load reads configuration from a YAML file, applies WEBCRYPTO_*
// environment overrides and validates the result. An empty path loads the
// defaults plus environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// are absent from the file.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.max_request_bytes", d.Server.MaxRequestBytes)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)

	v.SetDefault("tls.enabled", d.TLS.Enabled)
	v.SetDefault("tls.cert_file", d.TLS.CertFile)
	v.SetDefault("tls.key_file", d.TLS.KeyFile)
	v.SetDefault("tls.ca_file", d.TLS.CAFile)
	v.SetDefault("tls.client_auth", d.TLS.ClientAuth)
	v.SetDefault("tls.min_version", d.TLS.MinVersion)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)

	v.SetDefault("ratelimit.enabled", d.RateLimit.Enabled)
	v.SetDefault("ratelimit.requests_per_min", d.RateLimit.RequestsPerMin)
	v.SetDefault("ratelimit.burst", d.RateLimit.Burst)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validate := validator.New()

	err := validate.Struct(c)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			messages := make([]string, 0, len(validationErrors))
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("%s: failed '%s' check", fieldErr.Namespace(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
		}
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

// Address returns the host:port the server listens on.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
