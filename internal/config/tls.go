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
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// LoadTLSConfig builds a tls.Config for the REST listener. It returns nil
// when TLS is disabled.
func (cfg *TLSConfig) LoadTLSConfig() (*tls.Config, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load server certificate: %w", err)
	}

	// #nosec G402 - MinVersion defaults to TLS 1.2
	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   parseTLSVersion(cfg.MinVersion),
	}

	clientAuth, err := parseClientAuthType(cfg.ClientAuth)
	if err != nil {
		return nil, fmt.Errorf("invalid client_auth value: %w", err)
	}
	tlsConfig.ClientAuth = clientAuth

	if clientAuth != tls.NoClientCert && cfg.CAFile != "" {
		pool, err := loadCertPool(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load client CA certificates: %w", err)
		}
		tlsConfig.ClientCAs = pool
	}

	return tlsConfig, nil
}

func parseTLSVersion(version string) uint16 {
	if version == "TLS1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}

func parseClientAuthType(authType string) (tls.ClientAuthType, error) {
	switch authType {
	case "none", "":
		return tls.NoClientCert, nil
	case "request":
		return tls.RequestClientCert, nil
	case "require":
		return tls.RequireAnyClientCert, nil
	case "verify":
		return tls.VerifyClientCertIfGiven, nil
	case "require_and_verify":
		return tls.RequireAndVerifyClientCert, nil
	default:
		return tls.NoClientCert, fmt.Errorf("unknown client auth type: %s", authType)
	}
}

func loadCertPool(caFile string) (*x509.CertPool, error) {
	// #nosec G304 - CA file path from trusted config
	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA file %s: %w", caFile, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("failed to parse CA certificate from %s", caFile)
	}
	return pool, nil
}
