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

// Package webcrypto validates WebCrypto requests for the RSA algorithm
// families before they reach a cryptographic provider.
//
// Each family validator (RSASSA, RSAPSS, RSAOAEP) exposes the WebCrypto
// verbs. A verb runs a fixed, fail-fast sequence of checks: algorithm
// identity, algorithm parameters, key shape and usages, then format. The
// first failing check returns an *Error and the provider is never called.
// When every check passes the request is handed to the Provider unchanged
// and its result is returned as-is.
//
//	registry, err := webcrypto.NewRegistry(&webcrypto.Config{Provider: p})
//	signer, err := registry.Signer("RSA-PSS")
//	sig, err := signer.Sign(ctx, &webcrypto.RsaPssParams{
//	    Algorithm:  webcrypto.Algorithm{Name: "RSA-PSS"},
//	    SaltLength: 32,
//	}, key, data)
//
// Errors carry a Kind with a stable numeric code and match the exported
// sentinels with errors.Is:
//
//	if errors.Is(err, webcrypto.ErrParamWrongValue) { ... }
package webcrypto
