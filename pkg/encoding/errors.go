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

// Package encoding serializes RSA key material in the WebCrypto export
// formats: pkcs8 (private), spki (public) and jwk (either).
package encoding

import "errors"

var (
	// ErrInvalidPrivateKey is returned when a private key is nil or invalid
	ErrInvalidPrivateKey = errors.New("encoding: invalid private key")

	// ErrInvalidPublicKey is returned when a public key is nil or invalid
	ErrInvalidPublicKey = errors.New("encoding: invalid public key")

	// ErrInvalidData is returned when data is nil, empty, or malformed
	ErrInvalidData = errors.New("encoding: invalid data")

	// ErrInvalidPassword is returned when a password is incorrect
	ErrInvalidPassword = errors.New("encoding: invalid password")

	// ErrNotRSA is returned when decoded key material is not an RSA key
	ErrNotRSA = errors.New("encoding: key is not RSA")
)
