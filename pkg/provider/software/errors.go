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

package software

import "errors"

var (
	// ErrUnsupportedExponent is returned when key generation asks for a
	// public exponent other than 65537.
	ErrUnsupportedExponent = errors.New("software: unsupported public exponent")

	// ErrUnsupportedAlgorithm is returned for key algorithms outside the RSA
	// families.
	ErrUnsupportedAlgorithm = errors.New("software: unsupported algorithm")

	// ErrUnsupportedFormat is returned when a format cannot carry the key.
	ErrUnsupportedFormat = errors.New("software: unsupported key format")

	// ErrNotExtractable is returned when exporting or wrapping a key that
	// was created non-extractable.
	ErrNotExtractable = errors.New("software: key is not extractable")

	// ErrInvalidKeyHandle is returned when a CryptoKey was not produced by
	// this provider.
	ErrInvalidKeyHandle = errors.New("software: invalid key handle")

	// ErrEmptyUsages is returned when a private key would end up with no
	// usages.
	ErrEmptyUsages = errors.New("software: private key requires at least one usage")

	// ErrJWKAlgorithmMismatch is returned when an imported JWK declares an
	// "alg" that disagrees with the requested algorithm and hash.
	ErrJWKAlgorithmMismatch = errors.New("software: jwk alg does not match algorithm")
)
