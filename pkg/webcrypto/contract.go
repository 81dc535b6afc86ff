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

package webcrypto

import (
	"fmt"
	"strings"
)

// The base algorithm contract. Every family validator composes these
// checks; all of them are pure functions of their inputs.

var (
	allFormats     = []KeyFormat{FormatRaw, FormatPKCS8, FormatSPKI, FormatJWK}
	privateFormats = []KeyFormat{FormatPKCS8, FormatJWK}
	publicFormats  = []KeyFormat{FormatSPKI, FormatJWK}
	secretFormats  = []KeyFormat{FormatRaw, FormatJWK}
)

// CheckAlgorithmName verifies alg names expected, ignoring case.
func CheckAlgorithmName(alg AlgorithmParams, expected AlgorithmName) error {
	if isNilParams(alg) {
		return ParamRequired("algorithm")
	}
	if !expected.Equals(alg.AlgorithmName()) {
		return WrongAlgorithmName(alg.AlgorithmName(), string(expected))
	}
	return nil
}

// CheckKeyUsages rejects an empty usage list and case-insensitive duplicates.
func CheckKeyUsages(requested []string) error {
	if len(requested) == 0 {
		return ValidationFailure("key usages must not be empty")
	}
	seen := make(map[string]struct{}, len(requested))
	for _, usage := range requested {
		normalized := strings.ToLower(usage)
		if _, ok := seen[normalized]; ok {
			return ValidationFailure(fmt.Sprintf("duplicate key usage '%s'", usage))
		}
		seen[normalized] = struct{}{}
	}
	return nil
}

// CheckKeyUsageAllowed verifies every requested usage is in allowed. Only
// the first mismatch is reported.
func CheckKeyUsageAllowed(requested []string, allowed []KeyUsage) error {
	for _, usage := range requested {
		if !containsUsage(allowed, usage) {
			return UnsupportedKeyUsage(usage, allowed)
		}
	}
	return nil
}

// CheckKey verifies the key is bound to expected. An empty keyType or
// usage skips that part of the check.
func CheckKey(key *CryptoKey, expected AlgorithmName, keyType KeyType, usage KeyUsage) error {
	if key == nil {
		return KeyRequired("key")
	}
	if !expected.Equals(key.AlgorithmName()) {
		return WrongKeyAlgorithm(key.AlgorithmName(), string(expected))
	}
	if keyType != "" && key.Type != keyType {
		return WrongKeyType(key.Type, keyType)
	}
	if usage != "" && !key.HasUsage(usage) {
		return WrongKeyUsage(usage)
	}
	return nil
}

// CheckFormat verifies format is known and, when keyType is set, legal for
// that type of key.
func CheckFormat(format string, keyType KeyType) error {
	f := ParseKeyFormat(format)
	if f == "" {
		return DisallowedFormat(format, allFormats)
	}

	var allowed []KeyFormat
	switch keyType {
	case KeyTypePrivate:
		allowed = privateFormats
	case KeyTypePublic:
		allowed = publicFormats
	case KeyTypeSecret:
		allowed = secretFormats
	default:
		return nil
	}
	for _, a := range allowed {
		if a == f {
			return nil
		}
	}
	return DisallowedFormat(format, allowed)
}

// CheckWrappedKey verifies the payload of a wrap operation is present.
func CheckWrappedKey(key *CryptoKey) error {
	if key == nil {
		return KeyRequired("key")
	}
	return nil
}

// isNilParams catches both a nil interface and a typed nil pointer.
func isNilParams(alg AlgorithmParams) bool {
	switch p := alg.(type) {
	case nil:
		return true
	case *Algorithm:
		return p == nil
	case *RsaHashedKeyGenParams:
		return p == nil
	case *RsaHashedImportParams:
		return p == nil
	case *RsaPssParams:
		return p == nil
	case *RsaOaepParams:
		return p == nil
	case *RsaHashedKeyAlgorithm:
		return p == nil
	}
	return false
}

func containsUsage(allowed []KeyUsage, usage string) bool {
	for _, a := range allowed {
		if a.Equals(usage) {
			return true
		}
	}
	return false
}

// normalizeUsages maps checked usage strings to their canonical form.
// Callers must run CheckKeyUsageAllowed first; unknown entries are kept
// verbatim.
func normalizeUsages(requested []string) []KeyUsage {
	out := make([]KeyUsage, len(requested))
	for i, u := range requested {
		if parsed := ParseKeyUsage(u); parsed != "" {
			out[i] = parsed
		} else {
			out[i] = KeyUsage(u)
		}
	}
	return out
}
