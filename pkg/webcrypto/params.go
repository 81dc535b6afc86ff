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
	"github.com/go-jose/go-jose/v4"
)

// AlgorithmParams is implemented by every parameter structure. It exposes
// the algorithm name the caller asked for.
type AlgorithmParams interface {
	AlgorithmName() string
}

// Algorithm identifies an algorithm by name.
type Algorithm struct {
	Name string `json:"name"`
}

// AlgorithmName implements AlgorithmParams.
func (a Algorithm) AlgorithmName() string {
	return a.Name
}

// RsaHashedKeyGenParams is passed to GenerateKey for the RSA families.
type RsaHashedKeyGenParams struct {
	Algorithm

	// ModulusLength is the modulus size in bits: 1024, 2048 or 4096.
	ModulusLength int `json:"modulusLength"`

	// PublicExponent is big-endian, either {3} or {1, 0, 1}.
	PublicExponent []byte `json:"publicExponent"`

	// Hash names the digest bound to the key.
	Hash Algorithm `json:"hash"`
}

// RsaHashedImportParams is passed to ImportKey (and as the unwrapped key
// algorithm to UnwrapKey) for the RSA families.
type RsaHashedImportParams struct {
	Algorithm

	Hash Algorithm `json:"hash"`
}

// RsaPssParams is passed to Sign and Verify for RSA-PSS.
type RsaPssParams struct {
	Algorithm

	// SaltLength in bytes. Must be set and a multiple of 8.
	SaltLength int `json:"saltLength"`
}

// RsaOaepParams is passed to Encrypt, Decrypt, WrapKey and UnwrapKey for
// RSA-OAEP.
type RsaOaepParams struct {
	Algorithm

	// Label is optional data bound to the ciphertext.
	Label []byte `json:"label,omitempty"`
}

// RsaHashedKeyAlgorithm describes the algorithm a provider bound to an RSA key.
type RsaHashedKeyAlgorithm struct {
	Algorithm

	ModulusLength  int       `json:"modulusLength"`
	PublicExponent []byte    `json:"publicExponent"`
	Hash           Algorithm `json:"hash"`
}

// CryptoKey is a key handle owned by the provider. Validation only reads it.
type CryptoKey struct {
	// ID is assigned by the provider.
	ID string `json:"id,omitempty"`

	Type        KeyType         `json:"type"`
	Extractable bool            `json:"extractable"`
	Algorithm   AlgorithmParams `json:"algorithm"`
	Usages      []KeyUsage      `json:"usages"`

	// Handle is the provider's key material. Never inspected here.
	Handle any `json:"-" yaml:"-"`
}

// AlgorithmName returns the name of the bound algorithm, or "".
func (k *CryptoKey) AlgorithmName() string {
	if k == nil || isNilParams(k.Algorithm) {
		return ""
	}
	return k.Algorithm.AlgorithmName()
}

// HasUsage reports whether the key declares usage u.
func (k *CryptoKey) HasUsage(u KeyUsage) bool {
	if k == nil {
		return false
	}
	for _, usage := range k.Usages {
		if usage.Equals(string(u)) {
			return true
		}
	}
	return false
}

// CryptoKeyPair is returned by GenerateKey for asymmetric families.
type CryptoKeyPair struct {
	PublicKey  *CryptoKey `json:"publicKey"`
	PrivateKey *CryptoKey `json:"privateKey"`
}

// KeyData carries serialized key material. Bytes is used for raw, pkcs8
// and spki; JWK for the jwk format.
type KeyData struct {
	Bytes []byte           `json:"bytes,omitempty"`
	JWK   *jose.JSONWebKey `json:"jwk,omitempty"`
}
