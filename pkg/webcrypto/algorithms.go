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
	"crypto"
	"strings"

	"github.com/go-jose/go-jose/v4"
)

// =============================================================================
// Algorithm Names
// =============================================================================

// AlgorithmName identifies a registered algorithm. Comparisons are
// case-insensitive.
type AlgorithmName string

const (
	AlgorithmRSASSA  AlgorithmName = "RSASSA-PKCS1-v1_5"
	AlgorithmRSAPSS  AlgorithmName = "RSA-PSS"
	AlgorithmRSAOAEP AlgorithmName = "RSA-OAEP"

	AlgorithmAESCTR  AlgorithmName = "AES-CTR"
	AlgorithmAESCMAC AlgorithmName = "AES-CMAC"
	AlgorithmAESGCM  AlgorithmName = "AES-GCM"
	AlgorithmAESCBC  AlgorithmName = "AES-CBC"
	AlgorithmAESKW   AlgorithmName = "AES-KW"

	AlgorithmECDSA  AlgorithmName = "ECDSA"
	AlgorithmECDH   AlgorithmName = "ECDH"
	AlgorithmHMAC   AlgorithmName = "HMAC"
	AlgorithmPBKDF2 AlgorithmName = "PBKDF2"
)

var knownAlgorithms = []AlgorithmName{
	AlgorithmRSASSA, AlgorithmRSAPSS, AlgorithmRSAOAEP,
	AlgorithmAESCTR, AlgorithmAESCMAC, AlgorithmAESGCM, AlgorithmAESCBC, AlgorithmAESKW,
	AlgorithmECDSA, AlgorithmECDH, AlgorithmHMAC, AlgorithmPBKDF2,
}

// String returns the canonical name.
func (a AlgorithmName) String() string {
	return string(a)
}

// Equals performs case-insensitive comparison.
func (a AlgorithmName) Equals(s string) bool {
	return strings.EqualFold(string(a), s)
}

// ParseAlgorithmName returns the canonical form of s, or "" if s names no
// known algorithm. Only case is normalized; surrounding whitespace makes
// the name unknown. Digest names are handled by ParseHashName.
func ParseAlgorithmName(s string) AlgorithmName {
	for _, a := range knownAlgorithms {
		if a.Equals(s) {
			return a
		}
	}
	return ""
}

// =============================================================================
// Hash Names
// =============================================================================

// HashName identifies a digest algorithm nested in RSA parameters.
type HashName string

const (
	HashSHA1   HashName = "SHA-1"
	HashSHA256 HashName = "SHA-256"
	HashSHA384 HashName = "SHA-384"
	HashSHA512 HashName = "SHA-512"
)

// String returns the canonical name.
func (h HashName) String() string {
	return string(h)
}

// Equals performs case-insensitive comparison.
func (h HashName) Equals(s string) bool {
	return strings.EqualFold(string(h), s)
}

// CryptoHash maps the name to the standard library hash, or 0 if unknown.
func (h HashName) CryptoHash() crypto.Hash {
	switch h {
	case HashSHA1:
		return crypto.SHA1
	case HashSHA256:
		return crypto.SHA256
	case HashSHA384:
		return crypto.SHA384
	case HashSHA512:
		return crypto.SHA512
	default:
		return 0
	}
}

// ParseHashName returns the canonical hash name for s, or "". Only the
// hyphenated forms are accepted.
func ParseHashName(s string) HashName {
	switch strings.ToUpper(s) {
	case "SHA-1":
		return HashSHA1
	case "SHA-256":
		return HashSHA256
	case "SHA-384":
		return HashSHA384
	case "SHA-512":
		return HashSHA512
	default:
		return ""
	}
}

// JWA returns the JSON Web Algorithm identifier for an RSA family bound to
// hash h, as written into the "alg" member of an exported JWK.
func JWA(family AlgorithmName, h HashName) string {
	switch family {
	case AlgorithmRSASSA:
		switch h {
		case HashSHA1:
			return "RS1"
		case HashSHA256:
			return string(jose.RS256)
		case HashSHA384:
			return string(jose.RS384)
		case HashSHA512:
			return string(jose.RS512)
		}
	case AlgorithmRSAPSS:
		switch h {
		case HashSHA1:
			return "PS1"
		case HashSHA256:
			return string(jose.PS256)
		case HashSHA384:
			return string(jose.PS384)
		case HashSHA512:
			return string(jose.PS512)
		}
	case AlgorithmRSAOAEP:
		switch h {
		case HashSHA1:
			return string(jose.RSA_OAEP)
		case HashSHA256:
			return string(jose.RSA_OAEP_256)
		case HashSHA384:
			return "RSA-OAEP-384"
		case HashSHA512:
			return "RSA-OAEP-512"
		}
	}
	return ""
}

// =============================================================================
// Key Usages
// =============================================================================

// KeyUsage is a permitted operation declared on a key.
type KeyUsage string

const (
	UsageEncrypt    KeyUsage = "encrypt"
	UsageDecrypt    KeyUsage = "decrypt"
	UsageSign       KeyUsage = "sign"
	UsageVerify     KeyUsage = "verify"
	UsageDeriveKey  KeyUsage = "deriveKey"
	UsageDeriveBits KeyUsage = "deriveBits"
	UsageWrapKey    KeyUsage = "wrapKey"
	UsageUnwrapKey  KeyUsage = "unwrapKey"
)

var knownUsages = []KeyUsage{
	UsageEncrypt, UsageDecrypt, UsageSign, UsageVerify,
	UsageDeriveKey, UsageDeriveBits, UsageWrapKey, UsageUnwrapKey,
}

// String returns the canonical usage.
func (u KeyUsage) String() string {
	return string(u)
}

// Equals performs case-insensitive comparison.
func (u KeyUsage) Equals(s string) bool {
	return strings.EqualFold(string(u), s)
}

// ParseKeyUsage returns the canonical usage for s, or "".
func ParseKeyUsage(s string) KeyUsage {
	for _, u := range knownUsages {
		if u.Equals(s) {
			return u
		}
	}
	return ""
}

// =============================================================================
// Key Formats
// =============================================================================

// KeyFormat is the serialization shape used for import and export.
type KeyFormat string

const (
	FormatRaw   KeyFormat = "raw"
	FormatPKCS8 KeyFormat = "pkcs8"
	FormatSPKI  KeyFormat = "spki"
	FormatJWK   KeyFormat = "jwk"
)

// String returns the canonical format name.
func (f KeyFormat) String() string {
	return string(f)
}

// ParseKeyFormat returns the canonical format for s, or "".
func ParseKeyFormat(s string) KeyFormat {
	switch strings.ToLower(s) {
	case "raw":
		return FormatRaw
	case "pkcs8":
		return FormatPKCS8
	case "spki":
		return FormatSPKI
	case "jwk":
		return FormatJWK
	default:
		return ""
	}
}

// =============================================================================
// Key Types
// =============================================================================

// KeyType is the kind of key material a CryptoKey holds.
type KeyType string

const (
	KeyTypePublic  KeyType = "public"
	KeyTypePrivate KeyType = "private"
	KeyTypeSecret  KeyType = "secret"
)

// String returns the canonical key type.
func (t KeyType) String() string {
	return string(t)
}

// ParseKeyType returns the canonical key type for s, or "".
func ParseKeyType(s string) KeyType {
	switch strings.ToLower(s) {
	case "public":
		return KeyTypePublic
	case "private":
		return KeyTypePrivate
	case "secret":
		return KeyTypeSecret
	default:
		return ""
	}
}

// =============================================================================
// Operations
// =============================================================================

// Operation names an externally visible verb.
type Operation string

const (
	OpGenerateKey Operation = "generateKey"
	OpExportKey   Operation = "exportKey"
	OpImportKey   Operation = "importKey"
	OpSign        Operation = "sign"
	OpVerify      Operation = "verify"
	OpEncrypt     Operation = "encrypt"
	OpDecrypt     Operation = "decrypt"
	OpWrapKey     Operation = "wrapKey"
	OpUnwrapKey   Operation = "unwrapKey"
)

var knownOperations = []Operation{
	OpGenerateKey, OpExportKey, OpImportKey,
	OpSign, OpVerify,
	OpEncrypt, OpDecrypt, OpWrapKey, OpUnwrapKey,
}

// String returns the canonical verb name.
func (o Operation) String() string {
	return string(o)
}

// ParseOperation returns the canonical operation for s, or "".
func ParseOperation(s string) Operation {
	for _, o := range knownOperations {
		if strings.EqualFold(string(o), s) {
			return o
		}
	}
	return ""
}
