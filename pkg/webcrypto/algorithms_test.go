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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAlgorithmName(t *testing.T) {
	tests := []struct {
		in   string
		want AlgorithmName
	}{
		{"RSASSA-PKCS1-v1_5", AlgorithmRSASSA},
		{"rsassa-pkcs1-V1_5", AlgorithmRSASSA},
		{"rsa-pss", AlgorithmRSAPSS},
		{" RSA-OAEP ", ""},
		{"RSA-PSS ", ""},
		{"aes-gcm", AlgorithmAESGCM},
		{"pbkdf2", AlgorithmPBKDF2},
		{"SHA-256", ""},
		{"RSA", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAlgorithmName(tt.in))
		})
	}
}

func TestHashName(t *testing.T) {
	assert.Equal(t, HashSHA256, ParseHashName("sha-256"))
	assert.Equal(t, HashSHA1, ParseHashName("SHA-1"))
	assert.Equal(t, HashName(""), ParseHashName("SHA256"))
	assert.Equal(t, crypto.SHA384, HashSHA384.CryptoHash())
	assert.Equal(t, crypto.Hash(0), HashName("MD5").CryptoHash())
	assert.True(t, HashSHA512.Equals("sha-512"))
}

func TestJWA(t *testing.T) {
	tests := []struct {
		family AlgorithmName
		hash   HashName
		want   string
	}{
		{AlgorithmRSASSA, HashSHA1, "RS1"},
		{AlgorithmRSASSA, HashSHA256, "RS256"},
		{AlgorithmRSASSA, HashSHA512, "RS512"},
		{AlgorithmRSAPSS, HashSHA384, "PS384"},
		{AlgorithmRSAOAEP, HashSHA1, "RSA-OAEP"},
		{AlgorithmRSAOAEP, HashSHA256, "RSA-OAEP-256"},
		{AlgorithmRSAOAEP, HashSHA512, "RSA-OAEP-512"},
		{AlgorithmAESGCM, HashSHA256, ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.family)+"/"+string(tt.hash), func(t *testing.T) {
			assert.Equal(t, tt.want, JWA(tt.family, tt.hash))
		})
	}
}

func TestParseEnums(t *testing.T) {
	assert.Equal(t, UsageUnwrapKey, ParseKeyUsage("UNWRAPKEY"))
	assert.Equal(t, KeyUsage(""), ParseKeyUsage("export"))
	assert.Equal(t, FormatSPKI, ParseKeyFormat("SPKI"))
	assert.Equal(t, KeyFormat(""), ParseKeyFormat("pem"))
	assert.Equal(t, KeyFormat(""), ParseKeyFormat(" pkcs8 "))
	assert.Equal(t, HashName(""), ParseHashName("SHA-256 "))
	assert.Equal(t, KeyUsage(""), ParseKeyUsage(" sign"))
	assert.Equal(t, KeyType(""), ParseKeyType("private "))
	assert.Equal(t, Operation(""), ParseOperation("sign "))
	assert.Equal(t, KeyTypeSecret, ParseKeyType("Secret"))
	assert.Equal(t, KeyType(""), ParseKeyType("shared"))
	assert.Equal(t, OpUnwrapKey, ParseOperation("unwrapkey"))
	assert.Equal(t, Operation(""), ParseOperation("deriveBits"))
}
