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

package software_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-webcrypto/pkg/provider/software"
	"github.com/jeremyhahn/go-webcrypto/pkg/webcrypto"
)

func newRegistry(t *testing.T) *webcrypto.Registry {
	t.Helper()
	registry, err := webcrypto.NewRegistry(&webcrypto.Config{Provider: software.New(nil)})
	require.NoError(t, err)
	return registry
}

// TestRoundTrip generates a key through the validator, exports it and
// imports it back with identical parameters.
func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	registry := newRegistry(t)

	signer, err := registry.Signer("rsassa-pkcs1-v1_5")
	require.NoError(t, err)

	pair, err := signer.GenerateKey(ctx, &webcrypto.RsaHashedKeyGenParams{
		Algorithm:      webcrypto.Algorithm{Name: "RSASSA-PKCS1-v1_5"},
		ModulusLength:  2048,
		PublicExponent: []byte{1, 0, 1},
		Hash:           webcrypto.Algorithm{Name: "SHA-256"},
	}, true, []string{"sign", "verify"})
	require.NoError(t, err)

	importParams := &webcrypto.RsaHashedImportParams{
		Algorithm: webcrypto.Algorithm{Name: "RSASSA-PKCS1-v1_5"},
		Hash:      webcrypto.Algorithm{Name: "SHA-256"},
	}

	for _, tc := range []struct {
		format string
		key    *webcrypto.CryptoKey
		usages []string
	}{
		{"pkcs8", pair.PrivateKey, []string{"sign"}},
		{"spki", pair.PublicKey, []string{"verify"}},
		{"jwk", pair.PrivateKey, []string{"sign"}},
		{"jwk", pair.PublicKey, []string{"verify"}},
	} {
		t.Run(tc.format+"/"+tc.key.Type.String(), func(t *testing.T) {
			data, err := signer.ExportKey(ctx, tc.format, tc.key)
			require.NoError(t, err)

			imported, err := signer.ImportKey(ctx, tc.format, data, importParams, true, tc.usages)
			require.NoError(t, err)
			assert.Equal(t, tc.key.Type, imported.Type)
			assert.Equal(t, tc.key.Algorithm, imported.Algorithm)
		})
	}

	sig, err := signer.Sign(ctx, &webcrypto.Algorithm{Name: "RSASSA-PKCS1-v1_5"}, pair.PrivateKey, []byte("data"))
	require.NoError(t, err)
	ok, err := signer.Verify(ctx, &webcrypto.Algorithm{Name: "RSASSA-PKCS1-v1_5"}, pair.PublicKey, sig, []byte("data"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRoundTripPSS(t *testing.T) {
	ctx := context.Background()
	signer, err := newRegistry(t).Signer("RSA-PSS")
	require.NoError(t, err)

	pair, err := signer.GenerateKey(ctx, &webcrypto.RsaHashedKeyGenParams{
		Algorithm:      webcrypto.Algorithm{Name: "RSA-PSS"},
		ModulusLength:  2048,
		PublicExponent: []byte{1, 0, 1},
		Hash:           webcrypto.Algorithm{Name: "SHA-384"},
	}, false, []string{"sign", "verify"})
	require.NoError(t, err)

	params := &webcrypto.RsaPssParams{Algorithm: webcrypto.Algorithm{Name: "RSA-PSS"}, SaltLength: 32}
	sig, err := signer.Sign(ctx, params, pair.PrivateKey, []byte("data"))
	require.NoError(t, err)
	ok, err := signer.Verify(ctx, params, pair.PublicKey, sig, []byte("data"))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = signer.ExportKey(ctx, "pkcs8", pair.PrivateKey)
	assert.ErrorIs(t, err, software.ErrNotExtractable)

	params.SaltLength = 33
	_, err = signer.Sign(ctx, params, pair.PrivateKey, []byte("data"))
	assert.ErrorIs(t, err, webcrypto.ErrParamWrongValue)
}

func TestRoundTripOAEP(t *testing.T) {
	ctx := context.Background()
	cipher, err := newRegistry(t).Cipher("RSA-OAEP")
	require.NoError(t, err)

	pair, err := cipher.GenerateKey(ctx, &webcrypto.RsaHashedKeyGenParams{
		Algorithm:      webcrypto.Algorithm{Name: "RSA-OAEP"},
		ModulusLength:  2048,
		PublicExponent: []byte{1, 0, 1},
		Hash:           webcrypto.Algorithm{Name: "SHA-1"},
	}, true, []string{"encrypt", "decrypt", "wrapKey", "unwrapKey"})
	require.NoError(t, err)

	params := &webcrypto.RsaOaepParams{Algorithm: webcrypto.Algorithm{Name: "RSA-OAEP"}}
	ciphertext, err := cipher.Encrypt(ctx, params, pair.PublicKey, []byte("secret"))
	require.NoError(t, err)
	plaintext, err := cipher.Decrypt(ctx, params, pair.PrivateKey, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), plaintext)

	wrapped, err := cipher.WrapKey(ctx, "spki", pair.PublicKey, pair.PublicKey, params)
	require.NoError(t, err)

	oaep := webcrypto.Algorithm{Name: "RSA-OAEP"}
	sha1 := webcrypto.Algorithm{Name: "SHA-1"}
	targets := []struct {
		name string
		alg  webcrypto.AlgorithmParams
	}{
		{"import params", &webcrypto.RsaHashedImportParams{Algorithm: oaep, Hash: sha1}},
		{"key algorithm", &webcrypto.RsaHashedKeyAlgorithm{Algorithm: oaep, ModulusLength: 2048, PublicExponent: []byte{1, 0, 1}, Hash: sha1}},
		{"keygen params", &webcrypto.RsaHashedKeyGenParams{Algorithm: oaep, ModulusLength: 2048, PublicExponent: []byte{1, 0, 1}, Hash: sha1}},
		{"generated key algorithm", pair.PublicKey.Algorithm},
	}
	for _, tt := range targets {
		t.Run(tt.name, func(t *testing.T) {
			unwrapped, err := cipher.UnwrapKey(ctx, "spki", wrapped, pair.PrivateKey, params, tt.alg, true, []string{"encrypt"})
			require.NoError(t, err)
			assert.Equal(t, webcrypto.KeyTypePublic, unwrapped.Type)
			assert.Equal(t, []webcrypto.KeyUsage{webcrypto.UsageEncrypt}, unwrapped.Usages)
			assert.Equal(t, "RSA-OAEP", unwrapped.AlgorithmName())
		})
	}
}

// TestUnwrapKeyAlgorithmFromRequest unwraps with the target algorithm
// decoded the way request documents are decoded.
func TestUnwrapKeyAlgorithmFromRequest(t *testing.T) {
	ctx := context.Background()
	cipher, err := newRegistry(t).Cipher("RSA-OAEP")
	require.NoError(t, err)

	pair, err := cipher.GenerateKey(ctx, &webcrypto.RsaHashedKeyGenParams{
		Algorithm:      webcrypto.Algorithm{Name: "RSA-OAEP"},
		ModulusLength:  2048,
		PublicExponent: []byte{1, 0, 1},
		Hash:           webcrypto.Algorithm{Name: "SHA-256"},
	}, true, []string{"encrypt", "decrypt", "wrapKey", "unwrapKey"})
	require.NoError(t, err)

	params := &webcrypto.RsaOaepParams{Algorithm: webcrypto.Algorithm{Name: "RSA-OAEP"}}
	wrapped, err := cipher.WrapKey(ctx, "spki", pair.PublicKey, pair.PublicKey, params)
	require.NoError(t, err)

	target, err := webcrypto.DecodeKeyAlgorithm(map[string]any{
		"name": "RSA-OAEP",
		"hash": map[string]any{"name": "SHA-256"},
	})
	require.NoError(t, err)

	unwrapped, err := cipher.UnwrapKey(ctx, "spki", wrapped, pair.PrivateKey, params, target, true, []string{"encrypt"})
	require.NoError(t, err)
	assert.Equal(t, webcrypto.KeyTypePublic, unwrapped.Type)
}
