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

package webcrypto_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-webcrypto/pkg/webcrypto"
	"github.com/jeremyhahn/go-webcrypto/pkg/webcrypto/mocks"
)

func newRSAOAEP(t *testing.T) (*webcrypto.RSAOAEP, *mocks.Provider) {
	t.Helper()
	p := &mocks.Provider{}
	v, err := webcrypto.NewRSAOAEP(&webcrypto.Config{Provider: p})
	require.NoError(t, err)
	return v, p
}

func oaepParams() *webcrypto.RsaOaepParams {
	return &webcrypto.RsaOaepParams{
		Algorithm: webcrypto.Algorithm{Name: "RSA-OAEP"},
		Label:     []byte("label"),
	}
}

func TestRSAOAEPImportRawRejected(t *testing.T) {
	v, p := newRSAOAEP(t)

	_, err := v.ImportKey(context.Background(), "raw", &webcrypto.KeyData{Bytes: []byte{1}},
		importParams(webcrypto.AlgorithmRSAOAEP), false, []string{"decrypt"})
	requireKind(t, err, webcrypto.KindDisallowedFormat, "format")
	p.AssertNotCalled(t, "ImportKey", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRSAOAEPEncrypt(t *testing.T) {
	tests := []struct {
		name     string
		params   *webcrypto.RsaOaepParams
		key      *webcrypto.CryptoKey
		wantKind webcrypto.ErrorKind
		param    string
	}{
		{"public encrypt key", oaepParams(), rsaKey(webcrypto.AlgorithmRSAOAEP, webcrypto.KeyTypePublic, webcrypto.UsageEncrypt), 0, ""},
		{"no label", &webcrypto.RsaOaepParams{Algorithm: webcrypto.Algorithm{Name: "rsa-oaep"}}, rsaKey(webcrypto.AlgorithmRSAOAEP, webcrypto.KeyTypePublic, webcrypto.UsageEncrypt), 0, ""},
		{"nil params", nil, rsaKey(webcrypto.AlgorithmRSAOAEP, webcrypto.KeyTypePublic, webcrypto.UsageEncrypt), webcrypto.KindParamRequired, "algorithm"},
		{"wrong name", &webcrypto.RsaOaepParams{Algorithm: webcrypto.Algorithm{Name: "RSA-PSS"}}, rsaKey(webcrypto.AlgorithmRSAOAEP, webcrypto.KeyTypePublic, webcrypto.UsageEncrypt), webcrypto.KindWrongAlgorithmName, "name"},
		{"private key", oaepParams(), rsaKey(webcrypto.AlgorithmRSAOAEP, webcrypto.KeyTypePrivate, webcrypto.UsageEncrypt), webcrypto.KindWrongKeyType, "key"},
		{"wrap-only key", oaepParams(), rsaKey(webcrypto.AlgorithmRSAOAEP, webcrypto.KeyTypePublic, webcrypto.UsageWrapKey), webcrypto.KindWrongKeyUsage, "key"},
		{"nil key", oaepParams(), nil, webcrypto.KindKeyRequired, "key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, p := newRSAOAEP(t)
			if tt.wantKind == 0 {
				p.On("Encrypt", mock.Anything, tt.params, tt.key, []byte("plaintext")).Return([]byte("ciphertext"), nil)
			}

			out, err := v.Encrypt(context.Background(), tt.params, tt.key, []byte("plaintext"))
			if tt.wantKind == 0 {
				require.NoError(t, err)
				assert.Equal(t, []byte("ciphertext"), out)
			} else {
				requireKind(t, err, tt.wantKind, tt.param)
			}
			p.AssertExpectations(t)
		})
	}
}

func TestRSAOAEPDecrypt(t *testing.T) {
	v, p := newRSAOAEP(t)
	private := rsaKey(webcrypto.AlgorithmRSAOAEP, webcrypto.KeyTypePrivate, webcrypto.UsageDecrypt)
	p.On("Decrypt", mock.Anything, oaepParams(), private, []byte("ciphertext")).Return([]byte("plaintext"), nil)

	out, err := v.Decrypt(context.Background(), oaepParams(), private, []byte("ciphertext"))
	require.NoError(t, err)
	assert.Equal(t, []byte("plaintext"), out)

	public := rsaKey(webcrypto.AlgorithmRSAOAEP, webcrypto.KeyTypePublic, webcrypto.UsageDecrypt)
	_, err = v.Decrypt(context.Background(), oaepParams(), public, nil)
	requireKind(t, err, webcrypto.KindWrongKeyType, "key")

	_, err = v.Decrypt(context.Background(), oaepParams(), rsaKey(webcrypto.AlgorithmRSAOAEP, webcrypto.KeyTypePrivate, webcrypto.UsageUnwrapKey), nil)
	requireKind(t, err, webcrypto.KindWrongKeyUsage, "key")
	p.AssertExpectations(t)
}

func TestRSAOAEPWrapKey(t *testing.T) {
	wrappingKey := rsaKey(webcrypto.AlgorithmRSAOAEP, webcrypto.KeyTypePublic, webcrypto.UsageWrapKey)
	secret := &webcrypto.CryptoKey{
		Type:        webcrypto.KeyTypeSecret,
		Extractable: true,
		Algorithm:   &webcrypto.Algorithm{Name: "AES-GCM"},
		Usages:      []webcrypto.KeyUsage{webcrypto.UsageEncrypt},
	}

	tests := []struct {
		name        string
		format      string
		key         *webcrypto.CryptoKey
		wrappingKey *webcrypto.CryptoKey
		wantKind    webcrypto.ErrorKind
	}{
		{"secret raw", "raw", secret, wrappingKey, 0},
		{"secret jwk", "JWK", secret, wrappingKey, 0},
		{"secret spki", "spki", secret, wrappingKey, webcrypto.KindDisallowedFormat},
		{"nil payload", "raw", nil, wrappingKey, webcrypto.KindKeyRequired},
		{"private wrapping key", "raw", secret, rsaKey(webcrypto.AlgorithmRSAOAEP, webcrypto.KeyTypePrivate, webcrypto.UsageWrapKey), webcrypto.KindWrongKeyType},
		{"encrypt-only wrapping key", "raw", secret, rsaKey(webcrypto.AlgorithmRSAOAEP, webcrypto.KeyTypePublic, webcrypto.UsageEncrypt), webcrypto.KindWrongKeyUsage},
		{"nil wrapping key", "raw", secret, nil, webcrypto.KindKeyRequired},
		{"unknown format", "pem", secret, wrappingKey, webcrypto.KindDisallowedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, p := newRSAOAEP(t)
			if tt.wantKind == 0 {
				p.On("WrapKey", mock.Anything, webcrypto.ParseKeyFormat(tt.format), tt.key, tt.wrappingKey, oaepParams()).
					Return([]byte("wrapped"), nil)
			}

			out, err := v.WrapKey(context.Background(), tt.format, tt.key, tt.wrappingKey, oaepParams())
			if tt.wantKind == 0 {
				require.NoError(t, err)
				assert.Equal(t, []byte("wrapped"), out)
			} else {
				requireKind(t, err, tt.wantKind, "")
			}
			p.AssertExpectations(t)
		})
	}
}

func TestRSAOAEPWrapKeyCheckOrder(t *testing.T) {
	v, _ := newRSAOAEP(t)

	// The wrapping key is checked before the payload.
	_, err := v.WrapKey(context.Background(), "raw", nil, nil, oaepParams())
	requireKind(t, err, webcrypto.KindKeyRequired, "key")

	_, err = v.WrapKey(context.Background(), "raw", nil,
		rsaKey(webcrypto.AlgorithmRSAOAEP, webcrypto.KeyTypePrivate, webcrypto.UsageWrapKey), nil)
	requireKind(t, err, webcrypto.KindParamRequired, "algorithm")
}

func TestRSAOAEPUnwrapKey(t *testing.T) {
	unwrappingKey := rsaKey(webcrypto.AlgorithmRSAOAEP, webcrypto.KeyTypePrivate, webcrypto.UsageUnwrapKey)
	aes := &webcrypto.Algorithm{Name: "AES-GCM"}
	pss := &webcrypto.RsaHashedImportParams{
		Algorithm: webcrypto.Algorithm{Name: "RSA-PSS"},
		Hash:      webcrypto.Algorithm{Name: "SHA-384"},
	}

	tests := []struct {
		name          string
		format        string
		wrapped       []byte
		unwrappingKey *webcrypto.CryptoKey
		target        webcrypto.AlgorithmParams
		usages        []string
		wantKind      webcrypto.ErrorKind
		param         string
	}{
		{"aes raw", "raw", []byte{1}, unwrappingKey, aes, []string{"encrypt", "decrypt"}, 0, ""},
		{"rsa-pss pkcs8", "pkcs8", []byte{1}, unwrappingKey, pss, []string{"sign"}, 0, ""},
		{"public unwrapping key", "raw", []byte{1}, rsaKey(webcrypto.AlgorithmRSAOAEP, webcrypto.KeyTypePublic, webcrypto.UsageUnwrapKey), aes, []string{"encrypt"}, webcrypto.KindWrongKeyType, "key"},
		{"decrypt-only unwrapping key", "raw", []byte{1}, rsaKey(webcrypto.AlgorithmRSAOAEP, webcrypto.KeyTypePrivate, webcrypto.UsageDecrypt), aes, []string{"encrypt"}, webcrypto.KindWrongKeyUsage, "key"},
		{"unknown format", "pem", []byte{1}, unwrappingKey, aes, []string{"encrypt"}, webcrypto.KindDisallowedFormat, "format"},
		{"empty wrapped key", "raw", nil, unwrappingKey, aes, []string{"encrypt"}, webcrypto.KindParamRequired, "wrappedKey"},
		{"empty wrapped key before format", "pem", nil, unwrappingKey, aes, []string{"encrypt"}, webcrypto.KindParamRequired, "wrappedKey"},
		{"missing target algorithm", "raw", []byte{1}, unwrappingKey, nil, []string{"encrypt"}, webcrypto.KindParamRequired, "unwrappedKeyAlgorithm"},
		{"empty usages", "raw", []byte{1}, unwrappingKey, aes, nil, webcrypto.KindValidationFailure, ""},
		{"duplicate usages", "raw", []byte{1}, unwrappingKey, aes, []string{"encrypt", "ENCRYPT"}, webcrypto.KindValidationFailure, ""},
		{"rsa target without hash", "pkcs8", []byte{1}, unwrappingKey, &webcrypto.Algorithm{Name: "RSA-PSS"}, []string{"sign"}, webcrypto.KindParamRequired, "hash"},
		{"rsa target bad hash", "pkcs8", []byte{1}, unwrappingKey, &webcrypto.RsaHashedImportParams{Algorithm: webcrypto.Algorithm{Name: "RSA-OAEP"}, Hash: webcrypto.Algorithm{Name: "MD5"}}, []string{"decrypt"}, webcrypto.KindWrongAlgorithmName, "name"},
		{"rsa target raw", "raw", []byte{1}, unwrappingKey, pss, []string{"sign"}, webcrypto.KindDisallowedFormat, "format"},
		{"rsa target bad usage", "pkcs8", []byte{1}, unwrappingKey, pss, []string{"decrypt"}, webcrypto.KindUnsupportedKeyUsage, "usages"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, p := newRSAOAEP(t)
			if tt.wantKind == 0 {
				p.On("UnwrapKey", mock.Anything, webcrypto.ParseKeyFormat(tt.format), tt.wrapped, tt.unwrappingKey, oaepParams(),
					tt.target, true, mock.Anything).Return(&webcrypto.CryptoKey{}, nil)
			}

			_, err := v.UnwrapKey(context.Background(), tt.format, tt.wrapped, tt.unwrappingKey, oaepParams(), tt.target, true, tt.usages)
			if tt.wantKind == 0 {
				assert.NoError(t, err)
			} else {
				requireKind(t, err, tt.wantKind, tt.param)
			}
			p.AssertExpectations(t)
		})
	}
}

func TestRSAOAEPDecryptProviderErrorPassesThrough(t *testing.T) {
	v, p := newRSAOAEP(t)
	p.On("Decrypt", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errProvider)

	_, err := v.Decrypt(context.Background(), oaepParams(),
		rsaKey(webcrypto.AlgorithmRSAOAEP, webcrypto.KeyTypePrivate, webcrypto.UsageDecrypt), []byte{1})
	assert.Same(t, errProvider, err)
}
