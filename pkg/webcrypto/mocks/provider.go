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

// Package mocks provides a testify mock of webcrypto.Provider.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jeremyhahn/go-webcrypto/pkg/webcrypto"
)

// Provider is a mock implementation of webcrypto.Provider
type Provider struct {
	mock.Mock
}

var _ webcrypto.Provider = (*Provider)(nil)

func (m *Provider) GenerateKey(ctx context.Context, algorithm *webcrypto.RsaHashedKeyGenParams, extractable bool, usages []webcrypto.KeyUsage) (*webcrypto.CryptoKeyPair, error) {
	args := m.Called(ctx, algorithm, extractable, usages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*webcrypto.CryptoKeyPair), args.Error(1)
}

func (m *Provider) ExportKey(ctx context.Context, format webcrypto.KeyFormat, key *webcrypto.CryptoKey) (*webcrypto.KeyData, error) {
	args := m.Called(ctx, format, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*webcrypto.KeyData), args.Error(1)
}

func (m *Provider) ImportKey(ctx context.Context, format webcrypto.KeyFormat, keyData *webcrypto.KeyData, algorithm *webcrypto.RsaHashedImportParams, extractable bool, usages []webcrypto.KeyUsage) (*webcrypto.CryptoKey, error) {
	args := m.Called(ctx, format, keyData, algorithm, extractable, usages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*webcrypto.CryptoKey), args.Error(1)
}

func (m *Provider) Sign(ctx context.Context, algorithm webcrypto.AlgorithmParams, key *webcrypto.CryptoKey, data []byte) ([]byte, error) {
	args := m.Called(ctx, algorithm, key, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *Provider) Verify(ctx context.Context, algorithm webcrypto.AlgorithmParams, key *webcrypto.CryptoKey, signature, data []byte) (bool, error) {
	args := m.Called(ctx, algorithm, key, signature, data)
	return args.Bool(0), args.Error(1)
}

func (m *Provider) Encrypt(ctx context.Context, algorithm *webcrypto.RsaOaepParams, key *webcrypto.CryptoKey, data []byte) ([]byte, error) {
	args := m.Called(ctx, algorithm, key, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *Provider) Decrypt(ctx context.Context, algorithm *webcrypto.RsaOaepParams, key *webcrypto.CryptoKey, data []byte) ([]byte, error) {
	args := m.Called(ctx, algorithm, key, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *Provider) WrapKey(ctx context.Context, format webcrypto.KeyFormat, key, wrappingKey *webcrypto.CryptoKey, algorithm *webcrypto.RsaOaepParams) ([]byte, error) {
	args := m.Called(ctx, format, key, wrappingKey, algorithm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *Provider) UnwrapKey(ctx context.Context, format webcrypto.KeyFormat, wrappedKey []byte, unwrappingKey *webcrypto.CryptoKey, algorithm *webcrypto.RsaOaepParams,
	unwrappedKeyAlgorithm webcrypto.AlgorithmParams, extractable bool, usages []webcrypto.KeyUsage) (*webcrypto.CryptoKey, error) {
	args := m.Called(ctx, format, wrappedKey, unwrappingKey, algorithm, unwrappedKeyAlgorithm, extractable, usages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*webcrypto.CryptoKey), args.Error(1)
}
