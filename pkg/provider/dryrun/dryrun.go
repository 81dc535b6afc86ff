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

// Package dryrun provides a webcrypto.Provider that performs no
// cryptography. It lets callers exercise the validation pipeline on its
// own: every request that reaches the provider passed validation.
package dryrun

import (
	"context"
	"sync"

	"github.com/jeremyhahn/go-webcrypto/pkg/webcrypto"
)

// Provider counts each verb it receives and returns zero results. Key
// operations return descriptors that echo the request but carry no key
// material. Only a provider built with NewRecorder keeps the verbs in
// order; the counters are fixed size.
type Provider struct {
	mu     sync.Mutex
	counts map[webcrypto.Operation]uint64
	record bool
	calls  []webcrypto.Operation
}

var _ webcrypto.Provider = (*Provider)(nil)

// New returns a dry-run provider that keeps per-verb counts only.
func New() *Provider {
	return &Provider{counts: make(map[webcrypto.Operation]uint64)}
}

// NewRecorder returns a dry-run provider that also records every verb in
// arrival order. The record grows with every call and is meant for tests.
func NewRecorder() *Provider {
	p := New()
	p.record = true
	return p
}

// Calls returns the verbs received so far, oldest first. It is always
// empty for a provider built with New.
func (p *Provider) Calls() []webcrypto.Operation {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]webcrypto.Operation, len(p.calls))
	copy(out, p.calls)
	return out
}

// Count returns how many times op was received.
func (p *Provider) Count(op webcrypto.Operation) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[op]
}

// Reset clears the counters and recorded verbs.
func (p *Provider) Reset() {
	p.mu.Lock()
	p.counts = make(map[webcrypto.Operation]uint64)
	p.calls = nil
	p.mu.Unlock()
}

func (p *Provider) received(ctx context.Context, op webcrypto.Operation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	p.counts[op]++
	if p.record {
		p.calls = append(p.calls, op)
	}
	p.mu.Unlock()
	return nil
}

func (p *Provider) GenerateKey(ctx context.Context, algorithm *webcrypto.RsaHashedKeyGenParams, extractable bool, usages []webcrypto.KeyUsage) (*webcrypto.CryptoKeyPair, error) {
	if err := p.received(ctx, webcrypto.OpGenerateKey); err != nil {
		return nil, err
	}
	keyAlg := &webcrypto.RsaHashedKeyAlgorithm{
		Algorithm:      webcrypto.Algorithm{Name: webcrypto.ParseAlgorithmName(algorithm.Name).String()},
		ModulusLength:  algorithm.ModulusLength,
		PublicExponent: algorithm.PublicExponent,
		Hash:           webcrypto.Algorithm{Name: webcrypto.ParseHashName(algorithm.Hash.Name).String()},
	}
	return &webcrypto.CryptoKeyPair{
		PublicKey:  &webcrypto.CryptoKey{Type: webcrypto.KeyTypePublic, Extractable: true, Algorithm: keyAlg, Usages: usages},
		PrivateKey: &webcrypto.CryptoKey{Type: webcrypto.KeyTypePrivate, Extractable: extractable, Algorithm: keyAlg, Usages: usages},
	}, nil
}

func (p *Provider) ExportKey(ctx context.Context, format webcrypto.KeyFormat, key *webcrypto.CryptoKey) (*webcrypto.KeyData, error) {
	if err := p.received(ctx, webcrypto.OpExportKey); err != nil {
		return nil, err
	}
	return &webcrypto.KeyData{}, nil
}

func (p *Provider) ImportKey(ctx context.Context, format webcrypto.KeyFormat, keyData *webcrypto.KeyData, algorithm *webcrypto.RsaHashedImportParams, extractable bool, usages []webcrypto.KeyUsage) (*webcrypto.CryptoKey, error) {
	if err := p.received(ctx, webcrypto.OpImportKey); err != nil {
		return nil, err
	}
	keyType := webcrypto.KeyTypePublic
	if format == webcrypto.FormatPKCS8 {
		keyType = webcrypto.KeyTypePrivate
	}
	return &webcrypto.CryptoKey{Type: keyType, Extractable: extractable, Algorithm: algorithm, Usages: usages}, nil
}

func (p *Provider) Sign(ctx context.Context, algorithm webcrypto.AlgorithmParams, key *webcrypto.CryptoKey, data []byte) ([]byte, error) {
	return nil, p.received(ctx, webcrypto.OpSign)
}

func (p *Provider) Verify(ctx context.Context, algorithm webcrypto.AlgorithmParams, key *webcrypto.CryptoKey, signature, data []byte) (bool, error) {
	return false, p.received(ctx, webcrypto.OpVerify)
}

func (p *Provider) Encrypt(ctx context.Context, algorithm *webcrypto.RsaOaepParams, key *webcrypto.CryptoKey, data []byte) ([]byte, error) {
	return nil, p.received(ctx, webcrypto.OpEncrypt)
}

func (p *Provider) Decrypt(ctx context.Context, algorithm *webcrypto.RsaOaepParams, key *webcrypto.CryptoKey, data []byte) ([]byte, error) {
	return nil, p.received(ctx, webcrypto.OpDecrypt)
}

func (p *Provider) WrapKey(ctx context.Context, format webcrypto.KeyFormat, key, wrappingKey *webcrypto.CryptoKey, algorithm *webcrypto.RsaOaepParams) ([]byte, error) {
	return nil, p.received(ctx, webcrypto.OpWrapKey)
}

func (p *Provider) UnwrapKey(ctx context.Context, format webcrypto.KeyFormat, wrappedKey []byte, unwrappingKey *webcrypto.CryptoKey, algorithm *webcrypto.RsaOaepParams,
	unwrappedKeyAlgorithm webcrypto.AlgorithmParams, extractable bool, usages []webcrypto.KeyUsage) (*webcrypto.CryptoKey, error) {
	if err := p.received(ctx, webcrypto.OpUnwrapKey); err != nil {
		return nil, err
	}
	return &webcrypto.CryptoKey{Type: webcrypto.KeyTypePrivate, Extractable: extractable, Algorithm: unwrappedKeyAlgorithm, Usages: usages}, nil
}
