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
	"context"
	"fmt"
)

// KeyManager is implemented by every family validator.
type KeyManager interface {
	Name() AlgorithmName
	Usages() []KeyUsage
	GenerateKey(ctx context.Context, algorithm *RsaHashedKeyGenParams, extractable bool, usages []string) (*CryptoKeyPair, error)
	ImportKey(ctx context.Context, format string, keyData *KeyData, algorithm *RsaHashedImportParams, extractable bool, usages []string) (*CryptoKey, error)
	ExportKey(ctx context.Context, format string, key *CryptoKey) (*KeyData, error)
}

// Signer is implemented by the signature families.
type Signer interface {
	KeyManager
	Sign(ctx context.Context, algorithm AlgorithmParams, key *CryptoKey, data []byte) ([]byte, error)
	Verify(ctx context.Context, algorithm AlgorithmParams, key *CryptoKey, signature, data []byte) (bool, error)
}

// Cipher is implemented by the encryption families.
type Cipher interface {
	KeyManager
	Encrypt(ctx context.Context, algorithm *RsaOaepParams, key *CryptoKey, data []byte) ([]byte, error)
	Decrypt(ctx context.Context, algorithm *RsaOaepParams, key *CryptoKey, data []byte) ([]byte, error)
	WrapKey(ctx context.Context, format string, key, wrappingKey *CryptoKey, algorithm *RsaOaepParams) ([]byte, error)
	UnwrapKey(ctx context.Context, format string, wrappedKey []byte, unwrappingKey *CryptoKey, algorithm *RsaOaepParams,
		unwrappedKeyAlgorithm AlgorithmParams, extractable bool, usages []string) (*CryptoKey, error)
}

var (
	_ Signer = (*RSASSA)(nil)
	_ Signer = (*RSAPSS)(nil)
	_ Cipher = (*RSAOAEP)(nil)
)

// AlgorithmInfo describes a registered family.
type AlgorithmInfo struct {
	Name       AlgorithmName `json:"name" yaml:"name"`
	Usages     []KeyUsage    `json:"usages" yaml:"usages"`
	Operations []Operation   `json:"operations" yaml:"operations"`
}

// Registry resolves family validators by name. It is built once and is
// safe for concurrent use.
type Registry struct {
	families map[AlgorithmName]KeyManager
	order    []AlgorithmName
}

// NewRegistry builds the RSASSA-PKCS1-v1_5, RSA-PSS and RSA-OAEP validators
// sharing one provider and logger.
func NewRegistry(config *Config) (*Registry, error) {
	rsassa, err := NewRSASSA(config)
	if err != nil {
		return nil, fmt.Errorf("webcrypto: building %s: %w", AlgorithmRSASSA, err)
	}
	rsapss, err := NewRSAPSS(config)
	if err != nil {
		return nil, fmt.Errorf("webcrypto: building %s: %w", AlgorithmRSAPSS, err)
	}
	rsaoaep, err := NewRSAOAEP(config)
	if err != nil {
		return nil, fmt.Errorf("webcrypto: building %s: %w", AlgorithmRSAOAEP, err)
	}

	r := &Registry{families: make(map[AlgorithmName]KeyManager, 3)}
	for _, km := range []KeyManager{rsassa, rsapss, rsaoaep} {
		r.families[km.Name()] = km
		r.order = append(r.order, km.Name())
	}
	return r, nil
}

// Get returns the validator for name, ignoring case.
func (r *Registry) Get(name string) (KeyManager, error) {
	if km, ok := r.families[ParseAlgorithmName(name)]; ok {
		return km, nil
	}
	return nil, AlgorithmNotSupported(name)
}

// Signer returns the signature validator for name.
func (r *Registry) Signer(name string) (Signer, error) {
	km, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	s, ok := km.(Signer)
	if !ok {
		return nil, AlgorithmNotSupported(name)
	}
	return s, nil
}

// Cipher returns the encryption validator for name.
func (r *Registry) Cipher(name string) (Cipher, error) {
	km, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	c, ok := km.(Cipher)
	if !ok {
		return nil, AlgorithmNotSupported(name)
	}
	return c, nil
}

// Algorithms lists the registered families in registration order.
func (r *Registry) Algorithms() []AlgorithmInfo {
	infos := make([]AlgorithmInfo, 0, len(r.order))
	for _, name := range r.order {
		km := r.families[name]
		ops := []Operation{OpGenerateKey, OpImportKey, OpExportKey}
		switch km.(type) {
		case Signer:
			ops = append(ops, OpSign, OpVerify)
		case Cipher:
			ops = append(ops, OpEncrypt, OpDecrypt, OpWrapKey, OpUnwrapKey)
		}
		infos = append(infos, AlgorithmInfo{Name: name, Usages: km.Usages(), Operations: ops})
	}
	return infos
}
