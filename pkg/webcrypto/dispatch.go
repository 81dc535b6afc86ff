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
	"strings"
)

// Request is a single verb invocation in document form, as accepted by
// the CLI and the REST service. Byte fields are base64 in JSON.
type Request struct {
	Operation             string         `json:"operation" yaml:"operation"`
	Algorithm             map[string]any `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	Format                string         `json:"format,omitempty" yaml:"format,omitempty"`
	KeyData               *KeyData       `json:"keyData,omitempty" yaml:"keyData,omitempty"`
	Key                   *KeyDescriptor `json:"key,omitempty" yaml:"key,omitempty"`
	WrappingKey           *KeyDescriptor `json:"wrappingKey,omitempty" yaml:"wrappingKey,omitempty"`
	UnwrappingKey         *KeyDescriptor `json:"unwrappingKey,omitempty" yaml:"unwrappingKey,omitempty"`
	UnwrappedKeyAlgorithm map[string]any `json:"unwrappedKeyAlgorithm,omitempty" yaml:"unwrappedKeyAlgorithm,omitempty"`
	Extractable           bool           `json:"extractable,omitempty" yaml:"extractable,omitempty"`
	Usages                []string       `json:"usages,omitempty" yaml:"usages,omitempty"`
	Data                  []byte         `json:"data,omitempty" yaml:"data,omitempty"`
	Signature             []byte         `json:"signature,omitempty" yaml:"signature,omitempty"`
	WrappedKey            []byte         `json:"wrappedKey,omitempty" yaml:"wrappedKey,omitempty"`
}

// Result carries whatever the provider returned for the verb.
type Result struct {
	Operation Operation      `json:"operation" yaml:"operation"`
	Algorithm AlgorithmName  `json:"algorithm" yaml:"algorithm"`
	KeyPair   *CryptoKeyPair `json:"keyPair,omitempty" yaml:"keyPair,omitempty"`
	Key       *CryptoKey     `json:"key,omitempty" yaml:"key,omitempty"`
	KeyData   *KeyData       `json:"keyData,omitempty" yaml:"keyData,omitempty"`
	Output    []byte         `json:"output,omitempty" yaml:"output,omitempty"`
	Verified  *bool          `json:"verified,omitempty" yaml:"verified,omitempty"`
}

// Dispatch decodes req, resolves the family named by its algorithm and runs
// the verb. exportKey resolves the family from the key when the request
// names no algorithm.
func (r *Registry) Dispatch(ctx context.Context, req *Request) (*Result, error) {
	if req == nil {
		return nil, ParamRequired("request")
	}
	op := ParseOperation(req.Operation)
	if op == "" {
		return nil, ParamWrongValue("operation", joinOperations(knownOperations))
	}

	name, err := requestAlgorithmName(op, req)
	if err != nil {
		return nil, err
	}
	km, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	params, err := DecodeParams(km.Name(), op, req.Algorithm)
	if err != nil {
		return nil, err
	}
	key, err := req.Key.CryptoKey()
	if err != nil {
		return nil, err
	}

	result := &Result{Operation: op, Algorithm: km.Name()}
	switch op {
	case OpGenerateKey:
		result.KeyPair, err = km.GenerateKey(ctx, params.(*RsaHashedKeyGenParams), req.Extractable, req.Usages)
	case OpImportKey:
		result.Key, err = km.ImportKey(ctx, req.Format, req.KeyData, params.(*RsaHashedImportParams), req.Extractable, req.Usages)
	case OpExportKey:
		result.KeyData, err = km.ExportKey(ctx, req.Format, key)
	case OpSign, OpVerify:
		err = dispatchSignature(ctx, km, op, params, key, req, result)
	default:
		err = dispatchCipher(ctx, km, op, params.(*RsaOaepParams), key, req, result)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func dispatchSignature(ctx context.Context, km KeyManager, op Operation, params AlgorithmParams, key *CryptoKey, req *Request, result *Result) error {
	s, ok := km.(Signer)
	if !ok {
		return OperationNotSupported(op, km.Name())
	}
	if op == OpSign {
		var err error
		result.Output, err = s.Sign(ctx, params, key, req.Data)
		return err
	}
	verified, err := s.Verify(ctx, params, key, req.Signature, req.Data)
	result.Verified = &verified
	return err
}

func dispatchCipher(ctx context.Context, km KeyManager, op Operation, params *RsaOaepParams, key *CryptoKey, req *Request, result *Result) error {
	c, ok := km.(Cipher)
	if !ok {
		return OperationNotSupported(op, km.Name())
	}

	var err error
	switch op {
	case OpEncrypt:
		result.Output, err = c.Encrypt(ctx, params, key, req.Data)
	case OpDecrypt:
		result.Output, err = c.Decrypt(ctx, params, key, req.Data)
	case OpWrapKey:
		var wrappingKey *CryptoKey
		if wrappingKey, err = req.WrappingKey.CryptoKey(); err != nil {
			return err
		}
		result.Output, err = c.WrapKey(ctx, req.Format, key, wrappingKey, params)
	case OpUnwrapKey:
		var unwrappingKey *CryptoKey
		if unwrappingKey, err = req.UnwrappingKey.CryptoKey(); err != nil {
			return err
		}
		var target AlgorithmParams
		if target, err = DecodeKeyAlgorithm(req.UnwrappedKeyAlgorithm); err != nil {
			return err
		}
		result.Key, err = c.UnwrapKey(ctx, req.Format, req.WrappedKey, unwrappingKey, params, target, req.Extractable, req.Usages)
	}
	return err
}

func requestAlgorithmName(op Operation, req *Request) (string, error) {
	if req.Algorithm != nil {
		alg, err := decodeAlgorithm(req.Algorithm)
		if err != nil {
			return "", err
		}
		return alg.Name, nil
	}
	if op == OpExportKey && req.Key != nil {
		alg, err := decodeAlgorithm(req.Key.Algorithm)
		if err != nil {
			return "", err
		}
		return alg.Name, nil
	}
	return "", ParamRequired("algorithm")
}

func joinOperations(ops []Operation) string {
	s := make([]string, len(ops))
	for i, o := range ops {
		s[i] = string(o)
	}
	return strings.Join(s, " | ")
}
