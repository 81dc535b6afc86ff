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
	"encoding/json"
	"math"
)

// Loosely typed parameters arrive as decoded JSON: objects are
// map[string]any, numbers float64 or json.Number, arrays []any. Decoding
// only enforces types; value rules stay with the validators so that an
// absent field surfaces as the validator's ParamRequired.

// DecodeParams builds the parameter structure op expects for family.
// exportKey takes no parameters and yields nil.
func DecodeParams(family AlgorithmName, op Operation, raw map[string]any) (AlgorithmParams, error) {
	if op == OpExportKey {
		return nil, nil
	}
	if raw == nil {
		return nil, ParamRequired("algorithm")
	}
	alg, err := decodeAlgorithm(raw)
	if err != nil {
		return nil, err
	}

	switch op {
	case OpGenerateKey:
		return decodeKeyGenParams(alg, raw)
	case OpImportKey:
		hash, err := decodeHash(raw["hash"])
		if err != nil {
			return nil, err
		}
		return &RsaHashedImportParams{Algorithm: alg, Hash: hash}, nil
	case OpSign, OpVerify:
		if family != AlgorithmRSAPSS {
			return &alg, nil
		}
		saltLength, err := decodeInt(raw["saltLength"], "saltLength")
		if err != nil {
			return nil, err
		}
		return &RsaPssParams{Algorithm: alg, SaltLength: saltLength}, nil
	case OpEncrypt, OpDecrypt, OpWrapKey, OpUnwrapKey:
		label, err := decodeBytes(raw["label"], "label")
		if err != nil {
			return nil, err
		}
		return &RsaOaepParams{Algorithm: alg, Label: label}, nil
	}
	return &alg, nil
}

// DecodeKeyAlgorithm decodes the algorithm bound to a key, or the target
// algorithm of an unwrap. RSA families decode to RsaHashedKeyAlgorithm.
func DecodeKeyAlgorithm(raw map[string]any) (AlgorithmParams, error) {
	if raw == nil {
		return nil, nil
	}
	alg, err := decodeAlgorithm(raw)
	if err != nil {
		return nil, err
	}
	if _, ok := rsaFamilyUsages[ParseAlgorithmName(alg.Name)]; !ok {
		return &alg, nil
	}
	params, err := decodeKeyGenParams(alg, raw)
	if err != nil {
		return nil, err
	}
	return &RsaHashedKeyAlgorithm{
		Algorithm:      params.Algorithm,
		ModulusLength:  params.ModulusLength,
		PublicExponent: params.PublicExponent,
		Hash:           params.Hash,
	}, nil
}

// KeyDescriptor is the JSON form of a CryptoKey in a request. It carries
// no key material.
type KeyDescriptor struct {
	Type        string         `json:"type" yaml:"type"`
	Extractable bool           `json:"extractable" yaml:"extractable"`
	Algorithm   map[string]any `json:"algorithm" yaml:"algorithm"`
	Usages      []string       `json:"usages" yaml:"usages"`
}

// CryptoKey converts the descriptor. A nil descriptor yields a nil key so
// that the validators report it.
func (d *KeyDescriptor) CryptoKey() (*CryptoKey, error) {
	if d == nil {
		return nil, nil
	}
	keyType := ParseKeyType(d.Type)
	if keyType == "" {
		return nil, ParamWrongValue("type", "public | private | secret")
	}
	alg, err := DecodeKeyAlgorithm(d.Algorithm)
	if err != nil {
		return nil, err
	}
	return &CryptoKey{
		Type:        keyType,
		Extractable: d.Extractable,
		Algorithm:   alg,
		Usages:      normalizeUsages(d.Usages),
	}, nil
}

func decodeAlgorithm(raw map[string]any) (Algorithm, error) {
	v, ok := raw["name"]
	if !ok || v == nil {
		return Algorithm{}, ParamRequired("name")
	}
	name, ok := v.(string)
	if !ok {
		return Algorithm{}, ParamWrongType("name", "string")
	}
	return Algorithm{Name: name}, nil
}

func decodeKeyGenParams(alg Algorithm, raw map[string]any) (*RsaHashedKeyGenParams, error) {
	modulusLength, err := decodeInt(raw["modulusLength"], "modulusLength")
	if err != nil {
		return nil, err
	}
	publicExponent, err := decodeBytes(raw["publicExponent"], "publicExponent")
	if err != nil {
		return nil, err
	}
	hash, err := decodeHash(raw["hash"])
	if err != nil {
		return nil, err
	}
	return &RsaHashedKeyGenParams{
		Algorithm:      alg,
		ModulusLength:  modulusLength,
		PublicExponent: publicExponent,
		Hash:           hash,
	}, nil
}

func decodeInt(v any, param string) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, ParamWrongType(param, "integer")
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, ParamWrongType(param, "integer")
		}
		return int(i), nil
	default:
		return 0, ParamWrongType(param, "integer")
	}
}

// decodeBytes accepts a byte slice or an array of integers in 0..255. An
// empty array decodes to an empty, non-nil slice.
func decodeBytes(v any, param string) ([]byte, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case []any:
		out := make([]byte, len(b))
		for i, e := range b {
			n, err := decodeInt(e, param)
			if err != nil || e == nil || n < 0 || n > 255 {
				return nil, ParamWrongType(param, "byte array")
			}
			out[i] = byte(n)
		}
		return out, nil
	default:
		return nil, ParamWrongType(param, "byte array")
	}
}

// decodeHash accepts "SHA-256" or {"name": "SHA-256"}.
func decodeHash(v any) (Algorithm, error) {
	switch h := v.(type) {
	case nil:
		return Algorithm{}, nil
	case string:
		return Algorithm{Name: h}, nil
	case map[string]any:
		name, ok := h["name"].(string)
		if !ok {
			return Algorithm{}, ParamWrongType("hash", "string or {name}")
		}
		return Algorithm{Name: name}, nil
	default:
		return Algorithm{}, ParamWrongType("hash", "string or {name}")
	}
}
