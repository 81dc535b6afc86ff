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

import "context"

var oaepUsages = []KeyUsage{UsageEncrypt, UsageDecrypt, UsageWrapKey, UsageUnwrapKey}

// RSAOAEP validates RSA-OAEP requests.
type RSAOAEP struct {
	rsa
}

// NewRSAOAEP returns a validator for RSA-OAEP.
func NewRSAOAEP(config *Config) (*RSAOAEP, error) {
	base, err := newRSA(config, AlgorithmRSAOAEP, oaepUsages)
	if err != nil {
		return nil, err
	}
	return &RSAOAEP{rsa: base}, nil
}

// Encrypt validates the request and forwards it to the provider. The key
// must be a public key with the encrypt usage.
func (o *RSAOAEP) Encrypt(ctx context.Context, algorithm *RsaOaepParams, key *CryptoKey, data []byte) ([]byte, error) {
	err := o.validate(ctx, OpEncrypt,
		func() error { return o.checkOaepParams(algorithm) },
		func() error { return CheckKey(key, o.name, KeyTypePublic, UsageEncrypt) },
	)
	if err != nil {
		return nil, err
	}

	var out []byte
	err = o.handOff(ctx, OpEncrypt, func() (err error) {
		out, err = o.provider.Encrypt(ctx, algorithm, key, data)
		return err
	})
	return out, err
}

// Decrypt validates the request and forwards it to the provider. The key
// must be a private key with the decrypt usage.
func (o *RSAOAEP) Decrypt(ctx context.Context, algorithm *RsaOaepParams, key *CryptoKey, data []byte) ([]byte, error) {
	err := o.validate(ctx, OpDecrypt,
		func() error { return o.checkOaepParams(algorithm) },
		func() error { return CheckKey(key, o.name, KeyTypePrivate, UsageDecrypt) },
	)
	if err != nil {
		return nil, err
	}

	var out []byte
	err = o.handOff(ctx, OpDecrypt, func() (err error) {
		out, err = o.provider.Decrypt(ctx, algorithm, key, data)
		return err
	})
	return out, err
}

// WrapKey validates a wrap request. The wrapping key must be a public key
// with the wrapKey usage and format must be legal for the payload key.
func (o *RSAOAEP) WrapKey(ctx context.Context, format string, key, wrappingKey *CryptoKey, algorithm *RsaOaepParams) ([]byte, error) {
	err := o.validate(ctx, OpWrapKey,
		func() error { return o.checkOaepParams(algorithm) },
		func() error { return CheckKey(wrappingKey, o.name, KeyTypePublic, UsageWrapKey) },
		func() error { return CheckWrappedKey(key) },
		func() error { return CheckFormat(format, key.Type) },
	)
	if err != nil {
		return nil, err
	}

	var out []byte
	err = o.handOff(ctx, OpWrapKey, func() (err error) {
		out, err = o.provider.WrapKey(ctx, ParseKeyFormat(format), key, wrappingKey, algorithm)
		return err
	})
	return out, err
}

// UnwrapKey validates an unwrap request. Besides the unwrapping key and
// format, the algorithm and usages of the key to be unwrapped are checked
// the way an import of that key would check them.
func (o *RSAOAEP) UnwrapKey(ctx context.Context, format string, wrappedKey []byte, unwrappingKey *CryptoKey, algorithm *RsaOaepParams,
	unwrappedKeyAlgorithm AlgorithmParams, extractable bool, usages []string) (*CryptoKey, error) {
	err := o.validate(ctx, OpUnwrapKey,
		func() error { return o.checkOaepParams(algorithm) },
		func() error { return CheckKey(unwrappingKey, o.name, KeyTypePrivate, UsageUnwrapKey) },
		func() error {
			if len(wrappedKey) == 0 {
				return ParamRequired("wrappedKey")
			}
			return nil
		},
		func() error { return CheckFormat(format, "") },
		func() error { return checkUnwrappedKey(format, unwrappedKeyAlgorithm, usages) },
	)
	if err != nil {
		return nil, err
	}

	var key *CryptoKey
	err = o.handOff(ctx, OpUnwrapKey, func() (err error) {
		key, err = o.provider.UnwrapKey(ctx, ParseKeyFormat(format), wrappedKey, unwrappingKey, algorithm,
			unwrappedKeyAlgorithm, extractable, normalizeUsages(usages))
		return err
	})
	return key, err
}

func (o *RSAOAEP) checkOaepParams(alg *RsaOaepParams) error {
	if alg == nil {
		return ParamRequired("algorithm")
	}
	return CheckAlgorithmName(alg, o.name)
}

// checkUnwrappedKey applies the import rules of the target algorithm when
// it is an RSA family. Other targets only get the generic usage checks.
func checkUnwrappedKey(format string, alg AlgorithmParams, usages []string) error {
	if isNilParams(alg) {
		return ParamRequired("unwrappedKeyAlgorithm")
	}
	if err := CheckKeyUsages(usages); err != nil {
		return err
	}

	name := ParseAlgorithmName(alg.AlgorithmName())
	familyUsages, ok := rsaFamilyUsages[name]
	if !ok {
		return nil
	}
	target := rsa{name: name, usages: familyUsages}
	if err := target.checkImportAlgorithm(ImportParamsOf(alg)); err != nil {
		return err
	}
	if err := checkImportFormat(format); err != nil {
		return err
	}
	return CheckKeyUsageAllowed(usages, familyUsages)
}

var rsaFamilyUsages = map[AlgorithmName][]KeyUsage{
	AlgorithmRSASSA:  signatureUsages,
	AlgorithmRSAPSS:  signatureUsages,
	AlgorithmRSAOAEP: oaepUsages,
}

// ImportParamsOf views alg as RSA import parameters, so that any RSA
// parameter shape naming a hash can serve as an unwrap target. Parameter
// types without a hash yield an empty hash, which the import check
// rejects. A nil alg yields nil.
func ImportParamsOf(alg AlgorithmParams) *RsaHashedImportParams {
	if isNilParams(alg) {
		return nil
	}
	switch p := alg.(type) {
	case *RsaHashedImportParams:
		return p
	case RsaHashedImportParams:
		return &p
	case *RsaHashedKeyGenParams:
		return &RsaHashedImportParams{Algorithm: p.Algorithm, Hash: p.Hash}
	case *RsaHashedKeyAlgorithm:
		return &RsaHashedImportParams{Algorithm: p.Algorithm, Hash: p.Hash}
	default:
		return &RsaHashedImportParams{Algorithm: Algorithm{Name: alg.AlgorithmName()}}
	}
}
