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

var signatureUsages = []KeyUsage{UsageSign, UsageVerify}

// signer is the signature pipeline shared by RSASSA-PKCS1-v1_5 and RSA-PSS.
// checkParams holds the family's algorithm-parameter rules.
type signer struct {
	rsa
	checkParams func(AlgorithmParams) error
}

// Sign validates the request and forwards it to the provider. The key
// must be a private key with the sign usage.
func (s *signer) Sign(ctx context.Context, algorithm AlgorithmParams, key *CryptoKey, data []byte) ([]byte, error) {
	err := s.validate(ctx, OpSign,
		func() error { return s.checkParams(algorithm) },
		func() error { return CheckKey(key, s.name, KeyTypePrivate, UsageSign) },
	)
	if err != nil {
		return nil, err
	}

	var signature []byte
	err = s.handOff(ctx, OpSign, func() (err error) {
		signature, err = s.provider.Sign(ctx, algorithm, key, data)
		return err
	})
	return signature, err
}

// Verify validates the request and forwards it to the provider. The key
// must be a public key with the verify usage.
func (s *signer) Verify(ctx context.Context, algorithm AlgorithmParams, key *CryptoKey, signature, data []byte) (bool, error) {
	err := s.validate(ctx, OpVerify,
		func() error { return s.checkParams(algorithm) },
		func() error { return CheckKey(key, s.name, KeyTypePublic, UsageVerify) },
	)
	if err != nil {
		return false, err
	}

	var ok bool
	err = s.handOff(ctx, OpVerify, func() (err error) {
		ok, err = s.provider.Verify(ctx, algorithm, key, signature, data)
		return err
	})
	return ok, err
}

// checkSignatureParams is the base signature parameter check. Beyond the
// algorithm name, RSASSA-PKCS1-v1_5 has no parameters.
func (s *signer) checkSignatureParams(alg AlgorithmParams) error {
	return CheckAlgorithmName(alg, s.name)
}

// RSASSA validates RSASSA-PKCS1-v1_5 requests.
type RSASSA struct {
	signer
}

// NewRSASSA returns a validator for RSASSA-PKCS1-v1_5.
func NewRSASSA(config *Config) (*RSASSA, error) {
	base, err := newRSA(config, AlgorithmRSASSA, signatureUsages)
	if err != nil {
		return nil, err
	}
	v := &RSASSA{signer: signer{rsa: base}}
	v.checkParams = v.checkSignatureParams
	return v, nil
}

// RSAPSS validates RSA-PSS requests. It runs the RSASSA-PKCS1-v1_5
// signature pipeline and adds the salt length rules.
type RSAPSS struct {
	signer
}

// NewRSAPSS returns a validator for RSA-PSS.
func NewRSAPSS(config *Config) (*RSAPSS, error) {
	base, err := newRSA(config, AlgorithmRSAPSS, signatureUsages)
	if err != nil {
		return nil, err
	}
	v := &RSAPSS{signer: signer{rsa: base}}
	v.checkParams = v.checkPssParams
	return v, nil
}

// checkPssParams requires a salt length that is a positive multiple of 8.
// Values are never rounded.
func (v *RSAPSS) checkPssParams(alg AlgorithmParams) error {
	if err := v.checkSignatureParams(alg); err != nil {
		return err
	}
	var saltLength int
	switch p := alg.(type) {
	case *RsaPssParams:
		saltLength = p.SaltLength
	case RsaPssParams:
		saltLength = p.SaltLength
	}
	if saltLength == 0 {
		return ParamRequired("saltLength")
	}
	if saltLength < 0 || saltLength%8 != 0 {
		return ParamWrongValue("saltLength", "a multiple of 8")
	}
	return nil
}
