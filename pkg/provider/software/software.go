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

// Package software is a reference webcrypto.Provider built on crypto/rsa.
// Keys live in memory only: the *rsa.PrivateKey or *rsa.PublicKey is carried
// in CryptoKey.Handle.
package software

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/go-jose/go-jose/v4"
	"github.com/google/uuid"
	"github.com/jeremyhahn/go-webcrypto/pkg/adapters/logger"
	"github.com/jeremyhahn/go-webcrypto/pkg/encoding"
	"github.com/jeremyhahn/go-webcrypto/pkg/webcrypto"
)

const supportedExponent = 65537

var (
	publicUsages  = []webcrypto.KeyUsage{webcrypto.UsageVerify, webcrypto.UsageEncrypt, webcrypto.UsageWrapKey}
	privateUsages = []webcrypto.KeyUsage{webcrypto.UsageSign, webcrypto.UsageDecrypt, webcrypto.UsageUnwrapKey}
)

// Provider performs RSA operations in software. It is safe for concurrent
// use; it holds no key state of its own.
type Provider struct {
	random io.Reader
	log    logger.Logger
}

var _ webcrypto.Provider = (*Provider)(nil)

// New creates a software provider. A nil config uses the defaults.
func New(config *Config) *Provider {
	p := &Provider{random: rand.Reader, log: logger.NewNop()}
	if config == nil {
		return p
	}
	if config.Random != nil {
		p.random = config.Random
	}
	if config.Logger != nil {
		p.log = config.Logger
	}
	return p
}

// GenerateKey creates an RSA key pair. Usages are split between the two
// halves: verify, encrypt and wrapKey go to the public key, the rest to the
// private key.
func (p *Provider) GenerateKey(ctx context.Context, algorithm *webcrypto.RsaHashedKeyGenParams, extractable bool, usages []webcrypto.KeyUsage) (*webcrypto.CryptoKeyPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	family, err := rsaFamily(algorithm.AlgorithmName())
	if err != nil {
		return nil, err
	}
	if new(big.Int).SetBytes(algorithm.PublicExponent).Int64() != supportedExponent {
		return nil, fmt.Errorf("%w: %x", ErrUnsupportedExponent, algorithm.PublicExponent)
	}
	hash := webcrypto.ParseHashName(algorithm.Hash.Name)

	privateKey, err := rsa.GenerateKey(p.random, algorithm.ModulusLength)
	if err != nil {
		return nil, fmt.Errorf("software: key generation failed: %w", err)
	}

	keyAlg := keyAlgorithmOf(family, hash, &privateKey.PublicKey)
	id := uuid.New().String()
	pair := &webcrypto.CryptoKeyPair{
		PublicKey: &webcrypto.CryptoKey{
			ID:          id,
			Type:        webcrypto.KeyTypePublic,
			Extractable: true,
			Algorithm:   keyAlg,
			Usages:      filterUsages(usages, publicUsages),
			Handle:      &privateKey.PublicKey,
		},
		PrivateKey: &webcrypto.CryptoKey{
			ID:          id,
			Type:        webcrypto.KeyTypePrivate,
			Extractable: extractable,
			Algorithm:   keyAlg,
			Usages:      filterUsages(usages, privateUsages),
			Handle:      privateKey,
		},
	}
	if len(pair.PrivateKey.Usages) == 0 {
		return nil, ErrEmptyUsages
	}

	p.log.DebugContext(ctx, "generated key pair",
		logger.Algorithm(family.String()),
		logger.String("id", id),
		logger.Int("modulus_length", algorithm.ModulusLength))
	return pair, nil
}

// ExportKey serializes key. pkcs8 carries private keys, spki public keys
// and jwk either.
func (p *Provider) ExportKey(ctx context.Context, format webcrypto.KeyFormat, key *webcrypto.CryptoKey) (*webcrypto.KeyData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !key.Extractable {
		return nil, ErrNotExtractable
	}
	keyAlg, err := keyAlgorithm(key)
	if err != nil {
		return nil, err
	}

	switch format {
	case webcrypto.FormatPKCS8:
		privateKey, ok := key.Handle.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: pkcs8 requires a private key", ErrUnsupportedFormat)
		}
		der, err := encoding.EncodePKCS8(privateKey, nil)
		if err != nil {
			return nil, err
		}
		return &webcrypto.KeyData{Bytes: der}, nil

	case webcrypto.FormatSPKI:
		publicKey, ok := key.Handle.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: spki requires a public key", ErrUnsupportedFormat)
		}
		der, err := encoding.EncodeSPKI(publicKey)
		if err != nil {
			return nil, err
		}
		return &webcrypto.KeyData{Bytes: der}, nil

	case webcrypto.FormatJWK:
		family := webcrypto.ParseAlgorithmName(keyAlg.Name)
		jwk, err := encoding.EncodeJWK(key.Handle,
			webcrypto.JWA(family, webcrypto.ParseHashName(keyAlg.Hash.Name)),
			jwkUse(family), key.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKeyHandle, err)
		}
		return &webcrypto.KeyData{JWK: jwk}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// ImportKey parses keyData and binds it to algorithm. Usages that do not
// apply to the resulting key type are dropped.
func (p *Provider) ImportKey(ctx context.Context, format webcrypto.KeyFormat, keyData *webcrypto.KeyData, algorithm *webcrypto.RsaHashedImportParams, extractable bool, usages []webcrypto.KeyUsage) (*webcrypto.CryptoKey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	family, err := rsaFamily(algorithm.AlgorithmName())
	if err != nil {
		return nil, err
	}
	hash := webcrypto.ParseHashName(algorithm.Hash.Name)

	var (
		publicKey  *rsa.PublicKey
		privateKey *rsa.PrivateKey
	)
	switch format {
	case webcrypto.FormatPKCS8:
		privateKey, err = encoding.DecodePKCS8(keyData.Bytes, nil)
	case webcrypto.FormatSPKI:
		publicKey, err = encoding.DecodeSPKI(keyData.Bytes)
	case webcrypto.FormatJWK:
		if keyData.JWK != nil && keyData.JWK.Algorithm != "" &&
			keyData.JWK.Algorithm != webcrypto.JWA(family, hash) {
			return nil, fmt.Errorf("%w: %s", ErrJWKAlgorithmMismatch, keyData.JWK.Algorithm)
		}
		publicKey, privateKey, err = encoding.DecodeJWK(keyData.JWK)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("software: import failed: %w", err)
	}

	key := &webcrypto.CryptoKey{
		ID:          uuid.New().String(),
		Extractable: extractable,
	}
	if privateKey != nil {
		key.Type = webcrypto.KeyTypePrivate
		key.Algorithm = keyAlgorithmOf(family, hash, &privateKey.PublicKey)
		key.Usages = filterUsages(usages, privateUsages)
		key.Handle = privateKey
		if len(key.Usages) == 0 {
			return nil, ErrEmptyUsages
		}
	} else {
		key.Type = webcrypto.KeyTypePublic
		key.Algorithm = keyAlgorithmOf(family, hash, publicKey)
		key.Usages = filterUsages(usages, publicUsages)
		key.Handle = publicKey
	}

	p.log.DebugContext(ctx, "imported key",
		logger.Algorithm(family.String()),
		logger.String("format", format.String()),
		logger.String("type", key.Type.String()))
	return key, nil
}

// Sign produces a PKCS #1 v1.5 or PSS signature over data using the hash
// bound to key.
func (p *Provider) Sign(ctx context.Context, algorithm webcrypto.AlgorithmParams, key *webcrypto.CryptoKey, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	privateKey, ok := key.Handle.(*rsa.PrivateKey)
	if !ok {
		return nil, ErrInvalidKeyHandle
	}
	hash, digest, err := digestFor(key, data)
	if err != nil {
		return nil, err
	}
	if salt, pss := saltLength(algorithm); pss {
		return rsa.SignPSS(p.random, privateKey, hash, digest, &rsa.PSSOptions{SaltLength: salt, Hash: hash})
	}
	return rsa.SignPKCS1v15(p.random, privateKey, hash, digest)
}

// Verify reports whether signature is valid for data. A bad signature is
// not an error.
func (p *Provider) Verify(ctx context.Context, algorithm webcrypto.AlgorithmParams, key *webcrypto.CryptoKey, signature, data []byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	publicKey, ok := key.Handle.(*rsa.PublicKey)
	if !ok {
		return false, ErrInvalidKeyHandle
	}
	hash, digest, err := digestFor(key, data)
	if err != nil {
		return false, err
	}
	if salt, pss := saltLength(algorithm); pss {
		err = rsa.VerifyPSS(publicKey, hash, digest, signature, &rsa.PSSOptions{SaltLength: salt, Hash: hash})
	} else {
		err = rsa.VerifyPKCS1v15(publicKey, hash, digest, signature)
	}
	if errors.Is(err, rsa.ErrVerification) {
		return false, nil
	}
	return err == nil, err
}

// Encrypt applies RSA-OAEP with the hash bound to key.
func (p *Provider) Encrypt(ctx context.Context, algorithm *webcrypto.RsaOaepParams, key *webcrypto.CryptoKey, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	publicKey, ok := key.Handle.(*rsa.PublicKey)
	if !ok {
		return nil, ErrInvalidKeyHandle
	}
	hash, err := keyHash(key)
	if err != nil {
		return nil, err
	}
	return rsa.EncryptOAEP(hash.New(), p.random, publicKey, data, algorithm.Label)
}

// Decrypt reverses Encrypt.
func (p *Provider) Decrypt(ctx context.Context, algorithm *webcrypto.RsaOaepParams, key *webcrypto.CryptoKey, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	privateKey, ok := key.Handle.(*rsa.PrivateKey)
	if !ok {
		return nil, ErrInvalidKeyHandle
	}
	hash, err := keyHash(key)
	if err != nil {
		return nil, err
	}
	return rsa.DecryptOAEP(hash.New(), p.random, privateKey, data, algorithm.Label)
}

// WrapKey exports key in format and encrypts the result under wrappingKey.
// jwk exports are wrapped as their JSON serialization.
func (p *Provider) WrapKey(ctx context.Context, format webcrypto.KeyFormat, key, wrappingKey *webcrypto.CryptoKey, algorithm *webcrypto.RsaOaepParams) ([]byte, error) {
	exported, err := p.ExportKey(ctx, format, key)
	if err != nil {
		return nil, err
	}
	plaintext := exported.Bytes
	if format == webcrypto.FormatJWK {
		if plaintext, err = json.Marshal(exported.JWK); err != nil {
			return nil, fmt.Errorf("software: jwk serialization failed: %w", err)
		}
	}
	return p.Encrypt(ctx, algorithm, wrappingKey, plaintext)
}

// UnwrapKey decrypts wrappedKey and imports the result. Only RSA key
// algorithms can be unwrapped.
func (p *Provider) UnwrapKey(ctx context.Context, format webcrypto.KeyFormat, wrappedKey []byte, unwrappingKey *webcrypto.CryptoKey, algorithm *webcrypto.RsaOaepParams,
	unwrappedKeyAlgorithm webcrypto.AlgorithmParams, extractable bool, usages []webcrypto.KeyUsage) (*webcrypto.CryptoKey, error) {
	importAlg := webcrypto.ImportParamsOf(unwrappedKeyAlgorithm)
	if importAlg == nil {
		return nil, fmt.Errorf("%w: unwrapped key algorithm is required", ErrUnsupportedAlgorithm)
	}

	plaintext, err := p.Decrypt(ctx, algorithm, unwrappingKey, wrappedKey)
	if err != nil {
		return nil, err
	}
	keyData := &webcrypto.KeyData{Bytes: plaintext}
	if format == webcrypto.FormatJWK {
		var jwk jose.JSONWebKey
		if err := json.Unmarshal(plaintext, &jwk); err != nil {
			return nil, fmt.Errorf("software: jwk parse failed: %w", err)
		}
		keyData = &webcrypto.KeyData{JWK: &jwk}
	}
	return p.ImportKey(ctx, format, keyData, importAlg, extractable, usages)
}

func rsaFamily(name string) (webcrypto.AlgorithmName, error) {
	switch family := webcrypto.ParseAlgorithmName(name); family {
	case webcrypto.AlgorithmRSASSA, webcrypto.AlgorithmRSAPSS, webcrypto.AlgorithmRSAOAEP:
		return family, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, name)
}

func keyAlgorithmOf(family webcrypto.AlgorithmName, hash webcrypto.HashName, publicKey *rsa.PublicKey) *webcrypto.RsaHashedKeyAlgorithm {
	return &webcrypto.RsaHashedKeyAlgorithm{
		Algorithm:      webcrypto.Algorithm{Name: family.String()},
		ModulusLength:  publicKey.N.BitLen(),
		PublicExponent: big.NewInt(int64(publicKey.E)).Bytes(),
		Hash:           webcrypto.Algorithm{Name: hash.String()},
	}
}

func keyAlgorithm(key *webcrypto.CryptoKey) (*webcrypto.RsaHashedKeyAlgorithm, error) {
	switch alg := key.Algorithm.(type) {
	case *webcrypto.RsaHashedKeyAlgorithm:
		if alg != nil {
			return alg, nil
		}
	case webcrypto.RsaHashedKeyAlgorithm:
		return &alg, nil
	}
	return nil, fmt.Errorf("%w: key algorithm carries no hash", ErrInvalidKeyHandle)
}

func keyHash(key *webcrypto.CryptoKey) (crypto.Hash, error) {
	keyAlg, err := keyAlgorithm(key)
	if err != nil {
		return 0, err
	}
	hash := webcrypto.ParseHashName(keyAlg.Hash.Name).CryptoHash()
	if hash == 0 || !hash.Available() {
		return 0, fmt.Errorf("%w: hash %q", ErrUnsupportedAlgorithm, keyAlg.Hash.Name)
	}
	return hash, nil
}

func digestFor(key *webcrypto.CryptoKey, data []byte) (crypto.Hash, []byte, error) {
	hash, err := keyHash(key)
	if err != nil {
		return 0, nil, err
	}
	h := hash.New()
	h.Write(data)
	return hash, h.Sum(nil), nil
}

// saltLength returns the PSS salt length in bytes and whether the
// parameters select PSS at all.
func saltLength(algorithm webcrypto.AlgorithmParams) (int, bool) {
	switch params := algorithm.(type) {
	case *webcrypto.RsaPssParams:
		if params != nil {
			return params.SaltLength, true
		}
	case webcrypto.RsaPssParams:
		return params.SaltLength, true
	}
	return 0, false
}

func filterUsages(requested, allowed []webcrypto.KeyUsage) []webcrypto.KeyUsage {
	out := make([]webcrypto.KeyUsage, 0, len(requested))
	for _, usage := range requested {
		for _, a := range allowed {
			if a == usage {
				out = append(out, usage)
				break
			}
		}
	}
	return out
}

func jwkUse(family webcrypto.AlgorithmName) string {
	if family == webcrypto.AlgorithmRSAOAEP {
		return encoding.UseEncryption
	}
	return encoding.UseSignature
}
