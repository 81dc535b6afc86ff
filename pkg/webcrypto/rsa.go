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
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/jeremyhahn/go-webcrypto/pkg/adapters/logger"
	"github.com/jeremyhahn/go-webcrypto/pkg/metrics"
)

var (
	// ErrProviderRequired is returned by the constructors when Config has
	// no Provider.
	ErrProviderRequired = errors.New("webcrypto: provider is required")

	// ErrInvalidConfig is returned for a nil Config.
	ErrInvalidConfig = errors.New("webcrypto: invalid config")
)

// Config configures a family validator.
type Config struct {
	// Provider receives requests that pass validation. Required.
	Provider Provider

	// Logger receives debug records for rejections and provider hand-off.
	// Defaults to a no-op logger.
	Logger logger.Logger
}

var (
	exponent3     = []byte{3}
	exponent65537 = []byte{1, 0, 1}

	// importFormats are the formats an RSA key may be imported from.
	importFormats = []KeyFormat{FormatJWK, FormatPKCS8, FormatSPKI}
)

// rsa holds the configuration and pipelines shared by every RSA family.
// It is immutable once built.
type rsa struct {
	name     AlgorithmName
	usages   []KeyUsage
	provider Provider
	log      logger.Logger
}

func newRSA(config *Config, name AlgorithmName, usages []KeyUsage) (rsa, error) {
	if config == nil {
		return rsa{}, ErrInvalidConfig
	}
	if config.Provider == nil {
		return rsa{}, ErrProviderRequired
	}
	log := config.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return rsa{
		name:     name,
		usages:   usages,
		provider: config.Provider,
		log:      log.With(logger.Algorithm(string(name))),
	}, nil
}

// Name returns the canonical algorithm name.
func (r *rsa) Name() AlgorithmName {
	return r.name
}

// Usages returns a copy of the key usages this family accepts.
func (r *rsa) Usages() []KeyUsage {
	out := make([]KeyUsage, len(r.usages))
	copy(out, r.usages)
	return out
}

// GenerateKey validates a key generation request and forwards it to the
// provider.
func (r *rsa) GenerateKey(ctx context.Context, algorithm *RsaHashedKeyGenParams, extractable bool, usages []string) (*CryptoKeyPair, error) {
	err := r.validate(ctx, OpGenerateKey,
		func() error { return r.checkKeyGenParams(algorithm) },
		func() error { return r.checkKeyGenUsages(usages) },
	)
	if err != nil {
		return nil, err
	}

	var pair *CryptoKeyPair
	err = r.handOff(ctx, OpGenerateKey, func() (err error) {
		pair, err = r.provider.GenerateKey(ctx, algorithm, extractable, normalizeUsages(usages))
		return err
	})
	return pair, err
}

// ImportKey validates an import request and forwards it to the provider.
// RSA keys are never imported from raw bytes.
func (r *rsa) ImportKey(ctx context.Context, format string, keyData *KeyData, algorithm *RsaHashedImportParams, extractable bool, usages []string) (*CryptoKey, error) {
	err := r.validate(ctx, OpImportKey,
		func() error { return r.checkImportAlgorithm(algorithm) },
		func() error { return checkImportFormat(format) },
		func() error { return r.checkKeyGenUsages(usages) },
		func() error {
			if keyData == nil {
				return ParamRequired("keyData")
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	var key *CryptoKey
	err = r.handOff(ctx, OpImportKey, func() (err error) {
		key, err = r.provider.ImportKey(ctx, ParseKeyFormat(format), keyData, algorithm, extractable, normalizeUsages(usages))
		return err
	})
	return key, err
}

// ExportKey validates an export request against the key's type and
// forwards it to the provider.
func (r *rsa) ExportKey(ctx context.Context, format string, key *CryptoKey) (*KeyData, error) {
	err := r.validate(ctx, OpExportKey,
		func() error { return CheckKey(key, r.name, "", "") },
		func() error { return CheckFormat(format, key.Type) },
	)
	if err != nil {
		return nil, err
	}

	var data *KeyData
	err = r.handOff(ctx, OpExportKey, func() (err error) {
		data, err = r.provider.ExportKey(ctx, ParseKeyFormat(format), key)
		return err
	})
	return data, err
}

func (r *rsa) checkKeyGenParams(alg *RsaHashedKeyGenParams) error {
	if alg == nil {
		return ParamRequired("algorithm")
	}
	if err := CheckAlgorithmName(alg, r.name); err != nil {
		return err
	}
	switch alg.ModulusLength {
	case 1024, 2048, 4096:
	default:
		return ParamWrongValue("modulusLength", "1024, 2048 or 4096")
	}
	if alg.PublicExponent == nil {
		return ParamRequired("publicExponent")
	}
	if !bytes.Equal(alg.PublicExponent, exponent3) && !bytes.Equal(alg.PublicExponent, exponent65537) {
		return ParamWrongValue("publicExponent", "[3] | [1, 0, 1]")
	}
	return checkHash(alg.Hash)
}

// checkImportAlgorithm is also applied to the target algorithm of an
// unwrap whose name is an RSA family.
func (r *rsa) checkImportAlgorithm(alg *RsaHashedImportParams) error {
	if alg == nil {
		return ParamRequired("algorithm")
	}
	if err := CheckAlgorithmName(alg, r.name); err != nil {
		return err
	}
	return checkHash(alg.Hash)
}

func (r *rsa) checkKeyGenUsages(usages []string) error {
	if err := CheckKeyUsages(usages); err != nil {
		return err
	}
	return CheckKeyUsageAllowed(usages, r.usages)
}

func checkHash(hash Algorithm) error {
	if hash.Name == "" {
		return ParamRequired("hash")
	}
	return CheckHashAlgorithm(hash)
}

func checkImportFormat(format string) error {
	if err := CheckFormat(format, ""); err != nil {
		return err
	}
	if ParseKeyFormat(format) == FormatRaw {
		return DisallowedFormat(format, importFormats)
	}
	return nil
}

// validate runs checks in order and stops at the first failure. The error
// is returned exactly as the check built it.
func (r *rsa) validate(ctx context.Context, op Operation, checks ...func() error) error {
	start := time.Now()
	for _, check := range checks {
		if err := check(); err != nil {
			metrics.RecordValidation(string(r.name), string(op), metrics.StatusRejected, time.Since(start).Seconds())
			r.reject(ctx, op, err)
			return err
		}
	}
	metrics.RecordValidation(string(r.name), string(op), metrics.StatusSuccess, time.Since(start).Seconds())
	return nil
}

func (r *rsa) reject(ctx context.Context, op Operation, err error) {
	fields := []logger.Field{logger.Operation(string(op)), logger.Err(err)}
	var verr *Error
	if errors.As(err, &verr) {
		fields = append(fields, logger.Kind(verr.Kind.String()), logger.Code(verr.Code))
		metrics.RecordRejection(string(r.name), string(op), verr.Kind.String())
	}
	r.log.DebugContext(ctx, "request rejected", fields...)
}

// handOff invokes the provider. Its result and error are passed through
// unchanged.
func (r *rsa) handOff(ctx context.Context, op Operation, call func() error) error {
	r.log.DebugContext(ctx, "request validated, calling provider", logger.Operation(string(op)))
	err := call()
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	metrics.RecordProviderCall(string(r.name), string(op), status)
	return err
}
