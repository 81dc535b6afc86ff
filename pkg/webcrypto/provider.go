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

// Provider performs the cryptographic work once a request has passed
// validation. Implementations receive the caller's inputs unchanged and
// own cancellation through ctx.
type Provider interface {
	GenerateKey(ctx context.Context, algorithm *RsaHashedKeyGenParams, extractable bool, usages []KeyUsage) (*CryptoKeyPair, error)

	ExportKey(ctx context.Context, format KeyFormat, key *CryptoKey) (*KeyData, error)

	ImportKey(ctx context.Context, format KeyFormat, keyData *KeyData, algorithm *RsaHashedImportParams, extractable bool, usages []KeyUsage) (*CryptoKey, error)

	Sign(ctx context.Context, algorithm AlgorithmParams, key *CryptoKey, data []byte) ([]byte, error)

	Verify(ctx context.Context, algorithm AlgorithmParams, key *CryptoKey, signature, data []byte) (bool, error)

	Encrypt(ctx context.Context, algorithm *RsaOaepParams, key *CryptoKey, data []byte) ([]byte, error)

	Decrypt(ctx context.Context, algorithm *RsaOaepParams, key *CryptoKey, data []byte) ([]byte, error)

	WrapKey(ctx context.Context, format KeyFormat, key, wrappingKey *CryptoKey, algorithm *RsaOaepParams) ([]byte, error)

	UnwrapKey(ctx context.Context, format KeyFormat, wrappedKey []byte, unwrappingKey *CryptoKey, algorithm *RsaOaepParams,
		unwrappedKeyAlgorithm AlgorithmParams, extractable bool, usages []KeyUsage) (*CryptoKey, error)
}
