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

package encoding

import (
	"crypto/rsa"
	"fmt"

	"github.com/go-jose/go-jose/v4"
)

// Public key use values written to the "use" member.
const (
	UseSignature  = "sig"
	UseEncryption = "enc"
)

// EncodeJWK wraps an *rsa.PublicKey or *rsa.PrivateKey as a JSON Web Key
// with the given "alg", "use" and "kid" members. Empty members are omitted.
func EncodeJWK(key any, alg, use, kid string) (*jose.JSONWebKey, error) {
	switch k := key.(type) {
	case *rsa.PublicKey:
		if k == nil {
			return nil, ErrInvalidPublicKey
		}
	case *rsa.PrivateKey:
		if k == nil {
			return nil, ErrInvalidPrivateKey
		}
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotRSA, key)
	}
	jwk := &jose.JSONWebKey{Key: key, Algorithm: alg, Use: use, KeyID: kid}
	if !jwk.Valid() {
		return nil, ErrInvalidData
	}
	return jwk, nil
}

// DecodeJWK extracts the RSA key held by jwk. Exactly one of the returned
// keys is non-nil.
func DecodeJWK(jwk *jose.JSONWebKey) (*rsa.PublicKey, *rsa.PrivateKey, error) {
	if jwk == nil || jwk.Key == nil {
		return nil, nil, ErrInvalidData
	}
	if !jwk.Valid() {
		return nil, nil, ErrInvalidData
	}
	switch k := jwk.Key.(type) {
	case *rsa.PublicKey:
		return k, nil, nil
	case *rsa.PrivateKey:
		return nil, k, nil
	default:
		return nil, nil, fmt.Errorf("%w: got %T", ErrNotRSA, jwk.Key)
	}
}
