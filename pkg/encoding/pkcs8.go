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
	"crypto/x509"
	"fmt"
	"strings"

	"github.com/youmark/pkcs8"
)

// EncodePKCS8 encodes an RSA private key to ASN.1 DER PKCS#8. A non-empty
// password encrypts the key.
//
// Example:
//
//	der, err := encoding.EncodePKCS8(privateKey, nil)
func EncodePKCS8(privateKey *rsa.PrivateKey, password []byte) ([]byte, error) {
	if privateKey == nil {
		return nil, ErrInvalidPrivateKey
	}
	der, err := pkcs8.MarshalPrivateKey(privateKey, password, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal PKCS#8: %w", err)
	}
	return der, nil
}

// DecodePKCS8 decodes ASN.1 DER PKCS#8 data holding an RSA private key.
// Encrypted data needs its password.
func DecodePKCS8(data []byte, password []byte) (*rsa.PrivateKey, error) {
	if len(data) == 0 {
		return nil, ErrInvalidData
	}
	key, err := pkcs8.ParsePKCS8PrivateKey(data, password)
	if err != nil {
		if isPasswordError(err) {
			return nil, ErrInvalidPassword
		}
		return nil, fmt.Errorf("failed to parse PKCS#8: %w", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotRSA, key)
	}
	return rsaKey, nil
}

// EncodeSPKI encodes an RSA public key to ASN.1 DER SubjectPublicKeyInfo.
func EncodeSPKI(publicKey *rsa.PublicKey) ([]byte, error) {
	if publicKey == nil {
		return nil, ErrInvalidPublicKey
	}
	der, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal SPKI public key: %w", err)
	}
	return der, nil
}

// DecodeSPKI decodes ASN.1 DER SubjectPublicKeyInfo holding an RSA public key.
func DecodeSPKI(data []byte) (*rsa.PublicKey, error) {
	if len(data) == 0 {
		return nil, ErrInvalidData
	}
	key, err := x509.ParsePKIXPublicKey(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SPKI public key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotRSA, key)
	}
	return rsaKey, nil
}

// isPasswordError reports whether err from youmark/pkcs8 stems from a
// wrong or missing password.
func isPasswordError(err error) bool {
	msg := err.Error()
	for _, s := range []string{"incorrect password", "asn1: structure error", "tags don't match"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
