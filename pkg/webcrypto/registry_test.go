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

package webcrypto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-webcrypto/pkg/webcrypto"
	"github.com/jeremyhahn/go-webcrypto/pkg/webcrypto/mocks"
)

func newRegistry(t *testing.T) (*webcrypto.Registry, *mocks.Provider) {
	t.Helper()
	p := &mocks.Provider{}
	r, err := webcrypto.NewRegistry(&webcrypto.Config{Provider: p})
	require.NoError(t, err)
	return r, p
}

func TestNewRegistryRequiresProvider(t *testing.T) {
	_, err := webcrypto.NewRegistry(&webcrypto.Config{})
	assert.ErrorIs(t, err, webcrypto.ErrProviderRequired)
}

func TestRegistryGet(t *testing.T) {
	r, _ := newRegistry(t)

	for _, name := range []string{"RSASSA-PKCS1-v1_5", "rsa-pss", "Rsa-Oaep"} {
		km, err := r.Get(name)
		require.NoError(t, err, name)
		assert.True(t, km.Name().Equals(name))
	}

	for _, name := range []string{"AES-GCM", "ECDSA", "SHA-256", "", "RSA", "RSA-PSS ", " rsa-oaep"} {
		_, err := r.Get(name)
		requireKind(t, err, webcrypto.KindAlgorithmNotSupported, "name")
	}
}

func TestRegistrySignerAndCipher(t *testing.T) {
	r, _ := newRegistry(t)

	s, err := r.Signer("rsa-pss")
	require.NoError(t, err)
	assert.IsType(t, &webcrypto.RSAPSS{}, s)

	_, err = r.Signer("RSA-OAEP")
	requireKind(t, err, webcrypto.KindAlgorithmNotSupported, "")

	c, err := r.Cipher("RSA-OAEP")
	require.NoError(t, err)
	assert.IsType(t, &webcrypto.RSAOAEP{}, c)

	_, err = r.Cipher("RSASSA-PKCS1-v1_5")
	requireKind(t, err, webcrypto.KindAlgorithmNotSupported, "")

	_, err = r.Cipher("HMAC")
	requireKind(t, err, webcrypto.KindAlgorithmNotSupported, "")
}

func TestRegistryAlgorithms(t *testing.T) {
	r, _ := newRegistry(t)

	infos := r.Algorithms()
	require.Len(t, infos, 3)

	assert.Equal(t, webcrypto.AlgorithmRSASSA, infos[0].Name)
	assert.Contains(t, infos[0].Operations, webcrypto.OpSign)
	assert.NotContains(t, infos[0].Operations, webcrypto.OpEncrypt)

	assert.Equal(t, webcrypto.AlgorithmRSAPSS, infos[1].Name)

	assert.Equal(t, webcrypto.AlgorithmRSAOAEP, infos[2].Name)
	assert.Equal(t, []webcrypto.KeyUsage{webcrypto.UsageEncrypt, webcrypto.UsageDecrypt, webcrypto.UsageWrapKey, webcrypto.UsageUnwrapKey}, infos[2].Usages)
	assert.Contains(t, infos[2].Operations, webcrypto.OpUnwrapKey)
	assert.NotContains(t, infos[2].Operations, webcrypto.OpVerify)
}
