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

import "strings"

// allowedHashes is the digest set accepted wherever a parameter embeds a
// hash choice.
var allowedHashes = []HashName{HashSHA1, HashSHA256, HashSHA384, HashSHA512}

// AllowedHashes returns a copy of the accepted digest names.
func AllowedHashes() []HashName {
	out := make([]HashName, len(allowedHashes))
	copy(out, allowedHashes)
	return out
}

// CheckHashAlgorithm verifies alg names an allowed digest.
func CheckHashAlgorithm(alg Algorithm) error {
	for _, h := range allowedHashes {
		if h.Equals(alg.Name) {
			return nil
		}
	}
	names := make([]string, len(allowedHashes))
	for i, h := range allowedHashes {
		names[i] = string(h)
	}
	return WrongAlgorithmName(alg.Name, strings.Join(names, " | "))
}
