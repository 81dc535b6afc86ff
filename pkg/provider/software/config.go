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

package software

import (
	"io"

	"github.com/jeremyhahn/go-webcrypto/pkg/adapters/logger"
)

// Config contains configuration for the software Provider.
type Config struct {
	// Random is the entropy source for key generation, PSS salts and OAEP
	// padding. Defaults to crypto/rand.Reader.
	Random io.Reader

	// Logger receives debug records for each operation. Defaults to a
	// no-op logger.
	Logger logger.Logger
}
