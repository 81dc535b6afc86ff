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

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-webcrypto/pkg/adapters/logger"
	"github.com/jeremyhahn/go-webcrypto/pkg/webcrypto"
)

func newValidateCommand(cfg *Config) *cobra.Command {
	var requestFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a WebCrypto request",
		Long: `Validate a WebCrypto request document and, if it passes, hand it to the
selected provider. The request is read from --request (JSON or YAML, "-"
for stdin). Byte fields are base64 encoded.

Example:
  {
    "operation": "sign",
    "algorithm": {"name": "RSA-PSS", "saltLength": 32},
    "key": {
      "type": "private",
      "extractable": false,
      "algorithm": {"name": "RSA-PSS", "modulusLength": 2048, "hash": {"name": "SHA-256"}},
      "usages": ["sign"]
    },
    "data": "aGVsbG8="
  }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := cfg.Logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			req, err := readRequest(cmd.InOrStdin(), requestFile)
			if err != nil {
				return err
			}
			registry, err := cfg.Registry(log)
			if err != nil {
				return err
			}
			log.Debug("Dispatching request",
				logger.String("operation", req.Operation),
				logger.String("provider", cfg.Provider))

			result, err := registry.Dispatch(cmd.Context(), req)
			if err != nil {
				return err
			}
			return NewPrinter(cfg.OutputFormat, cmd.OutOrStdout()).PrintResult(result)
		},
	}

	cmd.Flags().StringVarP(&requestFile, "request", "r", "-", "request document (JSON or YAML, - for stdin)")
	return cmd
}

// readRequest loads a request document. Files ending in .yaml or .yml are
// parsed as YAML and re-encoded as JSON so that both forms decode the same
// way.
func readRequest(stdin io.Reader, path string) (*webcrypto.Request, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read request: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		if data, err = yamlToJSON(data); err != nil {
			return nil, fmt.Errorf("failed to parse request: %w", err)
		}
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var req webcrypto.Request
	if err := decoder.Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
